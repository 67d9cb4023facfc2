package service

import (
	"sync"
	"time"

	"rezkit/pkg/logger"
)

// BootstrapState tracks the payment gateway mount. Charges are refused
// until the provider probe succeeds, and a probe that gave up reports a
// distinct failure so the widget can offer a reload.
type BootstrapState string

const (
	BootstrapPending BootstrapState = "pending"
	BootstrapReady   BootstrapState = "ready"
	BootstrapFailed  BootstrapState = "failed"
)

// ReadinessProber is the blocking health probe of the payment provider.
// *client.PaymentClient satisfies it.
type ReadinessProber interface {
	WaitForReady(maxWait time.Duration) error
}

// Bootstrap runs the provider probe in the background and answers the
// current mount state.
type Bootstrap struct {
	prober  ReadinessProber
	maxWait time.Duration
	log     *logger.Logger

	mu    sync.Mutex
	state BootstrapState
}

func NewBootstrap(prober ReadinessProber, maxWait time.Duration, log *logger.Logger) *Bootstrap {
	return &Bootstrap{
		prober:  prober,
		maxWait: maxWait,
		log:     log,
		state:   BootstrapPending,
	}
}

func (b *Bootstrap) Start() {
	go b.probe()
}

func (b *Bootstrap) State() BootstrapState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Retry re-arms a failed bootstrap. Pending and ready states are left
// alone so concurrent retries cannot stack probes.
func (b *Bootstrap) Retry() bool {
	b.mu.Lock()
	if b.state != BootstrapFailed {
		b.mu.Unlock()
		return false
	}
	b.state = BootstrapPending
	b.mu.Unlock()

	go b.probe()
	return true
}

func (b *Bootstrap) probe() {
	err := b.prober.WaitForReady(b.maxWait)

	b.mu.Lock()
	if err != nil {
		b.state = BootstrapFailed
	} else {
		b.state = BootstrapReady
	}
	b.mu.Unlock()

	if err != nil {
		b.log.Error("Payment gateway bootstrap failed",
			"max_wait", b.maxWait,
			"error", err,
		)
		return
	}
	b.log.Info("Payment gateway ready")
}
