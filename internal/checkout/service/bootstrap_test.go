package service

import (
	"errors"
	"testing"
	"time"

	"rezkit/pkg/logger"
)

func waitForState(t *testing.T, b *Bootstrap, want BootstrapState) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if b.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("bootstrap never reached %s, stuck at %s", want, b.State())
}

func TestBootstrap_StartsPending(t *testing.T) {
	b := NewBootstrap(&stubProber{}, time.Millisecond, logger.Discard())

	if state := b.State(); state != BootstrapPending {
		t.Errorf("expected pending before probe, got %s", state)
	}
}

func TestBootstrap_ProbeOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		probeErr error
		want     BootstrapState
	}{
		{"provider healthy", nil, BootstrapReady},
		{"provider unreachable", errors.New("health check timed out"), BootstrapFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBootstrap(&stubProber{err: tt.probeErr}, time.Millisecond, logger.Discard())
			b.probe()

			if state := b.State(); state != tt.want {
				t.Errorf("expected %s, got %s", tt.want, state)
			}
		})
	}
}

func TestBootstrap_RetryOnlyAfterFailure(t *testing.T) {
	prober := &stubProber{err: errors.New("health check timed out")}
	b := NewBootstrap(prober, time.Millisecond, logger.Discard())

	if b.Retry() {
		t.Error("expected retry to be refused while pending")
	}

	b.probe()
	if state := b.State(); state != BootstrapFailed {
		t.Fatalf("expected failed, got %s", state)
	}

	prober.err = nil
	if !b.Retry() {
		t.Fatal("expected retry to be accepted after failure")
	}
	waitForState(t, b, BootstrapReady)

	if b.Retry() {
		t.Error("expected retry to be refused once ready")
	}
}
