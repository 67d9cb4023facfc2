package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	sessionerrors "rezkit/internal/sessions/errors"
	"rezkit/pkg/config"
	"rezkit/pkg/model"
)

// MutateFunc runs against a session while its entry lock is held. It
// must validate before it writes; returning an error leaves the session
// exactly as it was.
type MutateFunc func(sess *model.Session) error

type SessionRepository interface {
	Create(ctx context.Context, sess *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Mutate(ctx context.Context, id string, fn MutateFunc) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	Stop()
}

// memorySessionRepository keeps live sessions in process memory.
// Sessions are ephemeral dialog state, they die with the visitor or the
// TTL, so they never touch Mongo. Every widget action for one session
// funnels through that session's entry lock, which is what serializes
// concurrent clicks.
type memorySessionRepository struct {
	cfg     *config.Config
	mu      sync.RWMutex
	entries map[string]*entry
	stop    chan struct{}
	once    sync.Once
}

type entry struct {
	mu        sync.Mutex
	sess      *model.Session
	expiresAt time.Time
}

func NewMemorySessionRepository(cfg *config.Config) SessionRepository {
	r := &memorySessionRepository{
		cfg:     cfg,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}

	go r.sweepLoop()

	return r
}

func (r *memorySessionRepository) Create(ctx context.Context, sess *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[sess.ID]; exists {
		return fmt.Errorf("session %s already exists", sess.ID)
	}

	r.entries[sess.ID] = &entry{
		sess:      sess,
		expiresAt: time.Now().Add(r.cfg.SessionTTL),
	}
	return nil
}

func (r *memorySessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.sess), nil
}

func (r *memorySessionRepository) Mutate(ctx context.Context, id string, fn MutateFunc) (*model.Session, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.sess); err != nil {
		return nil, err
	}

	e.sess.UpdatedAt = time.Now().UTC()
	e.expiresAt = time.Now().Add(r.cfg.SessionTTL)
	return clone(e.sess), nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; !exists {
		return fmt.Errorf("%w: %s", sessionerrors.ErrNotFound, id)
	}
	delete(r.entries, id)
	return nil
}

// Stop halts the TTL sweeper.
func (r *memorySessionRepository) Stop() {
	r.once.Do(func() {
		close(r.stop)
	})
}

func (r *memorySessionRepository) lookup(id string) (*entry, error) {
	r.mu.RLock()
	e, exists := r.entries[id]
	r.mu.RUnlock()

	if !exists || time.Now().After(e.expiresAt) {
		return nil, fmt.Errorf("%w: %s", sessionerrors.ErrNotFound, id)
	}
	return e, nil
}

func (r *memorySessionRepository) sweepLoop() {
	ticker := time.NewTicker(r.cfg.SessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stop:
			return
		}
	}
}

func (r *memorySessionRepository) sweep() {
	now := time.Now()

	r.mu.Lock()
	var expired int
	for id, e := range r.entries {
		if now.After(e.expiresAt) {
			delete(r.entries, id)
			expired++
		}
	}
	remaining := len(r.entries)
	r.mu.Unlock()

	if expired > 0 {
		r.cfg.Log.Debug("Swept expired sessions",
			"expired", expired,
			"remaining", remaining,
		)
	}
}

// clone returns a snapshot safe to hand out after the entry lock is
// released.
func clone(sess *model.Session) *model.Session {
	c := *sess

	if sess.CheckIn != nil {
		v := *sess.CheckIn
		c.CheckIn = &v
	}
	if sess.CheckOut != nil {
		v := *sess.CheckOut
		c.CheckOut = &v
	}
	if sess.Payment != nil {
		v := *sess.Payment
		c.Payment = &v
	}
	if sess.Booked != nil {
		c.Booked = append([]model.DateRange(nil), sess.Booked...)
	}

	return &c
}
