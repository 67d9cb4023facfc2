package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sessionerrors "rezkit/internal/sessions/errors"
	"rezkit/pkg/config"
	"rezkit/pkg/logger"
	"rezkit/pkg/model"
)

func newTestRepo(ttl time.Duration) SessionRepository {
	cfg := &config.Config{
		Log:                  logger.Discard(),
		SessionTTL:           ttl,
		SessionSweepInterval: time.Hour,
	}
	return NewMemorySessionRepository(cfg)
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(time.Hour)
	defer repo.Stop()

	sess := &model.Session{ID: "s-1", Step: model.StepDates, Guests: 1, Units: 1}
	if err := repo.Create(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.Get(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "s-1" || got.Step != model.StepDates {
		t.Errorf("unexpected session %+v", got)
	}
}

func TestCreate_DuplicateID(t *testing.T) {
	repo := newTestRepo(time.Hour)
	defer repo.Stop()

	sess := &model.Session{ID: "s-1"}
	if err := repo.Create(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(context.Background(), &model.Session{ID: "s-1"}); err == nil {
		t.Error("expected error on duplicate session ID")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepo(time.Hour)
	defer repo.Stop()

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, sessionerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	repo := newTestRepo(time.Hour)
	defer repo.Stop()

	checkIn := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	sess := &model.Session{
		ID:      "s-1",
		CheckIn: &checkIn,
		Booked:  []model.DateRange{{Start: checkIn, End: checkIn.AddDate(0, 0, 2)}},
	}
	if err := repo.Create(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := repo.Get(context.Background(), "s-1")
	*got.CheckIn = checkIn.AddDate(0, 0, 5)
	got.Booked[0].End = checkIn.AddDate(0, 0, 9)

	again, _ := repo.Get(context.Background(), "s-1")
	if !again.CheckIn.Equal(checkIn) {
		t.Error("mutating a snapshot leaked into the stored session")
	}
	if !again.Booked[0].End.Equal(checkIn.AddDate(0, 0, 2)) {
		t.Error("mutating a snapshot's booked ranges leaked into the stored session")
	}
}

func TestMutate(t *testing.T) {
	repo := newTestRepo(time.Hour)
	defer repo.Stop()

	if err := repo.Create(context.Background(), &model.Session{ID: "s-1", Guests: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.Mutate(context.Background(), "s-1", func(sess *model.Session) error {
		sess.Guests = 3
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Guests != 3 {
		t.Errorf("expected 3 guests in the returned snapshot, got %d", got.Guests)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be bumped")
	}

	stored, _ := repo.Get(context.Background(), "s-1")
	if stored.Guests != 3 {
		t.Errorf("expected 3 guests stored, got %d", stored.Guests)
	}
}

func TestMutate_ErrorLeavesSessionUntouched(t *testing.T) {
	repo := newTestRepo(time.Hour)
	defer repo.Stop()

	if err := repo.Create(context.Background(), &model.Session{ID: "s-1", Guests: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	boom := errors.New("rejected")
	_, err := repo.Mutate(context.Background(), "s-1", func(sess *model.Session) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the mutate error back, got %v", err)
	}

	stored, _ := repo.Get(context.Background(), "s-1")
	if stored.Guests != 1 {
		t.Errorf("expected guests unchanged, got %d", stored.Guests)
	}
}

func TestMutate_SerializesConcurrentWrites(t *testing.T) {
	repo := newTestRepo(time.Hour)
	defer repo.Stop()

	if err := repo.Create(context.Background(), &model.Session{ID: "s-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, _ = repo.Mutate(context.Background(), "s-1", func(sess *model.Session) error {
				sess.Nights++
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := repo.Get(context.Background(), "s-1")
	if got.Nights != writers {
		t.Errorf("expected %d increments, got %d", writers, got.Nights)
	}
}

func TestExpiry(t *testing.T) {
	repo := newTestRepo(20 * time.Millisecond)
	defer repo.Stop()

	if err := repo.Create(context.Background(), &model.Session{ID: "s-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(40 * time.Millisecond)

	if _, err := repo.Get(context.Background(), "s-1"); !errors.Is(err, sessionerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound after TTL, got %v", err)
	}
	if _, err := repo.Mutate(context.Background(), "s-1", func(*model.Session) error { return nil }); !errors.Is(err, sessionerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound after TTL, got %v", err)
	}
}

func TestMutate_ExtendsTTL(t *testing.T) {
	repo := newTestRepo(60 * time.Millisecond)
	defer repo.Stop()

	if err := repo.Create(context.Background(), &model.Session{ID: "s-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Keep touching the session past its original TTL
	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		if _, err := repo.Mutate(context.Background(), "s-1", func(*model.Session) error { return nil }); err != nil {
			t.Fatalf("session expired despite activity: %v", err)
		}
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(time.Hour)
	defer repo.Stop()

	if err := repo.Create(context.Background(), &model.Session{ID: "s-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), "s-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Get(context.Background(), "s-1"); !errors.Is(err, sessionerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(context.Background(), "s-1"); !errors.Is(err, sessionerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}
