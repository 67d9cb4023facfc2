package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rezkit/internal/pricing"
	sessionerrors "rezkit/internal/sessions/errors"
	"rezkit/internal/sessions/repository"
	"rezkit/pkg/config"
	apperrors "rezkit/pkg/errors"
	"rezkit/pkg/model"
)

type CheckoutService interface {
	BeginPayment(ctx context.Context, sessionID string) (*model.Session, error)
	HandleApproved(ctx context.Context, sessionID, intentID string) error
	HandleFailed(ctx context.Context, sessionID, intentID, reason string) error
	GatewayState() BootstrapState
	RetryBootstrap() BootstrapState
}

type checkoutService struct {
	sessions  repository.SessionRepository
	gateway   Gateway
	bootstrap *Bootstrap
	sink      RecordSink
	events    EventPublisher
	cfg       *config.Config
	now       func() time.Time
}

func NewCheckoutService(
	sessions repository.SessionRepository,
	gateway Gateway,
	bootstrap *Bootstrap,
	sink RecordSink,
	events EventPublisher,
	cfg *config.Config,
) CheckoutService {
	return &checkoutService{
		sessions:  sessions,
		gateway:   gateway,
		bootstrap: bootstrap,
		sink:      sink,
		events:    events,
		cfg:       cfg,
		now:       time.Now,
	}
}

// BeginPayment mounts a fresh payment intent for the session's current
// quote. Any previously mounted intent is disposed first so at most one
// charge can ever go through.
func (s *checkoutService) BeginPayment(ctx context.Context, sessionID string) (*model.Session, error) {
	switch s.bootstrap.State() {
	case BootstrapReady:
	case BootstrapFailed:
		return nil, apperrors.PaymentUnavailable("Payment system failed to load")
	default:
		return nil, apperrors.PaymentUnavailable("Payment system is still loading")
	}

	sess, err := s.mutate(ctx, sessionID, func(sess *model.Session) error {
		if sess.Closed {
			return apperrors.SessionClosed(sess.ID)
		}
		if sess.RecordFailure {
			// The charge already went through once. Retrying would
			// charge the guest twice.
			return apperrors.RecordNotSaved(sess.Reference, sess.TransactionID, nil)
		}
		if sess.Step != model.StepPayment {
			return apperrors.Conflict("Payment can only start on the payment step")
		}

		quote := pricing.Quote(sess.Item.PricePerUnit, staySelection(sess), sess.Item.Config)
		if quote.Total <= 0 {
			return apperrors.Validation("Nothing to charge for the current selection", nil)
		}

		if sess.Payment != nil {
			if err := s.gateway.Dispose(ctx, sess.Payment.ID); err != nil {
				s.cfg.Log.Warn("Failed to dispose previous payment intent",
					"session_id", sess.ID,
					"intent_id", sess.Payment.ID,
					"error", err,
				)
			}
		}

		amount := pricing.FormatAmount(quote.Total)
		intentID, err := s.gateway.CreatePayment(ctx, model.PaymentRequest{
			Amount:      amount,
			Currency:    sess.Item.Currency,
			Description: stayDescription(sess),
			SessionID:   sess.ID,
		})
		if err != nil {
			return err
		}

		sess.Payment = &model.PaymentIntent{
			ID:        intentID,
			Amount:    amount,
			Currency:  sess.Item.Currency,
			CreatedAt: s.now().UTC(),
		}
		sess.PaymentError = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Payment intent mounted",
		"session_id", sess.ID,
		"intent_id", sess.Payment.ID,
		"amount", sess.Payment.Amount,
		"currency", sess.Payment.Currency,
	)
	return sess, nil
}

// HandleApproved runs on the provider's approval callback: capture the
// charge, freeze the booking record, persist it, announce it. A record
// that cannot be persisted after capture leaves the session flagged for
// support instead of inviting a second charge.
func (s *checkoutService) HandleApproved(ctx context.Context, sessionID, intentID string) error {
	var record *model.BookingRecord
	var saveErr error

	sess, err := s.mutate(ctx, sessionID, func(sess *model.Session) error {
		if sess.Closed {
			s.cfg.Log.Warn("Dropped payment approval for closed session",
				"session_id", sess.ID,
				"intent_id", intentID,
			)
			return nil
		}
		if sess.Step == model.StepConfirmed || sess.RecordFailure {
			// Replayed callback; the charge outcome is already settled.
			return nil
		}
		if sess.Step != model.StepPayment || sess.Payment == nil || sess.Payment.ID != intentID {
			return apperrors.Conflict("Approval does not match the mounted payment intent")
		}

		transactionID, err := s.gateway.CapturePayment(ctx, intentID)
		if err != nil {
			appErr := apperrors.AsAppError(err)
			sess.PaymentError = appErr.Message
			s.cfg.Log.Warn("Payment capture failed",
				"session_id", sess.ID,
				"intent_id", intentID,
				"code", appErr.Code,
				"error", err,
			)
			return nil
		}

		reference := uuid.New().String()
		record = BuildRecord(sess, reference, transactionID, s.now().UTC())

		if err := s.sink.Save(ctx, record); err != nil {
			// The charge settled, so the intent is spent either way.
			sess.Reference = reference
			sess.TransactionID = transactionID
			sess.RecordFailure = true
			sess.PaymentError = ""
			sess.Payment = nil
			saveErr = err
			return nil
		}

		sess.Step = model.StepConfirmed
		sess.Reference = reference
		sess.TransactionID = transactionID
		sess.PaymentError = ""
		sess.Payment = nil
		return nil
	})
	if err != nil {
		return err
	}

	if saveErr != nil {
		s.cfg.Log.Error("Booking record was not saved after capture",
			"session_id", sessionID,
			"reference", record.Reference,
			"transaction_id", record.TransactionID,
			"error", saveErr,
		)
		if pubErr := s.events.RecordFailed(ctx, sessionID, record, saveErr); pubErr != nil {
			s.cfg.Log.Error("Failed to publish record failure alert",
				"session_id", sessionID,
				"reference", record.Reference,
				"error", pubErr,
			)
		}
		return apperrors.RecordNotSaved(record.Reference, record.TransactionID, saveErr)
	}

	if sess.Step == model.StepConfirmed && record != nil {
		s.cfg.Log.Info("Booking confirmed",
			"session_id", sessionID,
			"reference", sess.Reference,
			"transaction_id", sess.TransactionID,
		)
		if pubErr := s.events.BookingConfirmed(ctx, sessionID, record); pubErr != nil {
			s.cfg.Log.Warn("Failed to publish booking confirmation",
				"session_id", sessionID,
				"reference", sess.Reference,
				"error", pubErr,
			)
		}
	}
	return nil
}

// HandleFailed records the provider's failure callback on the session.
// Failures for an intent that was already replaced are dropped.
func (s *checkoutService) HandleFailed(ctx context.Context, sessionID, intentID, reason string) error {
	if reason == "" {
		reason = "Payment was not completed"
	}

	recorded := false
	_, err := s.mutate(ctx, sessionID, func(sess *model.Session) error {
		if sess.Closed || sess.Step != model.StepPayment {
			return nil
		}
		if sess.Payment == nil || sess.Payment.ID != intentID {
			return nil
		}

		sess.PaymentError = reason
		recorded = true
		return nil
	})
	if err != nil {
		return err
	}

	if recorded {
		s.cfg.Log.Info("Payment failure recorded",
			"session_id", sessionID,
			"intent_id", intentID,
			"reason", reason,
		)
	} else {
		s.cfg.Log.Debug("Dropped stale payment failure",
			"session_id", sessionID,
			"intent_id", intentID,
		)
	}
	return nil
}

func (s *checkoutService) GatewayState() BootstrapState {
	return s.bootstrap.State()
}

func (s *checkoutService) RetryBootstrap() BootstrapState {
	if s.bootstrap.Retry() {
		s.cfg.Log.Info("Payment gateway bootstrap retry requested")
	}
	return s.bootstrap.State()
}

func (s *checkoutService) mutate(ctx context.Context, id string, fn repository.MutateFunc) (*model.Session, error) {
	sess, err := s.sessions.Mutate(ctx, id, fn)
	if err != nil {
		if errors.Is(err, sessionerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Session", id)
		}
		return nil, err
	}
	return sess, nil
}

func stayDescription(sess *model.Session) string {
	checkIn := sess.CheckIn.Format(model.DayLayout)
	if sess.CheckOut != nil {
		return fmt.Sprintf("%s, %s to %s", sess.Item.Name, checkIn, sess.CheckOut.Format(model.DayLayout))
	}
	return fmt.Sprintf("%s, %s, %d nights", sess.Item.Name, checkIn, sess.Nights)
}
