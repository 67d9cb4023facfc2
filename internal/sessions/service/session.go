package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"rezkit/internal/availability"
	"rezkit/internal/pricing"
	sessionerrors "rezkit/internal/sessions/errors"
	"rezkit/internal/sessions/repository"
	"rezkit/internal/sessions/validator"
	"rezkit/pkg/config"
	apperrors "rezkit/pkg/errors"
	"rezkit/pkg/model"
	"rezkit/pkg/sanitizer"

	"github.com/google/uuid"
)

// ItemSource resolves the item a session is booking.
type ItemSource interface {
	GetByID(ctx context.Context, id string) (*model.Item, error)
}

// IntentDisposer tears down a mounted payment instance when the dialog
// goes away.
type IntentDisposer interface {
	Dispose(ctx context.Context, intentID string) error
}

// maxCalendarSpanDays caps how much grid a single request may ask for.
const maxCalendarSpanDays = 366

type SessionService interface {
	Open(ctx context.Context, itemID string) (*model.Session, error)
	Get(ctx context.Context, id string) (*model.Session, error)
	PickDate(ctx context.Context, id string, day time.Time) (*model.Session, error)
	SetCheckIn(ctx context.Context, id string, day time.Time) (*model.Session, error)
	SetNights(ctx context.Context, id string, nights int) (*model.Session, error)
	SetGuests(ctx context.Context, id string, guests int) (*model.Session, error)
	SetUnits(ctx context.Context, id string, units int) (*model.Session, error)
	SetContact(ctx context.Context, id string, contact model.Contact) (*model.Session, error)
	ConfirmDates(ctx context.Context, id string) (*model.Session, error)
	ConfirmDetails(ctx context.Context, id string) (*model.Session, error)
	Back(ctx context.Context, id string) (*model.Session, error)
	Close(ctx context.Context, id string) error
	Days(ctx context.Context, id string, from, to time.Time) ([]availability.DayState, error)
	Quote(ctx context.Context, id string) (model.Quote, error)
}

type sessionService struct {
	repo      repository.SessionRepository
	items     ItemSource
	fetcher   *availability.Fetcher
	validator *validator.SessionValidator
	payments  IntentDisposer
	cfg       *config.Config
	now       func() time.Time
}

func NewSessionService(
	repo repository.SessionRepository,
	items ItemSource,
	fetcher *availability.Fetcher,
	validator *validator.SessionValidator,
	payments IntentDisposer,
	cfg *config.Config,
) SessionService {
	return &sessionService{
		repo:      repo,
		items:     items,
		fetcher:   fetcher,
		validator: validator,
		payments:  payments,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *sessionService) Open(ctx context.Context, itemID string) (*model.Session, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sess := &model.Session{
		ID:        uuid.New().String(),
		Item:      *item,
		Step:      model.StepDates,
		Guests:    1,
		Units:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		s.cfg.Log.Error("Failed to store session",
			"item_id", itemID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to open session", err)
	}

	// The calendar renders immediately; booked ranges land on the
	// session once the feed answers.
	go s.refreshAvailability(context.Background(), sess.ID, item.AvailabilitySource)

	s.cfg.Log.Info("Session opened",
		"session_id", sess.ID,
		"item_id", itemID,
		"item_name", item.Name,
	)
	return sess, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sessionerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Session", id)
		}
		return nil, apperrors.Internal("Failed to load session", err)
	}
	return sess, nil
}

func (s *sessionService) PickDate(ctx context.Context, id string, day time.Time) (*model.Session, error) {
	day = availability.Day(day)
	today := availability.Day(s.now())

	return s.update(ctx, id, func(sess *model.Session) error {
		if err := dateStepGuard(sess); err != nil {
			return err
		}

		selectCheckout := sess.Item.Config.SelectCheckout

		// While a checkout is pending, only a reachable later day does
		// anything. Every other click on the calendar is dead.
		if selectCheckout && sess.AwaitingCheckout && sess.CheckIn != nil {
			if availability.SelectableCheckOut(day, *sess.CheckIn, sess.Booked) {
				d := day
				sess.CheckOut = &d
				sess.AwaitingCheckout = false
			}
			return nil
		}

		if availability.SelectableCheckIn(day, today, sess.Booked) {
			d := day
			sess.CheckIn = &d
			sess.CheckOut = nil
			sess.AwaitingCheckout = selectCheckout
		}
		return nil
	})
}

func (s *sessionService) SetCheckIn(ctx context.Context, id string, day time.Time) (*model.Session, error) {
	day = availability.Day(day)
	today := availability.Day(s.now())

	return s.update(ctx, id, func(sess *model.Session) error {
		if err := dateStepGuard(sess); err != nil {
			return err
		}

		if !availability.SelectableCheckIn(day, today, sess.Booked) {
			return apperrors.Validation("Check-in date is not available", map[string]any{
				"date": day.Format(model.DayLayout),
			})
		}

		// An existing checkout survives only if it still lies ahead of
		// the new check-in and the span between them stays clear.
		if sess.CheckOut != nil {
			out := availability.Day(*sess.CheckOut)
			if !out.After(day) || !availability.SelectableCheckOut(out, day, sess.Booked) {
				sess.CheckOut = nil
			}
		}

		d := day
		sess.CheckIn = &d
		sess.AwaitingCheckout = sess.Item.Config.SelectCheckout && sess.CheckOut == nil
		return nil
	})
}

func (s *sessionService) SetNights(ctx context.Context, id string, nights int) (*model.Session, error) {
	return s.update(ctx, id, func(sess *model.Session) error {
		if err := dateStepGuard(sess); err != nil {
			return err
		}

		if sess.Item.Config.SelectCheckout {
			return apperrors.InvalidInput("This item takes a checkout date, not a number of nights")
		}
		if nights < 1 || nights > sess.Item.Config.MaxNights {
			return apperrors.Validation("Night count out of range", map[string]any{
				"min": 1,
				"max": sess.Item.Config.MaxNights,
			})
		}

		sess.Nights = nights
		return nil
	})
}

func (s *sessionService) SetGuests(ctx context.Context, id string, guests int) (*model.Session, error) {
	return s.update(ctx, id, func(sess *model.Session) error {
		if err := dateStepGuard(sess); err != nil {
			return err
		}

		if !sess.Item.Config.HasGuestSelector() {
			return apperrors.InvalidInput("Guest selection is disabled for this item")
		}

		limit := sess.Item.Config.GuestCap(sess.Units)
		if guests < 1 || guests > limit {
			return apperrors.Validation("Guest count out of range", map[string]any{
				"min": 1,
				"max": limit,
			})
		}

		sess.Guests = guests
		return nil
	})
}

func (s *sessionService) SetUnits(ctx context.Context, id string, units int) (*model.Session, error) {
	return s.update(ctx, id, func(sess *model.Session) error {
		if err := dateStepGuard(sess); err != nil {
			return err
		}

		if units < 1 || units > sess.Item.Config.MaxUnits {
			return apperrors.Validation("Unit count out of range", map[string]any{
				"min": 1,
				"max": sess.Item.Config.MaxUnits,
			})
		}

		sess.Units = units
		return nil
	})
}

func (s *sessionService) SetContact(ctx context.Context, id string, contact model.Contact) (*model.Session, error) {
	contact.FirstName = sanitizer.NormalizeName(contact.FirstName)
	contact.LastName = sanitizer.NormalizeName(contact.LastName)
	contact.Email = strings.ToLower(sanitizer.TrimAndNormalize(contact.Email))
	contact.Message = sanitizer.TrimAndNormalize(contact.Message)

	if contact.Phone != "" {
		normalized := sanitizer.NormalizePhone(contact.Phone)
		if normalized == "" {
			return nil, apperrors.Validation("Phone number could not be parsed", map[string]any{
				"phone": contact.Phone,
			})
		}
		contact.Phone = normalized
	}

	return s.update(ctx, id, func(sess *model.Session) error {
		if sess.Closed {
			return apperrors.SessionClosed(sess.ID)
		}
		if sess.Step != model.StepDetails {
			return apperrors.Conflict("Guest details can only change on the details step")
		}

		if err := s.validator.ValidateContact(contact); err != nil {
			return apperrors.Validation("Contact validation failed", map[string]any{
				"error": err.Error(),
			})
		}

		sess.Contact = contact
		return nil
	})
}

func (s *sessionService) ConfirmDates(ctx context.Context, id string) (*model.Session, error) {
	today := availability.Day(s.now())

	sess, err := s.update(ctx, id, func(sess *model.Session) error {
		if err := dateStepGuard(sess); err != nil {
			return err
		}

		if err := datesComplete(sess, today); err != nil {
			return err
		}

		sess.Step = model.StepDetails
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Dates confirmed",
		"session_id", sess.ID,
		"check_in", formatDay(sess.CheckIn),
		"check_out", formatDay(sess.CheckOut),
		"nights", sess.Nights,
	)
	return sess, nil
}

func (s *sessionService) ConfirmDetails(ctx context.Context, id string) (*model.Session, error) {
	return s.update(ctx, id, func(sess *model.Session) error {
		if sess.Closed {
			return apperrors.SessionClosed(sess.ID)
		}
		if sess.Step != model.StepDetails {
			return apperrors.Conflict("Details can only be confirmed on the details step")
		}

		if err := s.validator.ValidateContact(sess.Contact); err != nil {
			return apperrors.Validation("Guest details are incomplete", map[string]any{
				"error": err.Error(),
			})
		}

		sess.Step = model.StepPayment
		return nil
	})
}

func (s *sessionService) Back(ctx context.Context, id string) (*model.Session, error) {
	return s.update(ctx, id, func(sess *model.Session) error {
		if sess.Closed {
			return apperrors.SessionClosed(sess.ID)
		}

		switch sess.Step {
		case model.StepConfirmed:
			return apperrors.Conflict("Booking already confirmed")
		case model.StepPayment:
			sess.Step = model.StepDetails
			sess.PaymentError = ""
		case model.StepDetails:
			sess.Step = model.StepDates
		case model.StepDates:
			// nothing behind the first step
		}
		return nil
	})
}

func (s *sessionService) Close(ctx context.Context, id string) error {
	sess, err := s.update(ctx, id, func(sess *model.Session) error {
		sess.Closed = true
		return nil
	})
	if err != nil {
		return err
	}

	if sess.Payment != nil && s.payments != nil {
		if err := s.payments.Dispose(ctx, sess.Payment.ID); err != nil {
			s.cfg.Log.Warn("Failed to dispose payment instance on close",
				"session_id", id,
				"intent_id", sess.Payment.ID,
				"error", err,
			)
		}
	}

	s.cfg.Log.Info("Session closed", "session_id", id, "step", sess.Step)
	return nil
}

func (s *sessionService) Days(ctx context.Context, id string, from, to time.Time) ([]availability.DayState, error) {
	from = availability.Day(from)
	to = availability.Day(to)

	if to.Before(from) {
		return nil, apperrors.InvalidInput("'to' must not be before 'from'")
	}
	if int(to.Sub(from).Hours())/24 >= maxCalendarSpanDays {
		return nil, apperrors.InvalidInput("Calendar span too large")
	}

	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	today := availability.Day(s.now())
	sel := availability.Selection{CheckIn: sess.CheckIn, CheckOut: sess.CheckOut}
	return availability.Grid(from, to, today, sel, sess.Booked), nil
}

func (s *sessionService) Quote(ctx context.Context, id string) (model.Quote, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return model.Quote{}, err
	}
	return pricing.Quote(sess.Item.PricePerUnit, staySelection(sess), sess.Item.Config), nil
}

// update wraps repository mutation with the common error mapping.
func (s *sessionService) update(ctx context.Context, id string, fn repository.MutateFunc) (*model.Session, error) {
	sess, err := s.repo.Mutate(ctx, id, fn)
	if err != nil {
		if errors.Is(err, sessionerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Session", id)
		}
		return nil, err
	}
	return sess, nil
}

// refreshAvailability pulls the item's feed and applies it to the
// session. Sessions that closed or expired in the meantime just drop
// the result.
func (s *sessionService) refreshAvailability(ctx context.Context, sessionID, sourceURL string) {
	ranges := s.fetcher.BookedRanges(ctx, sourceURL)
	if len(ranges) == 0 {
		return
	}

	_, err := s.repo.Mutate(ctx, sessionID, func(sess *model.Session) error {
		if sess.Closed {
			return nil
		}
		sess.Booked = ranges
		return nil
	})
	if err != nil && !errors.Is(err, sessionerrors.ErrNotFound) {
		s.cfg.Log.Warn("Failed to apply availability to session",
			"session_id", sessionID,
			"error", err,
		)
	}
}

// dateStepGuard rejects date and occupancy changes outside the dates
// step, and anything at all on a closed session.
func dateStepGuard(sess *model.Session) error {
	if sess.Closed {
		return apperrors.SessionClosed(sess.ID)
	}
	if sess.Step != model.StepDates {
		return apperrors.Conflict("Selection can only change on the dates step")
	}
	return nil
}

// datesComplete is the gate between the dates step and the details
// step. Selections made before the availability feed answered get
// re-checked here against the ranges that have since arrived.
func datesComplete(sess *model.Session, today time.Time) error {
	details := map[string]any{}
	cfg := sess.Item.Config

	if sess.CheckIn == nil {
		details["check_in"] = "required"
	} else if !availability.SelectableCheckIn(*sess.CheckIn, today, sess.Booked) {
		details["check_in"] = "unavailable"
	}

	if cfg.SelectCheckout {
		if sess.CheckOut == nil {
			if sess.CheckIn != nil {
				details["check_out"] = "required"
			}
		} else if sess.CheckIn != nil && !availability.SelectableCheckOut(*sess.CheckOut, *sess.CheckIn, sess.Booked) {
			details["check_out"] = "unavailable"
		}
	} else if sess.Nights < 1 {
		details["nights"] = "required"
	}

	if sess.Units < 1 || sess.Units > cfg.MaxUnits {
		details["units"] = "out of range"
	}

	if sess.Item.Config.HasGuestSelector() {
		if limit := sess.Item.Config.GuestCap(sess.Units); sess.Guests < 1 || sess.Guests > limit {
			details["guests"] = "out of range"
		}
	}

	if len(details) > 0 {
		return apperrors.Validation("Dates selection is incomplete", details)
	}
	return nil
}

func staySelection(sess *model.Session) pricing.StaySelection {
	return pricing.StaySelection{
		CheckIn:  sess.CheckIn,
		CheckOut: sess.CheckOut,
		Nights:   sess.Nights,
		Guests:   sess.Guests,
		Units:    sess.Units,
	}
}

func formatDay(day *time.Time) string {
	if day == nil {
		return ""
	}
	return day.Format(model.DayLayout)
}
