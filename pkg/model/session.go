package model

import "time"

// Step is the wizard position of a booking session. Transitions move
// forward on explicit confirmation and backward one step at a time;
// StepConfirmed is terminal.
type Step string

const (
	StepDates     Step = "dates"
	StepDetails   Step = "details"
	StepPayment   Step = "payment"
	StepConfirmed Step = "confirmed"
)

func (s Step) Valid() bool {
	switch s {
	case StepDates, StepDetails, StepPayment, StepConfirmed:
		return true
	}
	return false
}

// DayLayout is the wire format for calendar days everywhere the
// engine talks dates: feed payloads, query parameters, event bodies.
const DayLayout = "2006-01-02"

// DateRange is a half-open [Start, End) span at calendar-day
// granularity. End itself is outside the range, so a departure may land
// on the Start of the next guest's range.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Contact struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,e164"`
	Message   string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

// PaymentIntent is the currently mounted payment instance for a
// session. At most one is live at a time; mounting a new one disposes
// the previous.
type PaymentIntent struct {
	ID        string    `json:"id"`
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentRequest is what the engine hands the payment provider.
// Amount is the quote total already formatted to 2 decimals.
type PaymentRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	SessionID   string `json:"session_id"`
}

// Session is one visitor's in-progress booking. It is created fresh
// per dialog open, never reused across items, and discarded on close.
type Session struct {
	ID               string         `json:"id"`
	Item             Item           `json:"item"`
	Step             Step           `json:"step"`
	CheckIn          *time.Time     `json:"check_in,omitempty"`
	CheckOut         *time.Time     `json:"check_out,omitempty"`
	AwaitingCheckout bool           `json:"awaiting_checkout"`
	Nights           int            `json:"nights"`
	Guests           int            `json:"guests"`
	Units            int            `json:"units"`
	Contact          Contact        `json:"contact"`
	Booked           []DateRange    `json:"booked,omitempty"`
	Payment          *PaymentIntent `json:"payment,omitempty"`

	// Payment outcome. Reference and TransactionID are set once a charge
	// went through; RecordFailure marks the paid-but-not-saved case the
	// widget must surface as "contact support", never as a retry.
	Reference     string `json:"reference,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	PaymentError  string `json:"payment_error,omitempty"`
	RecordFailure bool   `json:"record_failure,omitempty"`

	Closed    bool      `json:"closed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
