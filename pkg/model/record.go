package model

import "time"

// BookingRecord is the terminal entity of a session, assembled only
// after payment capture and never mutated afterwards. Total carries
// the charged amount as a fixed-point 2-decimal string.
type BookingRecord struct {
	ID            string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Reference     string     `json:"reference" bson:"reference" validate:"required,uuid4"`
	ItemID        string     `json:"item_id" bson:"item_id" validate:"required"`
	ItemName      string     `json:"item_name" bson:"item_name" validate:"required"`
	CheckIn       time.Time  `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut      *time.Time `json:"check_out,omitempty" bson:"check_out,omitempty"`
	Nights        int        `json:"nights" bson:"nights" validate:"required,min=1"`
	Guests        int        `json:"guests" bson:"guests" validate:"required,min=1"`
	Units         int        `json:"units" bson:"units" validate:"required,min=1"`
	Total         string     `json:"total" bson:"total" validate:"required"`
	Currency      string     `json:"currency" bson:"currency" validate:"required,iso4217"`
	FirstName     string     `json:"first_name" bson:"first_name" validate:"required"`
	LastName      string     `json:"last_name" bson:"last_name" validate:"required"`
	Email         string     `json:"email" bson:"email" validate:"required,email"`
	Phone         string     `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Country       string     `json:"country,omitempty" bson:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`
	Message       string     `json:"message,omitempty" bson:"message,omitempty"`
	TransactionID string     `json:"transaction_id" bson:"transaction_id" validate:"required"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
}

// RecordFilter narrows record listings.
type RecordFilter struct {
	ItemID string     `json:"item_id,omitempty"`
	Email  string     `json:"email,omitempty"`
	From   *time.Time `json:"from,omitempty"`
	To     *time.Time `json:"to,omitempty"`
	Limit  int64      `json:"limit,omitempty"`
	Offset int64      `json:"offset,omitempty"`
}
