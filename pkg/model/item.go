package model

import "time"

type Item struct {
	ID                 string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name               string        `json:"name" bson:"name" validate:"required,min=2,max=200"`
	PricePerUnit       float64       `json:"price_per_unit" bson:"price_per_unit" validate:"required,gt=0"`
	Currency           string        `json:"currency" bson:"currency" validate:"required,iso4217"`
	AvailabilitySource string        `json:"availability_source,omitempty" bson:"availability_source,omitempty" validate:"omitempty,https_url"`
	Config             BookingConfig `json:"config" bson:"config" validate:"required"`
	CreatedAt          time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type BookingConfig struct {
	MaxNights         int     `json:"max_nights" bson:"max_nights" validate:"required,min=1,max=365"`
	MaxUnits          int     `json:"max_units" bson:"max_units" validate:"required,min=1,max=100"`
	MaxGuests         int     `json:"max_guests" bson:"max_guests" validate:"min=0,max=500"`
	MaxGuestsPerUnit  int     `json:"max_guests_per_unit" bson:"max_guests_per_unit" validate:"min=0,max=100"`
	BaseGuestsPerUnit int     `json:"base_guests_per_unit" bson:"base_guests_per_unit" validate:"required,min=1,max=100"`
	UnitLabel         string  `json:"unit_label,omitempty" bson:"unit_label,omitempty" validate:"omitempty,max=50"`
	HasCityTax        bool    `json:"has_city_tax" bson:"has_city_tax"`
	CityTaxPerNight   float64 `json:"city_tax_per_night" bson:"city_tax_per_night" validate:"min=0"`
	ExtraPersonFee    float64 `json:"extra_person_fee" bson:"extra_person_fee" validate:"min=0"`
	SelectCheckout    bool    `json:"select_checkout" bson:"select_checkout"`
	PerPersonPricing  bool    `json:"per_person_pricing" bson:"per_person_pricing"`
}

type ItemUpdate struct {
	Name               string         `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	PricePerUnit       *float64       `json:"price_per_unit,omitempty" validate:"omitempty,gt=0"`
	Currency           string         `json:"currency,omitempty" validate:"omitempty,iso4217"`
	AvailabilitySource *string        `json:"availability_source,omitempty" validate:"omitempty,https_url"`
	Config             *BookingConfig `json:"config,omitempty" validate:"omitempty"`
}

// GuestCap resolves the effective upper bound for the guest selector.
// MaxGuests wins when set; otherwise the per-unit cap scales with the
// selected unit count. Zero means the selector is hidden and the guest
// count stays pinned at 1.
func (c BookingConfig) GuestCap(units int) int {
	if c.MaxGuests > 0 {
		return c.MaxGuests
	}
	if c.MaxGuestsPerUnit > 0 {
		if units < 1 {
			units = 1
		}
		return c.MaxGuestsPerUnit * units
	}
	return 0
}

// HasGuestSelector reports whether guest count is user-adjustable.
func (c BookingConfig) HasGuestSelector() bool {
	return c.MaxGuests > 0 || c.MaxGuestsPerUnit > 0
}

// HasUnitSelector reports whether unit count is user-adjustable.
func (c BookingConfig) HasUnitSelector() bool {
	return c.MaxUnits > 1
}
