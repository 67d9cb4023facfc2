package pricing

import (
	"fmt"
	"time"

	"rezkit/internal/availability"
	"rezkit/pkg/model"
)

// StaySelection is the slice of a session a quote depends on.
type StaySelection struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	Nights   int
	Guests   int
	Units    int
}

// NightCount derives the billable nights from a selection. Items that
// take a checkout date count whole days between the two dates; items
// that take a night count use it as picked. An incomplete selection
// yields zero.
func NightCount(sel StaySelection, selectCheckout bool) int {
	if sel.CheckIn == nil {
		return 0
	}

	if selectCheckout {
		if sel.CheckOut == nil {
			return 0
		}
		in := availability.Day(*sel.CheckIn)
		out := availability.Day(*sel.CheckOut)
		nights := int(out.Sub(in).Hours()) / 24
		if nights < 1 {
			nights = 1
		}
		return nights
	}

	if sel.Nights < 1 {
		return 0
	}
	return sel.Nights
}

// Quote prices a selection against an item's configuration. Amounts
// keep full float precision here; rounding happens once, at display and
// submission time, through FormatAmount. An incomplete selection prices
// to a zero quote rather than an error so the widget can always render.
func Quote(pricePerUnit float64, sel StaySelection, cfg model.BookingConfig) model.Quote {
	nights := NightCount(sel, cfg.SelectCheckout)
	if nights == 0 {
		return model.Quote{}
	}

	guests := sel.Guests
	if guests < 1 {
		guests = 1
	}
	units := sel.Units
	if units < 1 {
		units = 1
	}

	// Per-person items price the whole stay per guest. Nights and units
	// do not multiply in, and the extra guest fee is charged once per
	// stay rather than per night.
	var subtotal, extraGuestFee float64
	extraGuests := guests - cfg.BaseGuestsPerUnit
	if extraGuests < 0 {
		extraGuests = 0
	}

	if cfg.PerPersonPricing {
		subtotal = pricePerUnit * float64(guests)
		extraGuestFee = float64(extraGuests) * cfg.ExtraPersonFee
	} else {
		subtotal = pricePerUnit * float64(nights) * float64(units)
		extraGuestFee = float64(extraGuests) * cfg.ExtraPersonFee * float64(nights)
	}

	var cityTax float64
	if cfg.HasCityTax {
		cityTax = cfg.CityTaxPerNight * float64(guests) * float64(nights)
	}

	return model.Quote{
		Nights:        nights,
		Subtotal:      subtotal,
		ExtraGuestFee: extraGuestFee,
		CityTax:       cityTax,
		Total:         subtotal + extraGuestFee + cityTax,
	}
}

// FormatAmount renders a monetary amount with two decimals, the only
// place rounding is applied.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
