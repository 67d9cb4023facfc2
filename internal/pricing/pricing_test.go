package pricing

import (
	"math"
	"testing"
	"time"

	"rezkit/pkg/model"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(model.DayLayout, value, time.UTC)
	if err != nil {
		t.Fatalf("bad day literal %q: %v", value, err)
	}
	return d
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQuote_BaseAmount(t *testing.T) {
	checkIn := day(t, "2026-01-10")
	checkOut := day(t, "2026-01-13")

	quote := Quote(100, StaySelection{
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Guests:   2,
		Units:    1,
	}, model.BookingConfig{
		SelectCheckout:    true,
		BaseGuestsPerUnit: 2,
	})

	if quote.Nights != 3 {
		t.Errorf("expected 3 nights, got %d", quote.Nights)
	}
	if !approx(quote.Subtotal, 300) {
		t.Errorf("expected subtotal 300, got %v", quote.Subtotal)
	}
	if !approx(quote.Total, 300) {
		t.Errorf("expected total 300, got %v", quote.Total)
	}
}

func TestQuote_CityTax(t *testing.T) {
	checkIn := day(t, "2026-01-10")
	checkOut := day(t, "2026-01-13")

	quote := Quote(100, StaySelection{
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Guests:   2,
		Units:    1,
	}, model.BookingConfig{
		SelectCheckout:    true,
		BaseGuestsPerUnit: 2,
		HasCityTax:        true,
		CityTaxPerNight:   2.5,
	})

	// 2.50 per guest per night, 2 guests, 3 nights
	if !approx(quote.CityTax, 15) {
		t.Errorf("expected city tax 15, got %v", quote.CityTax)
	}
	if !approx(quote.Total, 315) {
		t.Errorf("expected total 315, got %v", quote.Total)
	}
}

func TestQuote_ExtraGuestFee(t *testing.T) {
	checkIn := day(t, "2026-01-10")
	checkOut := day(t, "2026-01-12")

	quote := Quote(100, StaySelection{
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Guests:   4,
		Units:    1,
	}, model.BookingConfig{
		SelectCheckout:    true,
		BaseGuestsPerUnit: 2,
		ExtraPersonFee:    10,
	})

	// 2 guests above base, 10 each, 2 nights
	if !approx(quote.ExtraGuestFee, 40) {
		t.Errorf("expected extra guest fee 40, got %v", quote.ExtraGuestFee)
	}
	if !approx(quote.Total, 240) {
		t.Errorf("expected total 240, got %v", quote.Total)
	}
}

func TestQuote_GuestsWithinBasePayNoFee(t *testing.T) {
	checkIn := day(t, "2026-01-10")
	checkOut := day(t, "2026-01-12")

	quote := Quote(100, StaySelection{
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Guests:   2,
		Units:    1,
	}, model.BookingConfig{
		SelectCheckout:    true,
		BaseGuestsPerUnit: 3,
		ExtraPersonFee:    10,
	})

	if quote.ExtraGuestFee != 0 {
		t.Errorf("expected no extra guest fee, got %v", quote.ExtraGuestFee)
	}
}

func TestQuote_PerPersonPricing(t *testing.T) {
	checkIn := day(t, "2026-01-10")
	checkOut := day(t, "2026-01-13")

	quote := Quote(50, StaySelection{
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Guests:   4,
		Units:    2,
	}, model.BookingConfig{
		SelectCheckout:    true,
		PerPersonPricing:  true,
		BaseGuestsPerUnit: 2,
		ExtraPersonFee:    10,
	})

	// Price per guest, nights and units stay out of the subtotal
	if !approx(quote.Subtotal, 200) {
		t.Errorf("expected subtotal 200, got %v", quote.Subtotal)
	}
	// Extra guest fee charged once per stay
	if !approx(quote.ExtraGuestFee, 20) {
		t.Errorf("expected extra guest fee 20, got %v", quote.ExtraGuestFee)
	}
	if !approx(quote.Total, 220) {
		t.Errorf("expected total 220, got %v", quote.Total)
	}
}

func TestQuote_UnitsMultiply(t *testing.T) {
	checkIn := day(t, "2026-01-10")
	checkOut := day(t, "2026-01-12")

	quote := Quote(80, StaySelection{
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Guests:   2,
		Units:    3,
	}, model.BookingConfig{
		SelectCheckout:    true,
		BaseGuestsPerUnit: 2,
	})

	if !approx(quote.Subtotal, 480) {
		t.Errorf("expected subtotal 480, got %v", quote.Subtotal)
	}
}

func TestQuote_NightsMode(t *testing.T) {
	checkIn := day(t, "2026-01-10")

	quote := Quote(100, StaySelection{
		CheckIn: &checkIn,
		Nights:  4,
		Guests:  1,
		Units:   1,
	}, model.BookingConfig{
		BaseGuestsPerUnit: 1,
	})

	if quote.Nights != 4 {
		t.Errorf("expected 4 nights, got %d", quote.Nights)
	}
	if !approx(quote.Subtotal, 400) {
		t.Errorf("expected subtotal 400, got %v", quote.Subtotal)
	}
}

func TestQuote_IncompleteSelection(t *testing.T) {
	checkIn := day(t, "2026-01-10")

	tests := []struct {
		name string
		sel  StaySelection
		cfg  model.BookingConfig
	}{
		{
			name: "no dates at all",
			sel:  StaySelection{Guests: 2, Units: 1},
			cfg:  model.BookingConfig{SelectCheckout: true},
		},
		{
			name: "check-in without checkout",
			sel:  StaySelection{CheckIn: &checkIn, Guests: 2, Units: 1},
			cfg:  model.BookingConfig{SelectCheckout: true},
		},
		{
			name: "nights mode without nights",
			sel:  StaySelection{CheckIn: &checkIn, Guests: 2, Units: 1},
			cfg:  model.BookingConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := Quote(100, tt.sel, tt.cfg)
			if quote != (model.Quote{}) {
				t.Errorf("expected zero quote, got %+v", quote)
			}
		})
	}
}

func TestQuote_MoreNightsNeverCostLess(t *testing.T) {
	cfg := model.BookingConfig{
		SelectCheckout:    true,
		BaseGuestsPerUnit: 2,
		HasCityTax:        true,
		CityTaxPerNight:   2,
		ExtraPersonFee:    5,
	}
	checkIn := day(t, "2026-01-10")

	prev := 0.0
	for n := 1; n <= 14; n++ {
		checkOut := checkIn.AddDate(0, 0, n)
		quote := Quote(75, StaySelection{
			CheckIn:  &checkIn,
			CheckOut: &checkOut,
			Guests:   3,
			Units:    1,
		}, cfg)
		if quote.Total < prev {
			t.Fatalf("total dropped from %v to %v at %d nights", prev, quote.Total, n)
		}
		prev = quote.Total
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value  float64
		expect string
	}{
		{300, "300.00"},
		{315.5, "315.50"},
		{12.345, "12.35"},
		{0, "0.00"},
		{99.999, "100.00"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.value); got != tt.expect {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.value, got, tt.expect)
		}
	}
}

func TestNightCount_MinimumOneNight(t *testing.T) {
	sameDay := day(t, "2026-01-10")

	nights := NightCount(StaySelection{CheckIn: &sameDay, CheckOut: &sameDay}, true)
	if nights != 1 {
		t.Errorf("expected the one-night floor, got %d", nights)
	}
}
