package model

// Quote is the priced breakdown of the current selection. It is
// derived on demand and never stored; Total is always the sum of the
// three components.
type Quote struct {
	Nights        int     `json:"nights"`
	Subtotal      float64 `json:"subtotal"`
	ExtraGuestFee float64 `json:"extra_guest_fee"`
	CityTax       float64 `json:"city_tax"`
	Total         float64 `json:"total"`
}
