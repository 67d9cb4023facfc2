package testutil

import (
	"rezkit/pkg/model"
)

type ItemBuilder struct {
	item model.Item
}

// NewItemBuilder starts from a bookable two-guest apartment with no
// availability feed, so the calendar is fully open.
func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		item: model.Item{
			Name:         "Seaside Apartment",
			PricePerUnit: 150,
			Currency:     "EUR",
			Config: model.BookingConfig{
				MaxNights:         30,
				MaxUnits:          2,
				MaxGuestsPerUnit:  4,
				BaseGuestsPerUnit: 2,
				SelectCheckout:    true,
			},
		},
	}
}

func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.item.Name = name
	return b
}

func (b *ItemBuilder) WithPrice(price float64) *ItemBuilder {
	b.item.PricePerUnit = price
	return b
}

func (b *ItemBuilder) WithCurrency(currency string) *ItemBuilder {
	b.item.Currency = currency
	return b
}

func (b *ItemBuilder) WithFeedURL(url string) *ItemBuilder {
	b.item.AvailabilitySource = url
	return b
}

func (b *ItemBuilder) WithNightsMode(maxNights int) *ItemBuilder {
	b.item.Config.SelectCheckout = false
	b.item.Config.MaxNights = maxNights
	return b
}

func (b *ItemBuilder) WithCityTax(perNight float64) *ItemBuilder {
	b.item.Config.HasCityTax = true
	b.item.Config.CityTaxPerNight = perNight
	return b
}

func (b *ItemBuilder) Build() *model.Item {
	item := b.item
	return &item
}

// ValidItem returns a complete item accepted by the catalog API
func ValidItem() *model.Item {
	return NewItemBuilder().Build()
}

// MinimalItem returns an item that leans on server-side defaults for
// currency and booking config
func MinimalItem() *model.Item {
	return &model.Item{
		Name:         "Minimal Studio",
		PricePerUnit: 80,
	}
}
