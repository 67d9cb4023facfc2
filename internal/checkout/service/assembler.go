package service

import (
	"time"

	"rezkit/internal/pricing"
	"rezkit/pkg/locale"
	"rezkit/pkg/model"
)

// BuildRecord freezes a paid session into its immutable booking record.
// Total and currency come from the captured intent, not from a fresh
// quote, so the record always matches the actual charge. In nights mode
// the checkout date is derived from the night count.
func BuildRecord(sess *model.Session, reference, transactionID string, now time.Time) *model.BookingRecord {
	record := &model.BookingRecord{
		Reference:     reference,
		ItemID:        sess.Item.ID,
		ItemName:      sess.Item.Name,
		Nights:        pricing.NightCount(staySelection(sess), sess.Item.Config.SelectCheckout),
		Guests:        sess.Guests,
		Units:         sess.Units,
		FirstName:     sess.Contact.FirstName,
		LastName:      sess.Contact.LastName,
		Email:         sess.Contact.Email,
		Phone:         sess.Contact.Phone,
		Country:       locale.InferCountryFromPhone(sess.Contact.Phone),
		Message:       sess.Contact.Message,
		TransactionID: transactionID,
		CreatedAt:     now,
	}

	if sess.CheckIn != nil {
		record.CheckIn = *sess.CheckIn
	}
	if sess.CheckOut != nil {
		v := *sess.CheckOut
		record.CheckOut = &v
	} else if sess.CheckIn != nil && record.Nights > 0 {
		v := sess.CheckIn.AddDate(0, 0, record.Nights)
		record.CheckOut = &v
	}

	if sess.Payment != nil {
		record.Total = sess.Payment.Amount
		record.Currency = sess.Payment.Currency
	}

	return record
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
