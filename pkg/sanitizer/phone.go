package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	supportedRegions = []string{
		"DE",
		"US",
		"GB",
	}
)

// NormalizePhone converts a guest phone number to E.164. Numbers with
// a country prefix parse regardless of region; national formats are
// tried against the supported regions in order. Unparseable input
// comes back empty so the validator can reject it.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}
