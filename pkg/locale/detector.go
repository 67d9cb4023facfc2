package locale

import "strings"

// InferCountryFromPhone maps an E.164 phone number to the guest's
// likely ISO 3166-1 alpha-2 country code. Returns "" when the dialing
// code is not in the table or the number lacks the leading plus.
// Numbers on the shared +1 plan resolve to US.
func InferCountryFromPhone(phone string) string {
	normalized := strings.TrimSpace(phone)
	if !strings.HasPrefix(normalized, "+") {
		return ""
	}

	for _, country := range Countries {
		if strings.HasPrefix(normalized, country.DialPrefix) {
			return country.Code
		}
	}

	return ""
}
