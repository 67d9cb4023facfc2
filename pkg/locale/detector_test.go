package locale

import (
	"testing"
)

func TestInferCountryFromPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{
			name:  "German mobile",
			phone: "+4915112345678",
			want:  "DE",
		},
		{
			name:  "Austrian mobile",
			phone: "+436641234567",
			want:  "AT",
		},
		{
			name:  "three-digit code wins over two-digit",
			phone: "+351912345678",
			want:  "PT",
		},
		{
			name:  "US number",
			phone: "+12125551234",
			want:  "US",
		},
		{
			name:  "shared +1 plan resolves to US",
			phone: "+14165551234",
			want:  "US",
		},
		{
			name:  "dialing code not in table",
			phone: "+815012345678",
			want:  "",
		},
		{
			name:  "missing plus",
			phone: "4915112345678",
			want:  "",
		},
		{
			name:  "empty phone",
			phone: "",
			want:  "",
		},
		{
			name:  "invalid phone",
			phone: "not-a-phone",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferCountryFromPhone(tt.phone)
			if got != tt.want {
				t.Errorf("InferCountryFromPhone(%q) = %q, want %q", tt.phone, got, tt.want)
			}
		})
	}
}
