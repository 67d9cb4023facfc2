package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+4915112345678",
			want:  "+4915112345678",
		},
		{
			name:  "with spaces",
			input: "+49 151 1234 5678",
			want:  "+4915112345678",
		},
		{
			name:  "with parentheses",
			input: "+1 (212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +4915112345678  ",
			want:  "+4915112345678",
		},
		{
			name:  "national format resolves against first region",
			input: "0151 1234 5678",
			want:  "+4915112345678",
		},
		{
			name:  "uk number with prefix",
			input: "+44 20 7946 0958",
			want:  "+442079460958",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
