package sanitizer

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "http upgraded to https",
			input: "http://feeds.example.com/cal/42",
			want:  "https://feeds.example.com/cal/42",
		},
		{
			name:  "bare domain",
			input: "feeds.example.com",
			want:  "https://feeds.example.com",
		},
		{
			name:  "host lowercased path preserved",
			input: "https://Feeds.Example.COM/Cal/42.ics",
			want:  "https://feeds.example.com/Cal/42.ics",
		},
		{
			name:  "trailing slash dropped",
			input: "https://feeds.example.com/",
			want:  "https://feeds.example.com",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "idempotent",
			input: "https://feeds.example.com/cal/42",
			want:  "https://feeds.example.com/cal/42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
