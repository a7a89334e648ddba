package engine

import "testing"

func TestKebabCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"topLeft", "top-left"},
		{"heavenlyBlue", "heavenly-blue"},
		{"texas-flood", "texas-flood"},
		{"h1Large", "h-1-large"},
		{"primary2", "primary-2"},
		{"x2Large", "x-2-large"},
		{"10px", "10-px"},
		{"21st", "21st"},
		{"2ND", "2nd"},
		{"3rdParty", "3rd-party"},
		{"11th", "11-th"},
		{"1stly", "1-stly"},
		{"HTMLParser", "html-parser"},
		{"snake_case name", "snake-case-name"},
		{"o'neil", "oneil"},
		{"--edge--", "edge"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := kebabCase(tt.in); got != tt.want {
				t.Errorf("kebabCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
