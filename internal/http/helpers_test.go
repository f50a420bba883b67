package http

import "testing"

func TestFormatReais(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{1234, "R$ 12,34"},
		{500000, "R$ 5000,00"},
		{-1250, "-R$ 12,50"},
	}
	for _, tt := range tests {
		if got := formatReais(tt.cents); got != tt.want {
			t.Errorf("formatReais(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Café  ", "Café"},
		{"a\x00b", "ab"},
		{"linha1\nlinha2", "linha1\nlinha2"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
