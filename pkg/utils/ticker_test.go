package utils

import "testing"

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"BMW.DE", "BMW.DE"},
		{" bmw.de ", "BMW.DE"},
		{"$bmw.de", "BMW.DE"},
		{"AAPL", "AAPL"},
	}
	for _, tt := range tests {
		if got := NormalizeTicker(tt.input); got != tt.want {
			t.Errorf("NormalizeTicker(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBaseSymbol(t *testing.T) {
	tests := []struct {
		input, base string
	}{
		{"BMW.DE", "BMW"},
		{"bmw3.de", "BMW3"},
		{"AAPL", "AAPL"},
	}
	for _, tt := range tests {
		if got := BaseSymbol(tt.input); got != tt.base {
			t.Errorf("BaseSymbol(%q) = %q, want %q", tt.input, got, tt.base)
		}
	}
}
