package utils_test

import (
	"testing"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/utils"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Juan@Example.COM  ", "juan@example.com"},
		{"ana@firma.do", "ana@firma.do"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := utils.NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+1 (809) 555-0123", "+18095550123"},
		{"809-555-0123", "8095550123"},
		{"  ", ""},
		{"abc", ""},
	}
	for _, tt := range tests {
		if got := utils.NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"juan@example.com", true},
		{"JUAN@EXAMPLE.COM", true},
		{"no-at-sign", false},
		{"two@@example.com", false},
		{"user@x", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := utils.IsValidEmail(tt.in); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"+18095550123", true},
		{"8095550123", true},
		{"12345", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := utils.IsValidPhone(tt.in); got != tt.want {
			t.Errorf("IsValidPhone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
