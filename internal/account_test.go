package pooltop

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAddress(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"too short", strings.Repeat("4", MIN_ADDRESS_LENGTH), false},
		{"long enough", strings.Repeat("4", MIN_ADDRESS_LENGTH+1), true},
		{"padding is trimmed", "  " + strings.Repeat("4", MIN_ADDRESS_LENGTH) + "  ", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		got, err := ValidateAddress(tt.in)
		if tt.ok {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tt.name, err)
			}
			if got != strings.TrimSpace(tt.in) {
				t.Fatalf("%s: unexpected address: got %q", tt.name, got)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("%s: unexpected error: got %v want %v", tt.name, err, ErrInvalidAddress)
		}
	}
}

func TestValidateThreshold(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0.2", "0.2", true},
		{" 0.1 ", "0.1", true},
		{"0.05", "", false},
		{"-1", "", false},
		{"0", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		got, err := ValidateThreshold(tt.in, 0.1)
		if !tt.ok {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("unexpected error for %q: got %v want %v", tt.in, err, ErrInvalidAmount)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Fatalf("unexpected amount: got %s want %s", got, tt.want)
		}
	}
}
