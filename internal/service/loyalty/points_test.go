package loyalty

import (
	"errors"
	"testing"
	"time"

	"restaurant-pos/internal/domain"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plainDigits", "0123456789", "0123456789", false},
		{"dashesAndSpaces", "012-345 6789", "0123456789", false},
		{"internationalFormat", "+60 12-345 6789", "60123456789", false},
		{"parentheses", "(012) 345-6789", "0123456789", false},
		{"tooShort", "12345", "", true},
		{"empty", "", "", true},
		{"lettersOnly", "call-me-maybe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("NormalizePhone(%q) error = %v, want ErrValidation", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhone(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPointsFor(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		day        time.Weekday
		multiplier int
		want       int
	}{
		{"weekdayFloorsTotal", 50.00, time.Wednesday, 2, 50},
		{"weekdayFractionDropped", 25.80, time.Monday, 2, 25},
		{"saturdayDoubles", 50.00, time.Saturday, 2, 100},
		{"sundayDoubles", 25.80, time.Sunday, 2, 50},
		{"customMultiplier", 10.00, time.Sunday, 3, 30},
		{"subUnitTotal", 0.90, time.Friday, 2, 0},
		{"negativeClampsToZero", -5.00, time.Saturday, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointsFor(tt.total, tt.day, tt.multiplier); got != tt.want {
				t.Errorf("PointsFor(%.2f, %s, %d) = %d, want %d", tt.total, tt.day, tt.multiplier, got, tt.want)
			}
		})
	}
}
