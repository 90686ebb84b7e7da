package loyalty

import (
	"fmt"
	"math"
	"strings"
	"time"

	"restaurant-pos/internal/domain"
)

const minPhoneDigits = 10

// NormalizePhone strips everything but digits from a phone number. The
// result is the loyalty ledger key.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < minPhoneDigits {
		return "", fmt.Errorf("%w: phone must have at least %d digits", domain.ErrValidation, minPhoneDigits)
	}
	return digits, nil
}

// PointsFor computes the award for a paid order: floor of the total, doubled
// on weekend days.
func PointsFor(orderTotal float64, day time.Weekday, weekendMultiplier int) int {
	points := int(math.Floor(orderTotal))
	if points < 0 {
		return 0
	}
	if day == time.Saturday || day == time.Sunday {
		points *= weekendMultiplier
	}
	return points
}
