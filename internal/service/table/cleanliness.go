package table

import "time"

// Cleanliness tiers derived from the time since the last cleaning. Display
// only: the stored table status never changes because time passed.
const (
	TierFresh          = "fresh"
	TierGood           = "good"
	TierNeedsAttention = "needs_attention"
	TierNeedsCleaning  = "needs_cleaning"
)

const (
	freshFor = 30 * time.Minute
	goodFor  = 2 * time.Hour
	staleFor = 6 * time.Hour
)

func CleanlinessOf(lastCleaned, now time.Time) string {
	elapsed := now.Sub(lastCleaned)
	switch {
	case elapsed < freshFor:
		return TierFresh
	case elapsed < goodFor:
		return TierGood
	case elapsed < staleFor:
		return TierNeedsAttention
	default:
		return TierNeedsCleaning
	}
}
