package domain

import (
	"fmt"
	"time"
)

// Thresholds holds the three instants that bound the eligibility windows.
// In the reference configuration SellCutoff < LateEntry < WindowEnd.
type Thresholds struct {
	SellCutoff time.Time
	WindowEnd  time.Time
	LateEntry  time.Time
}

// Validate checks that every threshold is set.
func (t Thresholds) Validate() error {
	if t.SellCutoff.IsZero() || t.WindowEnd.IsZero() || t.LateEntry.IsZero() {
		return fmt.Errorf("thresholds must all be set")
	}
	return nil
}

// Classify assigns the category for a transaction timestamp. Comparisons are
// strict, so a timestamp exactly equal to SellCutoff matches no window. The
// in-window check runs before the late-entry check; where the two overlap the
// purchase window wins.
func (t Thresholds) Classify(ts time.Time) Category {
	switch {
	case ts.Before(t.SellCutoff):
		return CategorySoldBeforeCutoff
	case ts.After(t.SellCutoff) && ts.Before(t.WindowEnd):
		return CategoryPurchasedInWindow
	case ts.After(t.LateEntry):
		return CategoryLatePurchase
	default:
		return CategoryUnclassified
	}
}
