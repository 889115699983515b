package pricing

import (
	"fmt"
	"time"

	"zone37/internal/domain"
)

// Validate checks a schedule in the order the admin form reports problems and returns
// the first failure. Periods are checked as given, each against its immediate successor.
// Gaps between tiers are accepted; only overlaps are rejected.
func Validate(periods []domain.PricePeriod) domain.ValidationResult {
	if len(periods) == 0 {
		return domain.ValidationResult{Valid: true}
	}

	for i, p := range periods {
		if p.Price < 0 {
			return invalid(i, "Price cannot be negative")
		}
	}

	for i := 0; i < len(periods)-1; i++ {
		curr, next := periods[i], periods[i+1]
		switch {
		case curr.Ends == nil:
			return invalid(i, fmt.Sprintf("Period %d must have an end date", i+1))
		case curr.Ends.After(next.Starts):
			return invalid(i, fmt.Sprintf("Period %d ends after the start of period %d", i+1, i+2))
		case !curr.Starts.Before(*curr.Ends):
			return invalid(i, fmt.Sprintf("Period %d: start date must be earlier than end date", i+1))
		}
	}

	last := periods[len(periods)-1]
	if last.Ends != nil && !last.Starts.Before(*last.Ends) {
		return invalid(len(periods)-1, "Last period: start date must be earlier than end date")
	}
	return domain.ValidationResult{Valid: true}
}

func invalid(index int, reason string) domain.ValidationResult {
	return domain.ValidationResult{Valid: false, Reason: reason, PeriodIndex: index + 1}
}

// CurrentPrice returns the price in effect at the given instant: the tier whose
// [starts, ends) contains it, or the open-ended last tier once every end bound has
// passed. The second result is false when no tier applies, including before the first
// tier starts.
func CurrentPrice(periods []domain.PricePeriod, at time.Time) (int, bool) {
	for _, p := range periods {
		if p.Contains(at) {
			return p.Price, true
		}
	}
	if len(periods) == 0 || at.Before(periods[0].Starts) {
		return 0, false
	}
	last := periods[len(periods)-1]
	if !last.OpenEnded() {
		return 0, false
	}
	for _, p := range periods {
		if p.Ends != nil && at.Before(*p.Ends) {
			return 0, false
		}
	}
	return last.Price, true
}
