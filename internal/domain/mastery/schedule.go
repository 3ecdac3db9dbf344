package mastery

import (
	"time"

	"github.com/parla-app/parla-api/internal/domain"
)

// isDue reports whether an item is eligible for re-practice at now.
//
// Items that have never been reviewed (nil lastReviewedAt) are always
// due. Otherwise an item is due once the minimum re-exposure interval
// for its own tier has fully elapsed; the boundary is inclusive, so an
// item reviewed exactly interval(tier) ago is due.
//
// The interval is keyed off the item's own tier: items a learner has
// mastered resurface less often than ones still being learned.
func isDue(tier domain.Tier, lastReviewedAt *time.Time, now time.Time, params *Params) bool {
	if lastReviewedAt == nil {
		return true
	}

	return now.Sub(*lastReviewedAt) >= params.Interval(tier)
}

// nextDueAt returns the earliest time at which an item becomes eligible
// for re-practice. Never-reviewed items are due immediately.
func nextDueAt(tier domain.Tier, lastReviewedAt *time.Time, now time.Time, params *Params) time.Time {
	if lastReviewedAt == nil {
		return now
	}

	return lastReviewedAt.Add(params.Interval(tier))
}
