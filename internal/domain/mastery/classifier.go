package mastery

import (
	"time"

	"github.com/parla-app/parla-api/internal/domain"
)

// classify determines the proficiency tier implied by an item's review
// history counters.
//
// The decision table is evaluated top-to-bottom, first match wins:
//   - correct rate >= MasteredMinRate with at least MasteredMinReviews
//     reviews promotes to mastered
//   - correct rate >= FamiliarMinRate with at least FamiliarMinReviews
//     reviews promotes to familiar
//   - otherwise the current tier is kept unchanged
//
// The correct rate of an item with zero reviews is treated as 0, so new
// items always keep their current tier.
//
// Classification never downgrades: a run of poor outcomes after an item
// reaches mastered leaves it mastered. Both promotion rules yield at
// least the current tier because current can only have been reached by
// a rule that fired earlier in the item's history.
func classify(reviewCount, correctCount int, current domain.Tier, params *Params) domain.Tier {
	if reviewCount <= 0 {
		return current
	}

	rate := float64(correctCount) / float64(reviewCount)

	var computed domain.Tier
	switch {
	case rate >= params.MasteredMinRate && reviewCount >= params.MasteredMinReviews:
		computed = domain.TierMastered
	case rate >= params.FamiliarMinRate && reviewCount >= params.FamiliarMinReviews:
		computed = domain.TierFamiliar
	default:
		return current
	}

	// Guard the monotonicity invariant even for histories that could not
	// arise through the recorder (e.g. counters edited out of band).
	if current.AtLeast(computed) {
		return current
	}
	return computed
}

// applyOutcome creates a new VocabularyItem with updated values after a
// recorded review outcome.
//
// It follows the immutable update pattern: the input item is copied,
// the copy's counters, timestamp, and tier are updated, and the copy is
// returned. The caller persists the new state; the original stays valid
// for retrying if persistence loses a concurrent race.
func applyOutcome(
	item *domain.VocabularyItem,
	correct bool,
	now time.Time,
	params *Params,
) *domain.VocabularyItem {
	next := item.Clone()

	next.ReviewCount++
	if correct {
		next.CorrectCount++
	} else {
		next.IncorrectCount++
	}

	reviewedAt := now.UTC()
	next.LastReviewedAt = &reviewedAt
	next.UpdatedAt = reviewedAt

	next.Tier = classify(next.ReviewCount, next.CorrectCount, item.Tier, params)

	return next
}
