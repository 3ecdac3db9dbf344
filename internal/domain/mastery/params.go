package mastery

import (
	"time"

	"github.com/parla-app/parla-api/internal/domain"
)

// Params defines all configurable parameters for the mastery engine:
// the classification thresholds that promote items between tiers and the
// per-tier minimum re-exposure intervals that decide when an item is due.
type Params struct {
	// Promotion thresholds, evaluated top-to-bottom by Classify.
	MasteredMinRate    float64
	MasteredMinReviews int
	FamiliarMinRate    float64
	FamiliarMinReviews int

	// Minimum time between exposures, keyed by the item's own tier.
	ReviewIntervals map[domain.Tier]time.Duration
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	MasteredMinRate    float64
	MasteredMinReviews int
	FamiliarMinRate    float64
	FamiliarMinReviews int

	LearningInterval time.Duration
	FamiliarInterval time.Duration
	MasteredInterval time.Duration
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		// An item is mastered at a 90% correct rate over at least 5 reviews,
		// familiar at 70% over at least 3.
		MasteredMinRate:    0.90,
		MasteredMinReviews: 5,
		FamiliarMinRate:    0.70,
		FamiliarMinReviews: 3,

		ReviewIntervals: map[domain.Tier]time.Duration{
			domain.TierLearning: 4 * time.Hour,
			domain.TierFamiliar: 24 * time.Hour,
			domain.TierMastered: 72 * time.Hour,
		},
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MasteredMinRate > 0 {
		params.MasteredMinRate = config.MasteredMinRate
	}
	if config.MasteredMinReviews > 0 {
		params.MasteredMinReviews = config.MasteredMinReviews
	}
	if config.FamiliarMinRate > 0 {
		params.FamiliarMinRate = config.FamiliarMinRate
	}
	if config.FamiliarMinReviews > 0 {
		params.FamiliarMinReviews = config.FamiliarMinReviews
	}

	if config.LearningInterval > 0 {
		params.ReviewIntervals[domain.TierLearning] = config.LearningInterval
	}
	if config.FamiliarInterval > 0 {
		params.ReviewIntervals[domain.TierFamiliar] = config.FamiliarInterval
	}
	if config.MasteredInterval > 0 {
		params.ReviewIntervals[domain.TierMastered] = config.MasteredInterval
	}

	return params
}

// Interval returns the minimum re-exposure interval for the given tier.
// Unknown tiers fall back to the learning interval, the shortest one.
func (p *Params) Interval(tier domain.Tier) time.Duration {
	if d, ok := p.ReviewIntervals[tier]; ok {
		return d
	}
	return p.ReviewIntervals[domain.TierLearning]
}
