package usecase

import (
	"math"
	"sort"
	"time"

	"github.com/eslsoft/lingokit/internal/entity"
)

// SRSParams control the spaced-repetition interval schedule.
type SRSParams struct {
	// InitialSteps are the review intervals in days for the first
	// successful repetitions; later intervals grow by the ease factor.
	InitialSteps    []int
	EaseFloor       float64
	EaseCeiling     float64
	SuccessBonus    float64
	FailurePenalty  float64
	MaxIntervalDays int
}

// DefaultSRSParams returns the stock interval ladder.
func DefaultSRSParams() SRSParams {
	return SRSParams{
		InitialSteps:    []int{1, 3, 7, 14, 30},
		EaseFloor:       entity.EaseFloor,
		EaseCeiling:     3.0,
		SuccessBonus:    0.1,
		FailurePenalty:  0.2,
		MaxIntervalDays: entity.MaxIntervalDays,
	}
}

// Review applies one recall outcome. Success walks the initial ladder and
// then grows the interval multiplicatively; failure resets to the shortest
// step and decays the ease, never below the floor.
func (u *pathUsecase) Review(r *entity.ReviewInterval, quality entity.RecallQuality, now time.Time) {
	r.LastReviewed = now

	if quality.Success() {
		r.ConsecutiveSuccesses++
		r.Repetitions++
		r.Ease = entity.Clamp(r.Ease+u.srs.SuccessBonus, u.srs.EaseFloor, u.srs.EaseCeiling)

		var next int
		if r.Repetitions <= len(u.srs.InitialSteps) {
			next = u.srs.InitialSteps[r.Repetitions-1]
		} else {
			next = int(math.Round(float64(r.IntervalDays) * r.Ease))
		}
		if next > u.srs.MaxIntervalDays {
			next = u.srs.MaxIntervalDays
		}
		if next < 1 {
			next = 1
		}
		r.IntervalDays = next
	} else {
		r.ConsecutiveSuccesses = 0
		r.Repetitions = 0
		r.Ease = entity.Clamp(r.Ease-u.srs.FailurePenalty, u.srs.EaseFloor, u.srs.EaseCeiling)
		r.IntervalDays = u.srs.InitialSteps[0]
	}

	r.NextReview = now.AddDate(0, 0, r.IntervalDays)
}

// DueReviews lists items due at the given time, hardest first (lowest
// ease), bounded by limit (0 means no bound).
func (u *pathUsecase) DueReviews(reviews map[string]*entity.ReviewInterval, now time.Time, limit int) []*entity.ReviewInterval {
	due := make([]*entity.ReviewInterval, 0, len(reviews))
	for _, r := range reviews {
		if r.Due(now) {
			due = append(due, r)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].Ease != due[j].Ease {
			return due[i].Ease < due[j].Ease
		}
		if !due[i].NextReview.Equal(due[j].NextReview) {
			return due[i].NextReview.Before(due[j].NextReview)
		}
		return due[i].ItemID < due[j].ItemID
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due
}
