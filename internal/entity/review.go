package entity

import "time"

// Spaced-repetition bounds.
const (
	EaseFloor       = 1.3
	EaseInitial     = 2.5
	MaxIntervalDays = 365
)

// RecallQuality grades how well an item was remembered during a review.
type RecallQuality int

const (
	RecallBlackout RecallQuality = iota
	RecallIncorrect
	RecallFamiliar
	RecallDifficult
	RecallHesitant
	RecallPerfect
)

// Success reports whether the recall counts as a successful review.
func (q RecallQuality) Success() bool { return q >= RecallDifficult }

// ReviewInterval is the spaced-repetition state for one content item.
// Created when the item is first studied, mutated after every review.
type ReviewInterval struct {
	ItemID               string
	IntervalDays         int
	NextReview           time.Time
	Ease                 float64
	ConsecutiveSuccesses int
	Repetitions          int
	LastReviewed         time.Time
}

// NewReviewInterval starts an item one day out with the neutral ease.
func NewReviewInterval(itemID string, now time.Time) *ReviewInterval {
	return &ReviewInterval{
		ItemID:       itemID,
		IntervalDays: 1,
		NextReview:   now.AddDate(0, 0, 1),
		Ease:         EaseInitial,
	}
}

// Due reports whether the item should be reviewed at the given time.
func (r *ReviewInterval) Due(now time.Time) bool {
	return !r.NextReview.After(now)
}
