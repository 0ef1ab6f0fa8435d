package entity

import "time"

// Difficulty bounds and adaptation constants.
const (
	DifficultyFloor   = 0.2
	DifficultyCeiling = 1.0
	DifficultyInitial = 0.5

	// ModificationHistoryCap bounds how many past adaptations are kept.
	ModificationHistoryCap = 20
)

// ThresholdAction names the adaptation a crossed threshold triggers.
type ThresholdAction string

const (
	ActionIncrease ThresholdAction = "increase"
	ActionDecrease ThresholdAction = "decrease"
	ActionEase     ThresholdAction = "ease"
	ActionHold     ThresholdAction = "hold"
)

// PerformanceThreshold binds a rolling metric to the action taken when the
// metric leaves [Lower, Upper].
type PerformanceThreshold struct {
	Metric string
	Lower  float64
	Upper  float64
	Action ThresholdAction
}

// DifficultyModification is one committed adaptation with its rationale.
type DifficultyModification struct {
	At               time.Time
	From             float64
	To               float64
	Rationale        string
	PredictedSuccess float64
}

// DifficultyState is the per-user difficulty with inertia. Current always
// stays within [DifficultyFloor, DifficultyCeiling].
type DifficultyState struct {
	Current         float64
	Target          float64
	AdaptationSpeed float64
	Thresholds      []PerformanceThreshold
	History         []DifficultyModification
}

// NewDifficultyState starts a user at the neutral difficulty with the
// default threshold set.
func NewDifficultyState() *DifficultyState {
	return &DifficultyState{
		Current:         DifficultyInitial,
		Target:          DifficultyInitial,
		AdaptationSpeed: 0.1,
		Thresholds: []PerformanceThreshold{
			{Metric: "accuracy", Lower: 0.6, Upper: 0.9, Action: ActionIncrease},
			{Metric: "frustration", Lower: 0.2, Upper: 0.7, Action: ActionDecrease},
			{Metric: "engagement", Lower: 0.5, Upper: 1.0, Action: ActionEase},
		},
	}
}

// Record appends a committed modification, evicting the oldest beyond the
// history cap.
func (d *DifficultyState) Record(mod DifficultyModification) {
	d.History = append(d.History, mod)
	if len(d.History) > ModificationHistoryCap {
		d.History = d.History[len(d.History)-ModificationHistoryCap:]
	}
}
