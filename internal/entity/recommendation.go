package entity

// Recommendation is a transient scored content suggestion. Recomputed on
// every request, never persisted by the core.
type Recommendation struct {
	Item             ScorableItem
	Score            float64
	Breakdown        map[string]float64
	Rationale        string
	Priority         float64
	PredictedBenefit float64
}

// RecommendOptions narrows a recommendation request.
type RecommendOptions struct {
	Limit            int
	AvailableMinutes float64
	// Filter is an optional CEL expression over id, topics, difficulty,
	// minutes (e.g. `difficulty <= 0.6 && "travel" in topics`).
	Filter string
}
