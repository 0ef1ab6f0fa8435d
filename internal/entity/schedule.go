package entity

import "time"

// FocusArea is one weighted slice of a study session's content.
type FocusArea struct {
	Topic  string
	Weight float64
	Reason string // "weakness", "interest" or "goal"
}

// OptimalSession is a proposed study session inside one time window.
type OptimalSession struct {
	Window     TimeWindow
	Minutes    float64
	Difficulty float64
	Focus      []FocusArea
}

// StudySchedule is derived per cycle and owned by the path optimizer; it is
// never persisted beyond the current recommendation response.
type StudySchedule struct {
	UserID      string
	Sessions    []OptimalSession
	GeneratedAt time.Time
}
