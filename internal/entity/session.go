package entity

import "time"

// Defaults substituted for missing or malformed telemetry fields. Partial
// telemetry is normalized, never rejected.
const (
	DefaultSessionMinutes  = 30.0
	DefaultAccuracy        = 0.7
	DefaultEngagement      = 0.7
	DefaultCompletion      = 1.0
	DefaultResponseSeconds = 5.0
)

// slowResponseSeconds marks a single answer as hesitant for the
// frustration proxy.
const slowResponseSeconds = 8.0

// SessionError is one mistake observed during a session, bucketed by
// category (e.g. "pronunciation", "grammar").
type SessionError struct {
	Category string
	Detail   string
}

// SessionSummary is the telemetry record supplied by the surrounding
// application after each learning session.
type SessionSummary struct {
	LessonType    string
	Topic         string
	Minutes       float64
	Accuracy      float64
	Engagement    float64
	Completion    float64
	Errors        []SessionError
	ResponseTimes []float64 // seconds per exercise
	StartedAt     time.Time
}

// Normalize ensures defaults & constraints before the summary is recorded.
func (s *SessionSummary) Normalize(now time.Time) {
	if s.Minutes <= 0 || s.Minutes > 24*60 {
		s.Minutes = DefaultSessionMinutes
	}
	if s.Accuracy <= 0 || s.Accuracy > 1 {
		s.Accuracy = DefaultAccuracy
	}
	if s.Engagement <= 0 || s.Engagement > 1 {
		s.Engagement = DefaultEngagement
	}
	if s.Completion <= 0 || s.Completion > 1 {
		s.Completion = DefaultCompletion
	}
	if s.LessonType == "" {
		s.LessonType = "general"
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = now
	}
	if s.Errors == nil {
		s.Errors = []SessionError{}
	}
	if s.ResponseTimes == nil {
		s.ResponseTimes = []float64{}
	}
}

// ErrorRate maps the error count onto [0,1]; ten or more errors in one
// session saturate the scale.
func (s *SessionSummary) ErrorRate() float64 {
	return Clamp01(float64(len(s.Errors)) / 10)
}

// AvgResponseSeconds is the mean answer latency for the session.
func (s *SessionSummary) AvgResponseSeconds() float64 {
	if len(s.ResponseTimes) == 0 {
		return DefaultResponseSeconds
	}
	var sum float64
	for _, rt := range s.ResponseTimes {
		sum += rt
	}
	return sum / float64(len(s.ResponseTimes))
}

// Frustration is a proxy combining error rate, inaccuracy and hesitation.
func (s *SessionSummary) Frustration() float64 {
	var slow int
	for _, rt := range s.ResponseTimes {
		if rt > slowResponseSeconds {
			slow++
		}
	}
	slowShare := 0.0
	if len(s.ResponseTimes) > 0 {
		slowShare = float64(slow) / float64(len(s.ResponseTimes))
	}
	return Clamp01(0.4*s.ErrorRate() + 0.4*(1-s.Accuracy) + 0.2*slowShare)
}

// CognitiveLoad estimates mental effort from duration, error rate and
// answer latency.
func (s *SessionSummary) CognitiveLoad() float64 {
	duration := Clamp01(s.Minutes / 60)
	latency := Clamp01(s.AvgResponseSeconds() / 10)
	return Clamp01(0.35*duration + 0.4*s.ErrorRate() + 0.25*latency)
}
