package entity

import "time"

// UserProfile is the external profile snapshot supplied per call. The core
// reads it, never owns it.
type UserProfile struct {
	UserID                 string
	Goals                  []string
	Interests              []string
	CompletedLessons       []string
	Competencies           map[string]float64 // skill -> [0,1]
	AvailableMinutesPerDay float64
	AttentionSpanMinutes   float64
	CulturalPreference     float64
	EngagementScore        float64
	ConfidenceScore        float64
	StudyStreakDays        int
	SessionsLastWeek       int
}

// Normalize fills missing profile fields with workable defaults.
func (p *UserProfile) Normalize() {
	if p.AvailableMinutesPerDay <= 0 {
		p.AvailableMinutesPerDay = 30
	}
	if p.AttentionSpanMinutes <= 0 {
		p.AttentionSpanMinutes = 25
	}
	if p.CulturalPreference <= 0 || p.CulturalPreference > 1 {
		p.CulturalPreference = 0.5
	}
	p.EngagementScore = Clamp01(p.EngagementScore)
	p.ConfidenceScore = Clamp01(p.ConfidenceScore)
	if p.Competencies == nil {
		p.Competencies = map[string]float64{}
	}
}

// CompletedSet returns the completed lessons as a lookup set.
func (p *UserProfile) CompletedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.CompletedLessons))
	for _, id := range p.CompletedLessons {
		set[id] = struct{}{}
	}
	return set
}

// FeatureDefinition describes what a gated feature demands of a user.
type FeatureDefinition struct {
	ID                 string
	Name               string
	RequiredSkills     map[string]float64
	MinEngagement      float64
	MinConfidence      float64
	RelatedGoals       []string
	RequiredStreakDays int
}

// ReadinessRecommendation is the binary unlock decision.
type ReadinessRecommendation string

const (
	RecommendationUnlock ReadinessRecommendation = "unlock"
	RecommendationWait   ReadinessRecommendation = "wait"
)

// Readiness criterion names used in score breakdowns.
const (
	CriterionSkills     = "skill_prerequisites"
	CriterionEngagement = "engagement_readiness"
	CriterionConfidence = "confidence"
	CriterionAlignment  = "cultural_goal_alignment"
	CriterionTiming     = "timing"
)

// ReadinessScore is the weighted readiness verdict for one feature.
type ReadinessScore struct {
	FeatureID         string
	Overall           float64
	Breakdown         map[string]float64
	Evidence          []string
	LargestGap        string
	GapSize           float64
	Recommendation    ReadinessRecommendation
	EstimatedTimeline string
	AssessedAt        time.Time
}

// UnlockMessage is the user-facing rendering of a readiness score.
type UnlockMessage struct {
	Type     string // "ready" or "not_ready"
	Title    string
	Body     string
	Evidence []string
}
