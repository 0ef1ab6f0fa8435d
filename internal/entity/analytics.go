package entity

import "time"

// TrendDirection classifies the slope of recent performance.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// SessionOptimization summarizes when and how long the user should study.
type SessionOptimization struct {
	BestWindows        []TimeWindow
	RecommendedMinutes float64
}

// CognitiveLoadAnalysis aggregates the cognitive-load series.
type CognitiveLoadAnalysis struct {
	Average            float64
	Variance           float64
	OverloadIndicators []string
}

// PerformancePrediction is the short-term forecast with its trend term.
type PerformancePrediction struct {
	ExpectedAccuracy   float64
	ExpectedEngagement float64
	ExpectedCompletion float64
	Trend              TrendDirection
	Slope              float64
}

// RiskFactor flags a pattern that threatens continued progress.
type RiskFactor struct {
	Name        string
	Severity    float64
	Description string
}

// AdvancedAnalytics is the memoized aggregate the analytics engine emits.
type AdvancedAnalytics struct {
	UserID              string
	DominantPatterns    []string
	SessionOptimization SessionOptimization
	CognitiveLoad       CognitiveLoadAnalysis
	Prediction          PerformancePrediction
	RiskFactors         []RiskFactor
	Interventions       []string
	GeneratedAt         time.Time
}
