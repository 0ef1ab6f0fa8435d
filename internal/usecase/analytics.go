package usecase

import (
	"fmt"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingokit/internal/entity"
)

// AnalyticsParams control trend detection and memoization.
type AnalyticsParams struct {
	CacheTTL        time.Duration
	CacheSize       int
	TrendDeadband   float64
	TrendAdjustment float64
	RecentWindow    int
}

// DefaultAnalyticsParams returns the documented 5-minute cache and ±0.02
// slope deadband.
func DefaultAnalyticsParams() AnalyticsParams {
	return AnalyticsParams{
		CacheTTL:        5 * time.Minute,
		CacheSize:       256,
		TrendDeadband:   0.02,
		TrendAdjustment: 0.05,
		RecentWindow:    10,
	}
}

// AnalyticsUsecase aggregates pattern history into predictive signals.
// Results are memoized per user for the cache TTL; every pattern write must
// call Invalidate so staleness is never observable.
type AnalyticsUsecase interface {
	Analyze(pattern *entity.LearningPattern, now time.Time) *entity.AdvancedAnalytics
	Invalidate(userID string)

	// Extension points. The intended algorithms are not yet specified;
	// they return empty results by contract.
	RetentionInsights(pattern *entity.LearningPattern) []string
	LongTermForecast(pattern *entity.LearningPattern) *entity.PerformancePrediction
	BehavioralInsights(pattern *entity.LearningPattern) []string
}

// NewAnalyticsUsecase wires the engine and its TTL cache.
func NewAnalyticsUsecase(params AnalyticsParams, logger logrus.FieldLogger) AnalyticsUsecase {
	if params.CacheSize <= 0 {
		params.CacheSize = DefaultAnalyticsParams().CacheSize
	}
	return &analyticsUsecase{
		params: params,
		logger: logger,
		cache:  lru.NewLRU[string, *entity.AdvancedAnalytics](params.CacheSize, nil, params.CacheTTL),
	}
}

type analyticsUsecase struct {
	params AnalyticsParams
	logger logrus.FieldLogger
	cache  *lru.LRU[string, *entity.AdvancedAnalytics]
}

func (u *analyticsUsecase) Invalidate(userID string) {
	u.cache.Remove(userID)
}

func (u *analyticsUsecase) Analyze(pattern *entity.LearningPattern, now time.Time) *entity.AdvancedAnalytics {
	if cached, ok := u.cache.Get(pattern.UserID); ok {
		return cached
	}

	out := &entity.AdvancedAnalytics{
		UserID:              pattern.UserID,
		DominantPatterns:    u.dominantPatterns(pattern),
		SessionOptimization: u.sessionOptimization(pattern),
		CognitiveLoad:       u.cognitiveLoad(pattern),
		Prediction:          u.predict(pattern),
		GeneratedAt:         now,
	}
	out.RiskFactors = u.riskFactors(pattern, out.Prediction, now)
	out.Interventions = u.interventions(out.RiskFactors)

	u.cache.Add(pattern.UserID, out)
	u.logger.WithField("user", pattern.UserID).Debug("analytics recomputed")
	return out
}

func (u *analyticsUsecase) dominantPatterns(pattern *entity.LearningPattern) []string {
	var out []string

	for _, w := range pattern.TimeWindows {
		if w.Consistency > 0.6 {
			out = append(out, fmt.Sprintf("consistent %s sessions around %02d:00", w.Weekday, w.StartHour))
			break
		}
	}

	if name, stats, ok := topLessonType(pattern); ok && stats.Preference > 0.4 {
		out = append(out, fmt.Sprintf("prefers %s lessons", name))
	}

	if mean, ok := seriesMean(pattern.Engagement.Values()); ok && mean > 0.7 {
		out = append(out, "steadily engaged")
	}
	if mean, ok := seriesMean(pattern.CognitiveLoad.Values()); ok && mean > 0.7 {
		out = append(out, "often works near cognitive capacity")
	}

	return out
}

func (u *analyticsUsecase) sessionOptimization(pattern *entity.LearningPattern) entity.SessionOptimization {
	windows := make([]entity.TimeWindow, len(pattern.TimeWindows))
	copy(windows, pattern.TimeWindows)
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Effectiveness > windows[j].Effectiveness
	})
	if len(windows) > 3 {
		windows = windows[:3]
	}

	minutes := pattern.AvgSessionMinutes
	if minutes == 0 {
		minutes = entity.DefaultSessionMinutes
	}
	return entity.SessionOptimization{
		BestWindows:        windows,
		RecommendedMinutes: entity.Clamp(minutes, 10, 60),
	}
}

func (u *analyticsUsecase) cognitiveLoad(pattern *entity.LearningPattern) entity.CognitiveLoadAnalysis {
	values := pattern.CognitiveLoad.Values()
	if len(values) == 0 {
		return entity.CognitiveLoadAnalysis{}
	}

	mean, _ := stats.Mean(values)
	variance, _ := stats.Variance(values)

	var indicators []string
	if mean > 0.7 {
		indicators = append(indicators, "sustained high load")
	}
	if variance > 0.05 {
		indicators = append(indicators, "volatile load between sessions")
	}
	if values[len(values)-1] > 0.8 {
		indicators = append(indicators, "most recent session overloaded")
	}

	return entity.CognitiveLoadAnalysis{
		Average:            mean,
		Variance:           variance,
		OverloadIndicators: indicators,
	}
}

// predict forecasts the next session from recent means, adjusted ±0.05 by
// the OLS slope of recent accuracy with a ±0.02 deadband.
func (u *analyticsUsecase) predict(pattern *entity.LearningPattern) entity.PerformancePrediction {
	snaps := pattern.RecentSnapshots(u.params.RecentWindow)
	if len(snaps) == 0 {
		return entity.PerformancePrediction{
			ExpectedAccuracy:   entity.DefaultAccuracy,
			ExpectedEngagement: entity.DefaultEngagement,
			ExpectedCompletion: entity.DefaultCompletion,
			Trend:              entity.TrendStable,
		}
	}

	var accuracy, engagement, completion float64
	coords := make([]stats.Coordinate, len(snaps))
	for i, s := range snaps {
		accuracy += s.Accuracy
		engagement += s.Engagement
		completion += s.Completion
		coords[i] = stats.Coordinate{X: float64(i), Y: s.Accuracy}
	}
	n := float64(len(snaps))
	accuracy /= n
	engagement /= n
	completion /= n

	slope := regressionSlope(coords)
	trend := entity.TrendStable
	adjust := 0.0
	switch {
	case slope > u.params.TrendDeadband:
		trend = entity.TrendImproving
		adjust = u.params.TrendAdjustment
	case slope < -u.params.TrendDeadband:
		trend = entity.TrendDeclining
		adjust = -u.params.TrendAdjustment
	}

	return entity.PerformancePrediction{
		ExpectedAccuracy:   entity.Clamp01(accuracy + adjust),
		ExpectedEngagement: entity.Clamp01(engagement + adjust),
		ExpectedCompletion: entity.Clamp01(completion + adjust),
		Trend:              trend,
		Slope:              slope,
	}
}

func (u *analyticsUsecase) riskFactors(pattern *entity.LearningPattern, prediction entity.PerformancePrediction, now time.Time) []entity.RiskFactor {
	var risks []entity.RiskFactor

	if prediction.Trend == entity.TrendDeclining {
		risks = append(risks, entity.RiskFactor{
			Name:        "declining_performance",
			Severity:    entity.Clamp01(0.5 - 10*prediction.Slope),
			Description: "accuracy has been sliding across recent sessions",
		})
	}
	if mean, ok := seriesMean(pattern.Engagement.Values()); ok && mean < 0.4 {
		risks = append(risks, entity.RiskFactor{
			Name:        "disengagement",
			Severity:    entity.Clamp01(1 - mean),
			Description: "engagement is well below the healthy range",
		})
	}
	if mean, ok := seriesMean(pattern.CognitiveLoad.Values()); ok && mean > 0.7 {
		risks = append(risks, entity.RiskFactor{
			Name:        "overload",
			Severity:    entity.Clamp01(mean),
			Description: "cognitive load stays near capacity",
		})
	}
	if snaps := pattern.RecentSnapshots(1); len(snaps) > 0 && now.Sub(snaps[0].At) > 7*24*time.Hour {
		risks = append(risks, entity.RiskFactor{
			Name:        "inactivity",
			Severity:    0.6,
			Description: "no sessions recorded in over a week",
		})
	}
	return risks
}

func (u *analyticsUsecase) interventions(risks []entity.RiskFactor) []string {
	var out []string
	for _, r := range risks {
		switch r.Name {
		case "declining_performance":
			out = append(out, "drop difficulty one notch and add a review day")
		case "disengagement":
			out = append(out, "switch toward the user's preferred lesson type")
		case "overload":
			out = append(out, "shorten sessions and space them out")
		case "inactivity":
			out = append(out, "send a gentle comeback nudge with an easy win")
		}
	}
	return out
}

// RetentionInsights is an extension point; no algorithm is specified yet.
func (u *analyticsUsecase) RetentionInsights(*entity.LearningPattern) []string { return nil }

// LongTermForecast is an extension point; no algorithm is specified yet.
func (u *analyticsUsecase) LongTermForecast(*entity.LearningPattern) *entity.PerformancePrediction {
	return nil
}

// BehavioralInsights is an extension point; no algorithm is specified yet.
func (u *analyticsUsecase) BehavioralInsights(*entity.LearningPattern) []string { return nil }

// regressionSlope fits ordinary least squares through the coordinates and
// reports the per-step slope.
func regressionSlope(coords []stats.Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	fitted, err := stats.LinearRegression(coords)
	if err != nil || len(fitted) < 2 {
		return 0
	}
	first := fitted[0]
	last := fitted[len(fitted)-1]
	if last.X == first.X {
		return 0
	}
	return (last.Y - first.Y) / (last.X - first.X)
}

func seriesMean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, false
	}
	return mean, true
}

func topLessonType(pattern *entity.LearningPattern) (string, entity.LessonTypeStats, bool) {
	best := ""
	var bestStats entity.LessonTypeStats
	for name, s := range pattern.LessonTypes {
		if best == "" || s.Preference > bestStats.Preference || (s.Preference == bestStats.Preference && name < best) {
			best = name
			bestStats = s
		}
	}
	return best, bestStats, best != ""
}
