package usecase

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingokit/internal/entity"
	"github.com/eslsoft/lingokit/pkg/series"
)

// windowSmoothing is the EMA weight kept for the previous time-window
// effectiveness estimate: new = 0.8*old + 0.2*sample.
const windowSmoothing = 0.8

// statsSmoothing is the EMA weight for lesson-type and mistake aggregates.
const statsSmoothing = 0.8

// defaultWindowSpanHours is the width of a newly discovered time window.
const defaultWindowSpanHours = 2

// PatternUsecase maintains the rolling behavioural profile of a user. It
// never rejects telemetry: malformed fields are defaulted via Normalize.
type PatternUsecase interface {
	RecordSession(pattern *entity.LearningPattern, summary *entity.SessionSummary)
}

// NewPatternUsecase wires the pattern store with the default clock.
func NewPatternUsecase(logger logrus.FieldLogger) PatternUsecase {
	return &patternUsecase{
		logger: logger,
		clock:  time.Now,
	}
}

type patternUsecase struct {
	logger logrus.FieldLogger
	clock  func() time.Time
}

func (u *patternUsecase) RecordSession(pattern *entity.LearningPattern, summary *entity.SessionSummary) {
	now := u.clock()
	summary.Normalize(now)

	pattern.AvgSessionMinutes = runningAverage(pattern.AvgSessionMinutes, summary.Minutes, pattern.SessionCount)
	pattern.SessionCount++

	at := summary.StartedAt
	pattern.Engagement.Append(summary.Engagement, at)
	pattern.CognitiveLoad.Append(summary.CognitiveLoad(), at)
	pattern.Progress.Append(entity.Clamp01(0.6*summary.Accuracy+0.4*summary.Completion), at)
	pattern.Retention.Append(entity.Clamp01(0.7*summary.Accuracy+0.3*summary.Completion), at)

	u.updateTimeWindow(pattern, summary)
	u.updateLessonType(pattern, summary)
	u.updateMistakes(pattern, summary)

	pattern.AppendSnapshot(entity.PerformanceSnapshot{
		Accuracy:        summary.Accuracy,
		ResponseSeconds: summary.AvgResponseSeconds(),
		Completion:      summary.Completion,
		Engagement:      summary.Engagement,
		Frustration:     summary.Frustration(),
		At:              at,
	})

	u.logger.WithFields(logrus.Fields{
		"user":     pattern.UserID,
		"sessions": pattern.SessionCount,
		"accuracy": summary.Accuracy,
	}).Debug("session recorded")
}

// updateTimeWindow folds the session into the matching day/hour window,
// creating one when the user has never studied at that time before.
func (u *patternUsecase) updateTimeWindow(pattern *entity.LearningPattern, summary *entity.SessionSummary) {
	weekday := summary.StartedAt.Weekday()
	hour := summary.StartedAt.Hour()
	sample := entity.Clamp01(0.5*summary.Accuracy + 0.5*summary.Engagement)

	for i := range pattern.TimeWindows {
		w := &pattern.TimeWindows[i]
		if !w.Contains(weekday, hour) {
			continue
		}
		w.Effectiveness = series.EMA(w.Effectiveness, sample, windowSmoothing)
		w.Sessions++
		w.Consistency = entity.Clamp01(float64(w.Sessions) / 10)
		return
	}

	end := hour + defaultWindowSpanHours
	if end > 24 {
		end = 24
	}
	pattern.TimeWindows = append(pattern.TimeWindows, entity.TimeWindow{
		Weekday:       weekday,
		StartHour:     hour,
		EndHour:       end,
		Effectiveness: sample,
		Consistency:   0.1,
		Sessions:      1,
	})
}

func (u *patternUsecase) updateLessonType(pattern *entity.LearningPattern, summary *entity.SessionSummary) {
	stats := pattern.LessonTypes[summary.LessonType]
	if stats.Sessions == 0 {
		stats.Effectiveness = summary.Accuracy
		stats.Engagement = summary.Engagement
		stats.CompletionRate = summary.Completion
	} else {
		stats.Effectiveness = series.EMA(stats.Effectiveness, summary.Accuracy, statsSmoothing)
		stats.Engagement = series.EMA(stats.Engagement, summary.Engagement, statsSmoothing)
		stats.CompletionRate = series.EMA(stats.CompletionRate, summary.Completion, statsSmoothing)
	}
	stats.Sessions++
	stats.Preference = entity.Clamp01(float64(stats.Sessions) / float64(pattern.SessionCount))
	pattern.LessonTypes[summary.LessonType] = stats
}

func (u *patternUsecase) updateMistakes(pattern *entity.LearningPattern, summary *entity.SessionSummary) {
	seen := map[string]struct{}{}
	for _, e := range summary.Errors {
		if e.Category == "" {
			continue
		}
		m := pattern.Mistakes[e.Category]
		m.Frequency++
		m.LastSeen = summary.StartedAt
		if _, already := seen[e.Category]; !already {
			m.Persistence = series.EMA(m.Persistence, 1, statsSmoothing)
			m.ImprovementRate = series.EMA(m.ImprovementRate, summary.Accuracy, statsSmoothing)
			seen[e.Category] = struct{}{}
		}
		pattern.Mistakes[e.Category] = m
	}
}

func runningAverage(avg, sample float64, count int) float64 {
	if count <= 0 {
		return sample
	}
	return (avg*float64(count) + sample) / float64(count+1)
}
