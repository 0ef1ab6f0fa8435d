package entity

import (
	"time"

	"github.com/eslsoft/lingokit/pkg/series"
)

// DefaultPatternCapacity bounds every behavioural sample series.
const DefaultPatternCapacity = 40

// PerformanceWindow is the number of recent sessions the difficulty loop
// evaluates.
const PerformanceWindow = 5

// snapshotCapacity keeps a little more history than the performance window
// so trend terms have both halves populated.
const snapshotCapacity = 2 * PerformanceWindow

// TimeWindow describes when a user tends to study well.
type TimeWindow struct {
	Weekday       time.Weekday
	StartHour     int
	EndHour       int
	Effectiveness float64
	Consistency   float64
	Sessions      int
}

// Contains reports whether the given hour falls inside the window.
func (w TimeWindow) Contains(weekday time.Weekday, hour int) bool {
	return w.Weekday == weekday && hour >= w.StartHour && hour < w.EndHour
}

// LessonTypeStats aggregates how a user responds to one lesson type.
type LessonTypeStats struct {
	Preference     float64
	Effectiveness  float64
	Engagement     float64
	CompletionRate float64
	Sessions       int
}

// MistakeStats aggregates one mistake category.
type MistakeStats struct {
	Frequency       int
	ImprovementRate float64
	Persistence     float64
	LastSeen        time.Time
}

// Severity maps frequency and persistence onto [0,1]; ten occurrences
// saturate the frequency part.
func (m MistakeStats) Severity() float64 {
	return Clamp01(float64(m.Frequency) / 10 * (0.5 + 0.5*m.Persistence))
}

// PerformanceSnapshot is the per-session digest the difficulty loop reads.
type PerformanceSnapshot struct {
	Accuracy        float64
	ResponseSeconds float64
	Completion      float64
	Engagement      float64
	Frustration     float64
	At              time.Time
}

// LearningPattern is the rolling behavioural profile of a single user.
// All normalized scores stay in [0,1]; every series is bounded.
type LearningPattern struct {
	UserID            string
	AvgSessionMinutes float64
	SessionCount      int
	TimeWindows       []TimeWindow
	LessonTypes       map[string]LessonTypeStats
	Mistakes          map[string]MistakeStats
	Engagement        *series.Bounded
	Progress          *series.Bounded
	Retention         *series.Bounded
	CognitiveLoad     *series.Bounded
	snapshots         []PerformanceSnapshot
}

// NewLearningPattern creates an empty pattern for a user. capacity <= 0
// falls back to DefaultPatternCapacity.
func NewLearningPattern(userID string, capacity int) *LearningPattern {
	if capacity <= 0 {
		capacity = DefaultPatternCapacity
	}
	return &LearningPattern{
		UserID:        userID,
		LessonTypes:   make(map[string]LessonTypeStats),
		Mistakes:      make(map[string]MistakeStats),
		Engagement:    series.NewBounded(capacity),
		Progress:      series.NewBounded(capacity),
		Retention:     series.NewBounded(capacity),
		CognitiveLoad: series.NewBounded(capacity),
	}
}

// AppendSnapshot records a per-session digest, evicting the oldest beyond
// the snapshot cap.
func (p *LearningPattern) AppendSnapshot(snap PerformanceSnapshot) {
	p.snapshots = append(p.snapshots, snap)
	if len(p.snapshots) > snapshotCapacity {
		p.snapshots = p.snapshots[len(p.snapshots)-snapshotCapacity:]
	}
}

// RecentSnapshots returns up to k most recent snapshots, oldest first.
func (p *LearningPattern) RecentSnapshots(k int) []PerformanceSnapshot {
	if k <= 0 || len(p.snapshots) == 0 {
		return nil
	}
	if k > len(p.snapshots) {
		k = len(p.snapshots)
	}
	out := make([]PerformanceSnapshot, k)
	copy(out, p.snapshots[len(p.snapshots)-k:])
	return out
}
