package usecase

import (
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingokit/internal/entity"
)

// ScheduleParams control study-schedule generation.
type ScheduleParams struct {
	BaseSessionMinutes float64
	WeaknessShare      float64
	InterestShare      float64
	GoalShare          float64
	WeaknessThreshold  float64
	StrengthEffect     float64
	StrengthCompletion float64
}

// DefaultScheduleParams returns the documented 60/25/15 focus blend.
func DefaultScheduleParams() ScheduleParams {
	return ScheduleParams{
		BaseSessionMinutes: 30,
		WeaknessShare:      0.6,
		InterestShare:      0.25,
		GoalShare:          0.15,
		WeaknessThreshold:  0.3,
		StrengthEffect:     0.8,
		StrengthCompletion: 0.85,
	}
}

// DefaultTransferTable pairs a strong lesson type with the mistake
// categories it can carry. Explicit config, never inferred.
func DefaultTransferTable() map[string][]string {
	return map[string][]string{
		"conversation": {"pronunciation", "listening"},
		"vocabulary":   {"reading", "writing"},
		"grammar":      {"writing"},
		"listening":    {"conversation", "pronunciation"},
		"reading":      {"vocabulary", "grammar"},
	}
}

// LeveragePair couples a strength with a weakness the transfer table says
// it can support.
type LeveragePair struct {
	Strength string
	Weakness string
}

// PathUsecase builds study schedules, sequences the lesson DAG and runs
// spaced repetition.
type PathUsecase interface {
	BuildSchedule(pattern *entity.LearningPattern, profile *entity.UserProfile, difficulty float64, now time.Time) *entity.StudySchedule
	OptimalStudyTime(pattern *entity.LearningPattern, now time.Time) *time.Time
	SequenceLessons(lessons []entity.Lesson, completed map[string]struct{}) []entity.Lesson
	Weaknesses(pattern *entity.LearningPattern, limit int) []string
	Strengths(pattern *entity.LearningPattern) []string
	LeveragePairs(pattern *entity.LearningPattern) []LeveragePair
	TargetedPractice(pattern *entity.LearningPattern, items []entity.PracticeItem, limit int) []entity.PracticeItem
	Review(r *entity.ReviewInterval, quality entity.RecallQuality, now time.Time)
	DueReviews(reviews map[string]*entity.ReviewInterval, now time.Time, limit int) []*entity.ReviewInterval
}

// NewPathUsecase wires the optimizer with its schedule, SRS and transfer
// configuration.
func NewPathUsecase(schedule ScheduleParams, srs SRSParams, transfer map[string][]string, logger logrus.FieldLogger) PathUsecase {
	if len(transfer) == 0 {
		transfer = DefaultTransferTable()
	}
	return &pathUsecase{schedule: schedule, srs: srs, transfer: transfer, logger: logger}
}

type pathUsecase struct {
	schedule ScheduleParams
	srs      SRSParams
	transfer map[string][]string
	logger   logrus.FieldLogger
}

// BuildSchedule emits one session proposal per known time window. Duration
// is min(base*effectiveness, attention span); content focus blends the
// top-3 weaknesses, top-2 interests and the top goal.
func (u *pathUsecase) BuildSchedule(pattern *entity.LearningPattern, profile *entity.UserProfile, difficulty float64, now time.Time) *entity.StudySchedule {
	profile.Normalize()

	windows := make([]entity.TimeWindow, len(pattern.TimeWindows))
	copy(windows, pattern.TimeWindows)
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Effectiveness > windows[j].Effectiveness
	})

	focus := u.buildFocus(pattern, profile)
	sessions := make([]entity.OptimalSession, 0, len(windows))
	for _, w := range windows {
		minutes := u.schedule.BaseSessionMinutes * w.Effectiveness
		if minutes > profile.AttentionSpanMinutes {
			minutes = profile.AttentionSpanMinutes
		}
		if minutes < 5 {
			minutes = 5
		}
		sessions = append(sessions, entity.OptimalSession{
			Window:     w,
			Minutes:    minutes,
			Difficulty: difficulty,
			Focus:      focus,
		})
	}

	return &entity.StudySchedule{
		UserID:      pattern.UserID,
		Sessions:    sessions,
		GeneratedAt: now,
	}
}

func (u *pathUsecase) buildFocus(pattern *entity.LearningPattern, profile *entity.UserProfile) []entity.FocusArea {
	var focus []entity.FocusArea

	weaknesses := u.Weaknesses(pattern, 3)
	if len(weaknesses) > 0 {
		share := u.schedule.WeaknessShare / float64(len(weaknesses))
		for _, w := range weaknesses {
			focus = append(focus, entity.FocusArea{Topic: w, Weight: share, Reason: "weakness"})
		}
	}

	interests := profile.Interests
	if len(interests) > 2 {
		interests = interests[:2]
	}
	if len(interests) > 0 {
		share := u.schedule.InterestShare / float64(len(interests))
		for _, in := range interests {
			focus = append(focus, entity.FocusArea{Topic: in, Weight: share, Reason: "interest"})
		}
	}

	if len(profile.Goals) > 0 {
		focus = append(focus, entity.FocusArea{Topic: profile.Goals[0], Weight: u.schedule.GoalShare, Reason: "goal"})
	}

	return focus
}

// OptimalStudyTime returns the next occurrence of the user's best time
// window, or nil when no windows are known yet.
func (u *pathUsecase) OptimalStudyTime(pattern *entity.LearningPattern, now time.Time) *time.Time {
	if len(pattern.TimeWindows) == 0 {
		return nil
	}

	best := pattern.TimeWindows[0]
	for _, w := range pattern.TimeWindows[1:] {
		if w.Effectiveness*w.Consistency > best.Effectiveness*best.Consistency {
			best = w
		}
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), best.StartHour, 0, 0, 0, now.Location())
	for next.Weekday() != best.Weekday || !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return &next
}

// SequenceLessons orders eligible lessons (all prerequisites completed) by
// how many other lessons they unblock, most first.
func (u *pathUsecase) SequenceLessons(lessons []entity.Lesson, completed map[string]struct{}) []entity.Lesson {
	if completed == nil {
		completed = map[string]struct{}{}
	}

	fanout := map[string]int{}
	for _, l := range lessons {
		for _, pre := range l.Prerequisites {
			fanout[pre]++
		}
	}

	eligible := lo.Filter(lessons, func(l entity.Lesson, _ int) bool {
		if _, done := completed[l.ID]; done {
			return false
		}
		for _, pre := range l.Prerequisites {
			if _, ok := completed[pre]; !ok {
				return false
			}
		}
		return true
	})

	sort.Slice(eligible, func(i, j int) bool {
		fi, fj := fanout[eligible[i].ID], fanout[eligible[j].ID]
		if fi != fj {
			return fi > fj
		}
		if eligible[i].Difficulty != eligible[j].Difficulty {
			return eligible[i].Difficulty < eligible[j].Difficulty
		}
		return eligible[i].ID < eligible[j].ID
	})
	return eligible
}

// Weaknesses lists mistake categories whose severity exceeds the
// threshold, worst first.
func (u *pathUsecase) Weaknesses(pattern *entity.LearningPattern, limit int) []string {
	type weighted struct {
		category string
		severity float64
	}

	var out []weighted
	for cat, m := range pattern.Mistakes {
		if sev := m.Severity(); sev > u.schedule.WeaknessThreshold {
			out = append(out, weighted{category: cat, severity: sev})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].severity != out[j].severity {
			return out[i].severity > out[j].severity
		}
		return out[i].category < out[j].category
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return lo.Map(out, func(w weighted, _ int) string { return w.category })
}

// Strengths lists lesson types with high effectiveness and completion.
func (u *pathUsecase) Strengths(pattern *entity.LearningPattern) []string {
	var out []string
	for name, stats := range pattern.LessonTypes {
		if stats.Effectiveness > u.schedule.StrengthEffect && stats.CompletionRate > u.schedule.StrengthCompletion {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// LeveragePairs couples strengths with weaknesses, but only along edges
// the transfer-compatibility table allows.
func (u *pathUsecase) LeveragePairs(pattern *entity.LearningPattern) []LeveragePair {
	weaknesses := u.Weaknesses(pattern, 0)
	strengths := u.Strengths(pattern)

	var pairs []LeveragePair
	for _, s := range strengths {
		for _, target := range u.transfer[s] {
			if lo.Contains(weaknesses, target) {
				pairs = append(pairs, LeveragePair{Strength: s, Weakness: target})
			}
		}
	}
	return pairs
}

// TargetedPractice picks practice items whose topics or skills hit the
// user's current weaknesses.
func (u *pathUsecase) TargetedPractice(pattern *entity.LearningPattern, items []entity.PracticeItem, limit int) []entity.PracticeItem {
	weaknesses := u.Weaknesses(pattern, 3)
	if len(weaknesses) == 0 {
		return nil
	}

	matched := lo.Filter(items, func(it entity.PracticeItem, _ int) bool {
		return len(lo.Intersect(it.Topics, weaknesses)) > 0 || len(lo.Intersect(it.Skills, weaknesses)) > 0
	})
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].RetentionBenefit != matched[j].RetentionBenefit {
			return matched[i].RetentionBenefit > matched[j].RetentionBenefit
		}
		return matched[i].ID < matched[j].ID
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}
