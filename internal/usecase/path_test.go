package usecase

import (
	"testing"
	"time"

	"github.com/eslsoft/lingokit/internal/entity"
)

func TestBuildScheduleCapsAtAttentionSpan(t *testing.T) {
	u := newTestPath()
	p := entity.NewLearningPattern("u1", 0)
	p.TimeWindows = []entity.TimeWindow{
		{Weekday: time.Monday, StartHour: 19, EndHour: 21, Effectiveness: 0.9, Consistency: 0.5, Sessions: 5},
		{Weekday: time.Wednesday, StartHour: 7, EndHour: 9, Effectiveness: 0.5, Consistency: 0.3, Sessions: 3},
	}
	profile := &entity.UserProfile{UserID: "u1", AttentionSpanMinutes: 20, Interests: []string{"travel"}, Goals: []string{"fluency"}}

	schedule := u.BuildSchedule(p, profile, 0.6, testNow)
	if len(schedule.Sessions) != 2 {
		t.Fatalf("expected one session per window, got %d", len(schedule.Sessions))
	}
	// Best window first: 30 * 0.9 = 27 would exceed the 20-minute span.
	first := schedule.Sessions[0]
	if first.Window.Weekday != time.Monday {
		t.Fatalf("expected best window first, got %v", first.Window.Weekday)
	}
	if first.Minutes != 20 {
		t.Fatalf("expected attention-span cap at 20, got %.1f", first.Minutes)
	}
	if first.Difficulty != 0.6 {
		t.Fatalf("expected session difficulty 0.6, got %.2f", first.Difficulty)
	}
	if schedule.Sessions[1].Minutes != 15 {
		t.Fatalf("expected 30*0.5 minutes for the weaker window, got %.1f", schedule.Sessions[1].Minutes)
	}
}

func TestBuildScheduleFocusBlend(t *testing.T) {
	u := newTestPath()
	p := entity.NewLearningPattern("u1", 0)
	p.TimeWindows = []entity.TimeWindow{{Weekday: time.Monday, StartHour: 19, EndHour: 21, Effectiveness: 0.8, Sessions: 4}}
	p.Mistakes["pronunciation"] = entity.MistakeStats{Frequency: 8, Persistence: 0.9}
	profile := &entity.UserProfile{
		UserID:    "u1",
		Interests: []string{"travel", "food", "music"},
		Goals:     []string{"fluency", "certification"},
	}

	schedule := u.BuildSchedule(p, profile, 0.5, testNow)
	focus := schedule.Sessions[0].Focus

	var weakness, interest, goal float64
	var interests int
	for _, f := range focus {
		switch f.Reason {
		case "weakness":
			weakness += f.Weight
		case "interest":
			interest += f.Weight
			interests++
		case "goal":
			goal += f.Weight
		}
	}
	if weakness != 0.6 || interest != 0.25 || goal != 0.15 {
		t.Fatalf("expected 60/25/15 blend, got %.2f/%.2f/%.2f", weakness, interest, goal)
	}
	if interests != 2 {
		t.Fatalf("expected interests truncated to 2, got %d", interests)
	}
	for _, f := range focus {
		if f.Reason == "goal" && f.Topic != "fluency" {
			t.Fatalf("expected the top goal, got %q", f.Topic)
		}
	}
}

func TestOptimalStudyTimeNilWithoutWindows(t *testing.T) {
	u := newTestPath()
	if got := u.OptimalStudyTime(entity.NewLearningPattern("u1", 0), testNow); got != nil {
		t.Fatalf("expected nil for a user with no windows, got %v", got)
	}
}

func TestOptimalStudyTimeNextOccurrence(t *testing.T) {
	u := newTestPath()
	p := entity.NewLearningPattern("u1", 0)
	p.TimeWindows = []entity.TimeWindow{
		{Weekday: time.Tuesday, StartHour: 7, EndHour: 9, Effectiveness: 0.5, Consistency: 0.5},
		{Weekday: time.Friday, StartHour: 20, EndHour: 22, Effectiveness: 0.9, Consistency: 0.8},
	}

	// testNow is a Monday 19:30; the best window is Friday 20:00.
	got := u.OptimalStudyTime(p, testNow)
	if got == nil {
		t.Fatal("expected a study time")
	}
	if got.Weekday() != time.Friday || got.Hour() != 20 {
		t.Fatalf("expected Friday 20:00, got %v", got)
	}
	if !got.After(testNow) {
		t.Fatalf("expected a future time, got %v", got)
	}
}

func TestSequenceLessonsByUnlockFanout(t *testing.T) {
	u := newTestPath()
	lessons := []entity.Lesson{
		{ID: "advanced", Prerequisites: []string{"intro"}, Difficulty: 0.7},
		{ID: "intro", Difficulty: 0.3},
		{ID: "gateway", Difficulty: 0.4},
		{ID: "branch-a", Prerequisites: []string{"gateway"}, Difficulty: 0.5},
		{ID: "branch-b", Prerequisites: []string{"gateway"}, Difficulty: 0.5},
	}

	seq := u.SequenceLessons(lessons, nil)
	ids := make([]string, len(seq))
	for i, l := range seq {
		ids[i] = l.ID
	}
	// Only lessons with satisfied prerequisites are eligible; gateway
	// unblocks two lessons, intro one.
	if len(ids) != 2 || ids[0] != "gateway" || ids[1] != "intro" {
		t.Fatalf("unexpected sequence %v", ids)
	}

	seq = u.SequenceLessons(lessons, map[string]struct{}{"gateway": {}})
	ids = ids[:0]
	for _, l := range seq {
		ids = append(ids, l.ID)
	}
	if len(ids) != 3 || ids[0] != "intro" {
		t.Fatalf("expected intro then the unblocked branches, got %v", ids)
	}
}

func TestWeaknessesSortedBySeverity(t *testing.T) {
	u := newTestPath()
	p := entity.NewLearningPattern("u1", 0)
	p.Mistakes["listening"] = entity.MistakeStats{Frequency: 9, Persistence: 0.9}
	p.Mistakes["articles"] = entity.MistakeStats{Frequency: 5, Persistence: 0.8}
	p.Mistakes["typos"] = entity.MistakeStats{Frequency: 1, Persistence: 0.1}

	got := u.Weaknesses(p, 0)
	if len(got) != 2 {
		t.Fatalf("expected two weaknesses above threshold, got %v", got)
	}
	if got[0] != "listening" || got[1] != "articles" {
		t.Fatalf("wrong severity order: %v", got)
	}

	if limited := u.Weaknesses(p, 1); len(limited) != 1 || limited[0] != "listening" {
		t.Fatalf("expected limit to keep the worst, got %v", limited)
	}
}

func TestLeveragePairsFollowTransferTable(t *testing.T) {
	u := newTestPath()
	p := entity.NewLearningPattern("u1", 0)
	p.LessonTypes["conversation"] = entity.LessonTypeStats{Effectiveness: 0.9, CompletionRate: 0.95, Sessions: 8}
	p.LessonTypes["grammar"] = entity.LessonTypeStats{Effectiveness: 0.9, CompletionRate: 0.95, Sessions: 8}
	p.Mistakes["pronunciation"] = entity.MistakeStats{Frequency: 8, Persistence: 0.9}
	p.Mistakes["reading"] = entity.MistakeStats{Frequency: 8, Persistence: 0.9}

	pairs := u.LeveragePairs(p)
	if len(pairs) != 1 {
		t.Fatalf("expected exactly one pair, got %v", pairs)
	}
	// conversation carries pronunciation; grammar only carries writing,
	// which is not a weakness here.
	if pairs[0].Strength != "conversation" || pairs[0].Weakness != "pronunciation" {
		t.Fatalf("unexpected pair %+v", pairs[0])
	}
}

func TestTargetedPracticeMatchesWeaknesses(t *testing.T) {
	u := newTestPath()
	p := entity.NewLearningPattern("u1", 0)
	p.Mistakes["pronunciation"] = entity.MistakeStats{Frequency: 8, Persistence: 0.9}

	items := []entity.PracticeItem{
		{ID: "drill-1", Skills: []string{"pronunciation"}, RetentionBenefit: 0.6},
		{ID: "drill-2", Topics: []string{"pronunciation"}, RetentionBenefit: 0.9},
		{ID: "drill-3", Skills: []string{"writing"}, RetentionBenefit: 0.8},
	}

	got := u.TargetedPractice(p, items, 0)
	if len(got) != 2 {
		t.Fatalf("expected two matching drills, got %v", got)
	}
	if got[0].ID != "drill-2" {
		t.Fatalf("expected highest retention benefit first, got %s", got[0].ID)
	}

	if none := u.TargetedPractice(entity.NewLearningPattern("u2", 0), items, 0); none != nil {
		t.Fatalf("expected nil without weaknesses, got %v", none)
	}
}
