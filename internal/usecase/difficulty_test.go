package usecase

import (
	"strings"
	"testing"

	"github.com/eslsoft/lingokit/internal/entity"
)

func patternWithSnapshots(snaps ...entity.PerformanceSnapshot) *entity.LearningPattern {
	p := entity.NewLearningPattern("u1", 0)
	for _, s := range snaps {
		p.AppendSnapshot(s)
	}
	return p
}

func repeatSnapshot(n int, accuracy, frustration, engagement float64) []entity.PerformanceSnapshot {
	out := make([]entity.PerformanceSnapshot, n)
	for i := range out {
		out[i] = entity.PerformanceSnapshot{
			Accuracy:    accuracy,
			Frustration: frustration,
			Engagement:  engagement,
			Completion:  1,
			At:          testNow.AddDate(0, 0, i),
		}
	}
	return out
}

func TestAdaptRaisesOnHighAccuracy(t *testing.T) {
	u := NewDifficultyUsecase(DefaultDifficultyParams(), testLogger())
	state := entity.NewDifficultyState()
	p := patternWithSnapshots(repeatSnapshot(5, 0.95, 0.1, 0.8)...)

	mod, committed := u.Adapt(state, p, testNow)
	if !committed {
		t.Fatal("expected a committed modification")
	}
	if state.Current < 0.599 || state.Current > 0.601 {
		t.Fatalf("expected difficulty raised to 0.6, got %.2f", state.Current)
	}
	if mod.From != 0.5 {
		t.Fatalf("expected From 0.5, got %.2f", mod.From)
	}
	if !strings.Contains(mod.Rationale, "high accuracy") {
		t.Fatalf("expected rationale to mention high accuracy, got %q", mod.Rationale)
	}
	if mod.PredictedSuccess < 0.2 || mod.PredictedSuccess > 0.95 {
		t.Fatalf("predicted success out of bounds: %.2f", mod.PredictedSuccess)
	}
	if len(state.History) != 1 {
		t.Fatalf("expected one history entry, got %d", len(state.History))
	}
}

func TestAdaptLowersWhenStruggling(t *testing.T) {
	u := NewDifficultyUsecase(DefaultDifficultyParams(), testLogger())
	state := entity.NewDifficultyState()
	p := patternWithSnapshots(repeatSnapshot(5, 0.45, 0.5, 0.7)...)

	mod, committed := u.Adapt(state, p, testNow)
	if !committed {
		t.Fatal("expected a committed modification")
	}
	if state.Current < 0.399 || state.Current > 0.401 {
		t.Fatalf("expected difficulty lowered to 0.4, got %.2f", state.Current)
	}
	if !strings.Contains(mod.Rationale, "struggling") {
		t.Fatalf("unexpected rationale %q", mod.Rationale)
	}
}

func TestAdaptHoldsInsideTheBand(t *testing.T) {
	u := NewDifficultyUsecase(DefaultDifficultyParams(), testLogger())
	state := entity.NewDifficultyState()
	p := patternWithSnapshots(repeatSnapshot(5, 0.75, 0.3, 0.7)...)

	for i := 0; i < 3; i++ {
		mod, committed := u.Adapt(state, p, testNow)
		if committed || mod != nil {
			t.Fatalf("cycle %d: expected hold, got modification %+v", i, mod)
		}
		if state.Current != entity.DifficultyInitial {
			t.Fatalf("cycle %d: difficulty drifted to %.2f", i, state.Current)
		}
	}
}

func TestAdaptEngagementDampingStaysInsideEpsilon(t *testing.T) {
	// 0.5*0.95 moves only 0.025, inside the 0.05 epsilon: damping alone
	// never commits from the neutral level.
	u := NewDifficultyUsecase(DefaultDifficultyParams(), testLogger())
	state := entity.NewDifficultyState()
	p := patternWithSnapshots(repeatSnapshot(5, 0.75, 0.3, 0.3)...)

	_, committed := u.Adapt(state, p, testNow)
	if committed {
		t.Fatal("expected damping to stay inside the inertia band")
	}
	if state.Target >= state.Current {
		t.Fatalf("expected eased target below current, got %.3f", state.Target)
	}
}

func TestAdaptClampsAtCeiling(t *testing.T) {
	u := NewDifficultyUsecase(DefaultDifficultyParams(), testLogger())
	state := entity.NewDifficultyState()
	state.Current = entity.DifficultyCeiling
	state.Target = entity.DifficultyCeiling
	p := patternWithSnapshots(repeatSnapshot(5, 0.98, 0.05, 0.9)...)

	_, committed := u.Adapt(state, p, testNow)
	if committed {
		t.Fatal("expected no modification at the ceiling")
	}
	if state.Current != entity.DifficultyCeiling {
		t.Fatalf("difficulty escaped the ceiling: %.2f", state.Current)
	}
}

func TestAdaptNoopsWithoutHistory(t *testing.T) {
	u := NewDifficultyUsecase(DefaultDifficultyParams(), testLogger())
	state := entity.NewDifficultyState()

	mod, committed := u.Adapt(state, entity.NewLearningPattern("u1", 0), testNow)
	if committed || mod != nil {
		t.Fatal("expected no-op for an empty pattern")
	}
}

func TestEstimateAbilityNeutralForNewUsers(t *testing.T) {
	u := NewDifficultyUsecase(DefaultDifficultyParams(), testLogger())
	if got := u.EstimateAbility(entity.NewLearningPattern("u1", 0)); got != 0.5 {
		t.Fatalf("expected neutral 0.5, got %.2f", got)
	}
}

func TestEstimateAbilityRewardsImprovement(t *testing.T) {
	u := NewDifficultyUsecase(DefaultDifficultyParams(), testLogger())

	flat := patternWithSnapshots(repeatSnapshot(4, 0.7, 0.2, 0.7)...)
	improving := patternWithSnapshots(
		entity.PerformanceSnapshot{Accuracy: 0.6, At: testNow},
		entity.PerformanceSnapshot{Accuracy: 0.6, At: testNow.AddDate(0, 0, 1)},
		entity.PerformanceSnapshot{Accuracy: 0.8, At: testNow.AddDate(0, 0, 2)},
		entity.PerformanceSnapshot{Accuracy: 0.8, At: testNow.AddDate(0, 0, 3)},
	)

	flatAbility := u.EstimateAbility(flat)
	improvingAbility := u.EstimateAbility(improving)
	if improvingAbility <= flatAbility {
		t.Fatalf("expected improvement trend to raise ability: flat=%.3f improving=%.3f", flatAbility, improvingAbility)
	}
	// avg 0.7 plus half of the 0.2 half-to-half gain.
	if improvingAbility < 0.799 || improvingAbility > 0.801 {
		t.Fatalf("expected ability ~0.8, got %.3f", improvingAbility)
	}
}

func TestRollingMetricsUsesRecentWindowOnly(t *testing.T) {
	u := NewDifficultyUsecase(DefaultDifficultyParams(), testLogger())

	p := entity.NewLearningPattern("u1", 0)
	// Five weak sessions pushed out of the window by five strong ones.
	for _, snap := range repeatSnapshot(5, 0.3, 0.8, 0.4) {
		p.AppendSnapshot(snap)
	}
	for _, snap := range repeatSnapshot(5, 0.9, 0.1, 0.8) {
		snap.At = snap.At.AddDate(0, 0, 5)
		p.AppendSnapshot(snap)
	}

	m := u.RollingMetrics(p)
	if m.Sessions != entity.PerformanceWindow {
		t.Fatalf("expected window of %d, got %d", entity.PerformanceWindow, m.Sessions)
	}
	if m.Accuracy < 0.899 || m.Accuracy > 0.901 {
		t.Fatalf("expected recent accuracy 0.9, got %.3f", m.Accuracy)
	}
}
