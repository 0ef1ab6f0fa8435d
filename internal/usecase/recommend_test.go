package usecase

import (
	"errors"
	"testing"

	"github.com/eslsoft/lingokit/internal/entity"
)

func newTestRecommend() *recommendUsecase {
	return NewRecommendUsecase(DefaultRecommendParams(), testLogger()).(*recommendUsecase)
}

func TestRecommendLessonsFiltersAndRanks(t *testing.T) {
	u := newTestRecommend()
	pattern := entity.NewLearningPattern("u1", 0)
	profile := &entity.UserProfile{UserID: "u1"}

	lessons := []entity.Lesson{
		{ID: "fit", Topics: []string{"travel"}, Difficulty: 0.6, Minutes: 20, CulturalRelevance: 0.7, EngagementHistory: 0.8},
		{ID: "too-hard", Topics: []string{"travel"}, Difficulty: 0.95, Minutes: 20, CulturalRelevance: 0.7, EngagementHistory: 0.8},
		{ID: "too-long", Topics: []string{"travel"}, Difficulty: 0.6, Minutes: 100, CulturalRelevance: 0.7, EngagementHistory: 0.8},
		{ID: "weak-score", Topics: []string{"travel"}, Difficulty: 0.2, Minutes: 20, CulturalRelevance: 0, EngagementHistory: 0.8},
	}

	got, err := u.RecommendLessons(pattern, profile, 0.5, lessons, entity.RecommendOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the fitting lesson, got %d results", len(got))
	}
	rec := got[0]
	if rec.Item.ItemID() != "fit" {
		t.Fatalf("expected lesson 'fit', got %s", rec.Item.ItemID())
	}
	if rec.Score < 0 || rec.Score > 1 {
		t.Fatalf("score out of range: %.3f", rec.Score)
	}
	if rec.Rationale == "" {
		t.Fatal("expected a rationale")
	}
	if len(rec.Breakdown) == 0 {
		t.Fatal("expected a score breakdown")
	}
}

func TestRecommendNewUserGetsDefaults(t *testing.T) {
	// A brand-new user with no history still receives recommendations at
	// the neutral ability.
	u := newTestRecommend()
	pattern := entity.NewLearningPattern("new", 0)
	profile := &entity.UserProfile{UserID: "new"}

	lessons := []entity.Lesson{
		{ID: "a", Topics: []string{"basics"}, Difficulty: 0.5, Minutes: 15, CulturalRelevance: 0.6, EngagementHistory: 0.7},
		{ID: "b", Topics: []string{"travel"}, Difficulty: 0.6, Minutes: 20, CulturalRelevance: 0.6, EngagementHistory: 0.7},
	}

	got, err := u.RecommendLessons(pattern, profile, 0.5, lessons, entity.RecommendOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected recommendations for a new user")
	}
}

func TestRecommendNegativeLimit(t *testing.T) {
	u := newTestRecommend()
	_, err := u.RecommendLessons(entity.NewLearningPattern("u1", 0), &entity.UserProfile{}, 0.5, nil, entity.RecommendOptions{Limit: -1})
	if !errors.Is(err, entity.ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestRecommendInvalidFilter(t *testing.T) {
	u := newTestRecommend()
	_, err := u.RecommendLessons(entity.NewLearningPattern("u1", 0), &entity.UserProfile{}, 0.5, nil, entity.RecommendOptions{Filter: "difficulty <<"})
	if !errors.Is(err, entity.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestRecommendFilterExpression(t *testing.T) {
	u := newTestRecommend()
	pattern := entity.NewLearningPattern("u1", 0)
	profile := &entity.UserProfile{UserID: "u1"}

	lessons := []entity.Lesson{
		{ID: "easy", Topics: []string{"travel"}, Difficulty: 0.45, Minutes: 15, CulturalRelevance: 0.6, EngagementHistory: 0.7},
		{ID: "harder", Topics: []string{"travel"}, Difficulty: 0.6, Minutes: 15, CulturalRelevance: 0.6, EngagementHistory: 0.7},
	}

	got, err := u.RecommendLessons(pattern, profile, 0.5, lessons, entity.RecommendOptions{Filter: `difficulty <= 0.5`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Item.ItemID() != "easy" {
		t.Fatalf("expected the filter to keep only 'easy', got %v", got)
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	u := newTestRecommend()
	got, err := u.RecommendLessons(entity.NewLearningPattern("u1", 0), &entity.UserProfile{}, 0.5, nil, entity.RecommendOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestRecommendVocabularyWeighsFrequency(t *testing.T) {
	u := newTestRecommend()
	pattern := entity.NewLearningPattern("u1", 0)
	profile := &entity.UserProfile{UserID: "u1", Interests: []string{"travel"}}

	items := []entity.VocabularyItem{
		{ID: "common", Topics: []string{"travel"}, Difficulty: 0.55, Frequency: 0.95, Utility: 0.9, Minutes: 5, CulturalRelevance: 0.5},
		{ID: "rare", Topics: []string{"travel"}, Difficulty: 0.55, Frequency: 0.1, Utility: 0.2, Minutes: 5, CulturalRelevance: 0.5},
	}

	got, err := u.RecommendVocabulary(pattern, profile, 0.5, items, entity.RecommendOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 || got[0].Item.ItemID() != "common" {
		t.Fatalf("expected the high-frequency term first, got %v", got)
	}
}

func TestRecommendPracticeBoostsWeaknesses(t *testing.T) {
	u := newTestRecommend()
	pattern := entity.NewLearningPattern("u1", 0)
	pattern.Mistakes["pronunciation"] = entity.MistakeStats{Frequency: 8, Persistence: 0.9}
	profile := &entity.UserProfile{UserID: "u1"}

	items := []entity.PracticeItem{
		{ID: "targeted", Skills: []string{"pronunciation"}, Topics: []string{"speech"}, Difficulty: 0.55, Minutes: 10, RetentionBenefit: 0.5, EngagementHistory: 0.6, CulturalRelevance: 0.5},
		{ID: "generic", Skills: []string{"writing"}, Topics: []string{"essays"}, Difficulty: 0.55, Minutes: 10, RetentionBenefit: 0.5, EngagementHistory: 0.6, CulturalRelevance: 0.5},
	}

	got, err := u.RecommendPractice(pattern, profile, 0.5, items, entity.RecommendOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 || got[0].Item.ItemID() != "targeted" {
		t.Fatalf("expected weakness-targeted practice first, got %v", got)
	}
}

func TestDiversifySpreadsTopics(t *testing.T) {
	u := newTestRecommend()

	mk := func(id, topic string, priority float64) entity.Recommendation {
		return entity.Recommendation{
			Item:     entity.Lesson{ID: id, Topics: []string{topic}},
			Priority: priority,
		}
	}
	candidates := []entity.Recommendation{
		mk("a1", "travel", 0.90),
		mk("a2", "travel", 0.88),
		mk("a3", "travel", 0.86),
		mk("b1", "food", 0.80),
	}

	got := u.diversify(candidates, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(got))
	}
	if got[0].Item.ItemID() != "a1" {
		t.Fatalf("expected the top candidate first, got %s", got[0].Item.ItemID())
	}
	// 0.88*(1-0.15) = 0.748 < 0.80: the off-topic item wins the second slot.
	if got[1].Item.ItemID() != "b1" {
		t.Fatalf("expected topic diversity in the second slot, got %s", got[1].Item.ItemID())
	}
}

func TestDiversifyRespectsLimit(t *testing.T) {
	u := newTestRecommend()
	candidates := []entity.Recommendation{
		{Item: entity.Lesson{ID: "x", Topics: []string{"t"}}, Priority: 0.9},
	}
	if got := u.diversify(candidates, 5); len(got) != 1 {
		t.Fatalf("expected all candidates when fewer than limit, got %d", len(got))
	}
}

func TestDifficultyFitPeaksAboveAbility(t *testing.T) {
	if fit := difficultyFit(0.6, 0.5); fit != 1 {
		t.Fatalf("expected perfect fit at ability+0.1, got %.2f", fit)
	}
	if fit := difficultyFit(0.5, 0.5); fit < 0.799 || fit > 0.801 {
		t.Fatalf("expected 0.8 at the ability level, got %.2f", fit)
	}
	if fit := difficultyFit(1.0, 0.2); fit != 0 {
		t.Fatalf("expected zero fit far from ability, got %.2f", fit)
	}
}

func TestOverlapScoreNeutralWithoutPreferences(t *testing.T) {
	if got := overlapScore([]string{"travel"}, nil); got != 0.5 {
		t.Fatalf("expected neutral 0.5, got %.2f", got)
	}
	if got := overlapScore(nil, []string{"travel"}); got != 0.3 {
		t.Fatalf("expected 0.3 for topicless items, got %.2f", got)
	}
	if got := overlapScore([]string{"travel", "food"}, []string{"travel"}); got != 0.5 {
		t.Fatalf("expected half overlap, got %.2f", got)
	}
}

func TestCulturalScoreIndifferentUser(t *testing.T) {
	if got := culturalScore(0.1, 0); got != 1 {
		t.Fatalf("an indifferent user scores everything 1, got %.2f", got)
	}
	if got := culturalScore(0.5, 1); got != 0.5 {
		t.Fatalf("a maximally sensitive user sees raw relevance, got %.2f", got)
	}
}
