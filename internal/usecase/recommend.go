package usecase

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingokit/internal/entity"
	"github.com/eslsoft/lingokit/pkg/filterexpr"
)

// RecommendParams control filtering and diversification across all three
// scorers.
type RecommendParams struct {
	LessonConfidence     float64
	VocabularyConfidence float64
	PracticeConfidence   float64
	AbilityDistance      float64
	TimeBudgetFactor     float64
	InterestBoost        float64
	CulturalFloor        float64
	DiversityPenalty     float64
	DefaultLimit         int
}

// DefaultRecommendParams returns the documented thresholds.
func DefaultRecommendParams() RecommendParams {
	return RecommendParams{
		LessonConfidence:     0.6,
		VocabularyConfidence: 0.5,
		PracticeConfidence:   0.4,
		AbilityDistance:      0.4,
		TimeBudgetFactor:     1.2,
		InterestBoost:        0.5,
		CulturalFloor:        0.2,
		DiversityPenalty:     0.15,
		DefaultLimit:         10,
	}
}

// RecommendUsecase scores, filters and diversifies catalog content. The
// catalog is read-only input supplied per call; an empty catalog or an
// empty pattern yields an empty or default-confidence result, never an
// error.
type RecommendUsecase interface {
	RecommendLessons(pattern *entity.LearningPattern, profile *entity.UserProfile, ability float64, lessons []entity.Lesson, opts entity.RecommendOptions) ([]entity.Recommendation, error)
	RecommendVocabulary(pattern *entity.LearningPattern, profile *entity.UserProfile, ability float64, items []entity.VocabularyItem, opts entity.RecommendOptions) ([]entity.Recommendation, error)
	RecommendPractice(pattern *entity.LearningPattern, profile *entity.UserProfile, ability float64, items []entity.PracticeItem, opts entity.RecommendOptions) ([]entity.Recommendation, error)
}

// NewRecommendUsecase wires the engine with its weight configuration.
func NewRecommendUsecase(params RecommendParams, logger logrus.FieldLogger) RecommendUsecase {
	return &recommendUsecase{params: params, logger: logger}
}

type recommendUsecase struct {
	params RecommendParams
	logger logrus.FieldLogger
}

func (u *recommendUsecase) RecommendLessons(pattern *entity.LearningPattern, profile *entity.UserProfile, ability float64, lessons []entity.Lesson, opts entity.RecommendOptions) ([]entity.Recommendation, error) {
	items := lo.Map(lessons, func(l entity.Lesson, _ int) entity.ScorableItem { return l })
	return u.recommend(pattern, profile, ability, items, opts, u.params.LessonConfidence, u.scoreLesson)
}

func (u *recommendUsecase) RecommendVocabulary(pattern *entity.LearningPattern, profile *entity.UserProfile, ability float64, vocab []entity.VocabularyItem, opts entity.RecommendOptions) ([]entity.Recommendation, error) {
	items := lo.Map(vocab, func(v entity.VocabularyItem, _ int) entity.ScorableItem { return v })
	return u.recommend(pattern, profile, ability, items, opts, u.params.VocabularyConfidence, u.scoreVocabulary)
}

func (u *recommendUsecase) RecommendPractice(pattern *entity.LearningPattern, profile *entity.UserProfile, ability float64, practice []entity.PracticeItem, opts entity.RecommendOptions) ([]entity.Recommendation, error) {
	items := lo.Map(practice, func(p entity.PracticeItem, _ int) entity.ScorableItem { return p })
	return u.recommend(pattern, profile, ability, items, opts, u.params.PracticeConfidence, u.scorePractice)
}

type scorerFunc func(item entity.ScorableItem, pattern *entity.LearningPattern, profile *entity.UserProfile, ability float64) entity.Recommendation

func (u *recommendUsecase) recommend(pattern *entity.LearningPattern, profile *entity.UserProfile, ability float64, items []entity.ScorableItem, opts entity.RecommendOptions, confidence float64, score scorerFunc) ([]entity.Recommendation, error) {
	if opts.Limit < 0 {
		return nil, fmt.Errorf("%w: %d", entity.ErrInvalidLimit, opts.Limit)
	}
	limit := opts.Limit
	if limit == 0 {
		limit = u.params.DefaultLimit
	}
	profile.Normalize()

	pred, err := filterexpr.Compile(opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidFilter, err)
	}

	weaknesses := weaknessSet(pattern)
	candidates := make([]entity.Recommendation, 0, len(items))
	for _, item := range items {
		ok, err := pred(itemVars(item))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrInvalidFilter, err)
		}
		if !ok {
			continue
		}

		rec := score(item, pattern, profile, ability)
		if rec.Score < confidence {
			continue
		}
		if !u.passesAdaptiveFilters(&rec, profile, ability, opts) {
			continue
		}
		rec.Priority = rec.Score + priorityBoosts(item, profile, weaknesses)
		candidates = append(candidates, rec)
	}

	ranked := u.diversify(candidates, limit)
	u.logger.WithFields(logrus.Fields{
		"user":       pattern.UserID,
		"candidates": len(candidates),
		"returned":   len(ranked),
	}).Debug("recommendations ranked")
	return ranked, nil
}

// passesAdaptiveFilters applies the performance, time-budget, interest and
// cultural filters, mutating the score for the interest boost.
func (u *recommendUsecase) passesAdaptiveFilters(rec *entity.Recommendation, profile *entity.UserProfile, ability float64, opts entity.RecommendOptions) bool {
	distance := rec.Item.ItemDifficulty() - ability
	if distance < 0 {
		distance = -distance
	}
	if distance > u.params.AbilityDistance {
		return false
	}

	available := opts.AvailableMinutes
	if available <= 0 {
		available = profile.AvailableMinutesPerDay
	}
	if rec.Item.ItemMinutes() > u.params.TimeBudgetFactor*available {
		return false
	}

	if cultural, ok := rec.Breakdown["cultural_relevance"]; ok {
		if cultural < u.params.CulturalFloor*profile.CulturalPreference {
			return false
		}
	}

	if interest, ok := rec.Breakdown["interest_alignment"]; ok {
		rec.Score = entity.Clamp01(rec.Score * (1 + u.params.InterestBoost*interest))
	}
	return true
}

// diversify greedily re-ranks candidates, discounting each candidate's
// priority by how many already-selected items share a topic with it.
func (u *recommendUsecase) diversify(candidates []entity.Recommendation, limit int) []entity.Recommendation {
	// Deterministic starting order.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].Item.ItemID() < candidates[j].Item.ItemID()
	})

	selected := make([]entity.Recommendation, 0, limit)
	remaining := candidates
	for len(selected) < limit && len(remaining) > 0 {
		bestIdx := 0
		bestScore := -1.0
		for i, c := range remaining {
			overlap := 0
			for _, s := range selected {
				if len(lo.Intersect(c.Item.ItemTopics(), s.Item.ItemTopics())) > 0 {
					overlap++
				}
			}
			discounted := c.Priority * (1 - u.params.DiversityPenalty*float64(overlap))
			if discounted < 0 {
				discounted = 0
			}
			if discounted > bestScore {
				bestScore = discounted
				bestIdx = i
			}
		}
		pick := remaining[bestIdx]
		pick.Priority = bestScore
		selected = append(selected, pick)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return selected
}

func priorityBoosts(item entity.ScorableItem, profile *entity.UserProfile, weaknesses map[string]struct{}) float64 {
	boost := 0.0
	for _, t := range item.ItemTopics() {
		if _, ok := weaknesses[t]; ok {
			boost += 0.1
			break
		}
	}
	for _, s := range item.ItemSkills() {
		if _, ok := weaknesses[s]; ok {
			boost += 0.05
			break
		}
	}
	if len(lo.Intersect(item.ItemTopics(), profile.Goals)) > 0 {
		boost += 0.05
	}
	return boost
}

func weaknessSet(pattern *entity.LearningPattern) map[string]struct{} {
	set := map[string]struct{}{}
	for cat, m := range pattern.Mistakes {
		if m.Severity() > 0.3 {
			set[cat] = struct{}{}
		}
	}
	return set
}

func itemVars(item entity.ScorableItem) map[string]any {
	return map[string]any{
		filterexpr.VarID:         item.ItemID(),
		filterexpr.VarTopics:     item.ItemTopics(),
		filterexpr.VarSkills:     item.ItemSkills(),
		filterexpr.VarDifficulty: item.ItemDifficulty(),
		filterexpr.VarMinutes:    item.ItemMinutes(),
	}
}
