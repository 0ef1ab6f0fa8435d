package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/eslsoft/lingokit/internal/entity"
)

// Fixed scorer weights. Each set sums to 1 so overall scores stay in [0,1].
var (
	lessonWeights = map[string]float64{
		"difficulty_fit":         0.25,
		"interest_alignment":     0.15,
		"goal_alignment":         0.15,
		"prerequisite_readiness": 0.15,
		"cultural_relevance":     0.10,
		"novelty":                0.10,
		"engagement_potential":   0.10,
	}
	vocabularyWeights = map[string]float64{
		"difficulty_fit":     0.30,
		"frequency_impact":   0.25,
		"utility":            0.20,
		"interest_alignment": 0.15,
		"retention_benefit":  0.10,
	}
	practiceWeights = map[string]float64{
		"difficulty_fit":       0.25,
		"weakness_match":       0.25,
		"retention_benefit":    0.15,
		"engagement_potential": 0.15,
		"goal_alignment":       0.10,
		"cultural_relevance":   0.10,
	}
)

// difficultyFit peaks slightly above the estimated ability, not at it.
func difficultyFit(itemDifficulty, ability float64) float64 {
	diff := itemDifficulty - (ability + 0.1)
	if diff < 0 {
		diff = -diff
	}
	fit := 1 - 2*diff
	if fit < 0 {
		return 0
	}
	return fit
}

// overlapScore is the share of item topics found in the user list; users
// with no stated preferences score neutral.
func overlapScore(itemTopics, userTopics []string) float64 {
	if len(userTopics) == 0 {
		return 0.5
	}
	if len(itemTopics) == 0 {
		return 0.3
	}
	shared := len(lo.Intersect(itemTopics, userTopics))
	return entity.Clamp01(float64(shared) / float64(len(itemTopics)))
}

// culturalScore weighs item relevance by how much the user cares: an
// indifferent user scores everything high.
func culturalScore(relevance, preference float64) float64 {
	return entity.Clamp01(1 - preference*(1-relevance))
}

func combine(breakdown, weights map[string]float64) float64 {
	var total float64
	for name, w := range weights {
		total += w * breakdown[name]
	}
	return entity.Clamp01(total)
}

// rationaleFrom names the two strongest sub-scores.
func rationaleFrom(breakdown map[string]float64) string {
	type factor struct {
		name  string
		value float64
	}
	factors := make([]factor, 0, len(breakdown))
	for name, v := range breakdown {
		factors = append(factors, factor{name: name, value: v})
	}
	sort.Slice(factors, func(i, j int) bool {
		if factors[i].value != factors[j].value {
			return factors[i].value > factors[j].value
		}
		return factors[i].name < factors[j].name
	})
	if len(factors) >= 2 {
		return fmt.Sprintf("strong %s and %s",
			strings.ReplaceAll(factors[0].name, "_", " "),
			strings.ReplaceAll(factors[1].name, "_", " "))
	}
	if len(factors) == 1 {
		return fmt.Sprintf("strong %s", strings.ReplaceAll(factors[0].name, "_", " "))
	}
	return "no scoring factors"
}

func (u *recommendUsecase) scoreLesson(item entity.ScorableItem, pattern *entity.LearningPattern, profile *entity.UserProfile, ability float64) entity.Recommendation {
	lesson := item.(entity.Lesson)
	completed := profile.CompletedSet()

	prereq := 1.0
	if len(lesson.Prerequisites) > 0 {
		done := 0
		for _, pre := range lesson.Prerequisites {
			if _, ok := completed[pre]; ok {
				done++
			}
		}
		prereq = float64(done) / float64(len(lesson.Prerequisites))
	}

	novelty := 1.0
	if _, ok := completed[lesson.ID]; ok {
		novelty = 0
	} else if stats, ok := pattern.LessonTypes[lesson.Type]; ok {
		novelty = entity.Clamp01(1 - stats.Preference)
	}

	typeEngagement := 0.6
	if stats, ok := pattern.LessonTypes[lesson.Type]; ok && stats.Sessions > 0 {
		typeEngagement = stats.Engagement
	}

	breakdown := map[string]float64{
		"difficulty_fit":         difficultyFit(lesson.Difficulty, ability),
		"interest_alignment":     overlapScore(lesson.Topics, profile.Interests),
		"goal_alignment":         overlapScore(append(lesson.Topics, lesson.Skills...), profile.Goals),
		"prerequisite_readiness": prereq,
		"cultural_relevance":     culturalScore(lesson.CulturalRelevance, profile.CulturalPreference),
		"novelty":                novelty,
		"engagement_potential":   entity.Clamp01(0.5*lesson.EngagementHistory + 0.5*typeEngagement),
	}
	score := combine(breakdown, lessonWeights)

	return entity.Recommendation{
		Item:             item,
		Score:            score,
		Breakdown:        breakdown,
		Rationale:        rationaleFrom(breakdown),
		PredictedBenefit: entity.Clamp01(0.6*score + 0.4*breakdown["difficulty_fit"]),
	}
}

func (u *recommendUsecase) scoreVocabulary(item entity.ScorableItem, pattern *entity.LearningPattern, profile *entity.UserProfile, ability float64) entity.Recommendation {
	vocab := item.(entity.VocabularyItem)

	// Weak recent retention raises the benefit of drilling vocabulary.
	retention := 0.5
	if pattern.Retention.Len() > 0 {
		retention = pattern.Retention.Latest(0.5)
	}

	breakdown := map[string]float64{
		"difficulty_fit":     difficultyFit(vocab.Difficulty, ability),
		"frequency_impact":   entity.Clamp01(vocab.Frequency),
		"utility":            entity.Clamp01(vocab.Utility),
		"interest_alignment": overlapScore(vocab.Topics, profile.Interests),
		"retention_benefit":  entity.Clamp01(1 - retention),
	}
	score := combine(breakdown, vocabularyWeights)

	return entity.Recommendation{
		Item:             item,
		Score:            score,
		Breakdown:        breakdown,
		Rationale:        rationaleFrom(breakdown),
		PredictedBenefit: entity.Clamp01(0.6*score + 0.4*breakdown["frequency_impact"]),
	}
}

func (u *recommendUsecase) scorePractice(item entity.ScorableItem, pattern *entity.LearningPattern, profile *entity.UserProfile, ability float64) entity.Recommendation {
	practice := item.(entity.PracticeItem)

	weaknesses := lo.Keys(weaknessSet(pattern))
	weaknessMatch := 0.3
	if len(weaknesses) > 0 {
		hits := len(lo.Intersect(practice.Topics, weaknesses)) + len(lo.Intersect(practice.Skills, weaknesses))
		weaknessMatch = entity.Clamp01(0.3 + 0.35*float64(hits))
	}

	breakdown := map[string]float64{
		"difficulty_fit":       difficultyFit(practice.Difficulty, ability),
		"weakness_match":       weaknessMatch,
		"retention_benefit":    entity.Clamp01(practice.RetentionBenefit),
		"engagement_potential": entity.Clamp01(practice.EngagementHistory),
		"goal_alignment":       overlapScore(append(practice.Topics, practice.Skills...), profile.Goals),
		"cultural_relevance":   culturalScore(practice.CulturalRelevance, profile.CulturalPreference),
	}
	score := combine(breakdown, practiceWeights)

	return entity.Recommendation{
		Item:             item,
		Score:            score,
		Breakdown:        breakdown,
		Rationale:        rationaleFrom(breakdown),
		PredictedBenefit: entity.Clamp01(0.5*score + 0.5*breakdown["weakness_match"]),
	}
}
