package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingokit/internal/entity"
)

// ReadinessParams hold the five criterion weights and the unlock bar.
type ReadinessParams struct {
	SkillWeight      float64
	EngagementWeight float64
	ConfidenceWeight float64
	AlignmentWeight  float64
	TimingWeight     float64
	UnlockThreshold  float64
}

// DefaultReadinessParams returns the documented 40/25/20/10/5 split.
func DefaultReadinessParams() ReadinessParams {
	return ReadinessParams{
		SkillWeight:      0.40,
		EngagementWeight: 0.25,
		ConfidenceWeight: 0.20,
		AlignmentWeight:  0.10,
		TimingWeight:     0.05,
		UnlockThreshold:  0.85,
	}
}

// comparisonEpsilon guards the >= threshold comparison against float
// accumulation error in the weighted sum.
const comparisonEpsilon = 1e-9

// ReadinessUsecase is the stateless feature unlock gate.
type ReadinessUsecase interface {
	Assess(profile *entity.UserProfile, feature *entity.FeatureDefinition, now time.Time) (*entity.ReadinessScore, error)
	RenderMessage(score *entity.ReadinessScore, feature *entity.FeatureDefinition, profile *entity.UserProfile) (*entity.UnlockMessage, error)
}

// NewReadinessUsecase wires the gate with its weights.
func NewReadinessUsecase(params ReadinessParams, logger logrus.FieldLogger) ReadinessUsecase {
	return &readinessUsecase{params: params, logger: logger}
}

type readinessUsecase struct {
	params ReadinessParams
	logger logrus.FieldLogger
}

func (u *readinessUsecase) Assess(profile *entity.UserProfile, feature *entity.FeatureDefinition, now time.Time) (*entity.ReadinessScore, error) {
	if profile == nil {
		return nil, entity.ErrNilProfile
	}
	if feature == nil {
		return nil, entity.ErrNilFeature
	}
	profile.Normalize()

	breakdown := map[string]float64{
		entity.CriterionSkills:     skillScore(profile, feature),
		entity.CriterionEngagement: requirementScore(profile.EngagementScore, feature.MinEngagement),
		entity.CriterionConfidence: requirementScore(profile.ConfidenceScore, feature.MinConfidence),
		entity.CriterionAlignment:  alignmentScore(profile, feature),
		entity.CriterionTiming:     timingScore(profile, feature),
	}

	overall := u.params.SkillWeight*breakdown[entity.CriterionSkills] +
		u.params.EngagementWeight*breakdown[entity.CriterionEngagement] +
		u.params.ConfidenceWeight*breakdown[entity.CriterionConfidence] +
		u.params.AlignmentWeight*breakdown[entity.CriterionAlignment] +
		u.params.TimingWeight*breakdown[entity.CriterionTiming]
	overall = entity.Clamp01(overall)

	recommendation := entity.RecommendationWait
	if overall >= u.params.UnlockThreshold-comparisonEpsilon {
		recommendation = entity.RecommendationUnlock
	}

	gapName, gapScore := lowestCriterion(breakdown)
	gapSize := entity.Clamp01(u.params.UnlockThreshold - gapScore)

	score := &entity.ReadinessScore{
		FeatureID:         feature.ID,
		Overall:           overall,
		Breakdown:         breakdown,
		Evidence:          evidence(breakdown),
		LargestGap:        gapName,
		GapSize:           gapSize,
		Recommendation:    recommendation,
		EstimatedTimeline: timeline(gapSize),
		AssessedAt:        now,
	}

	u.logger.WithFields(logrus.Fields{
		"user":    profile.UserID,
		"feature": feature.ID,
		"overall": overall,
		"verdict": recommendation,
	}).Debug("feature readiness assessed")
	return score, nil
}

// RenderMessage formats a readiness score for the user. Pure rendering, no
// new decision logic.
func (u *readinessUsecase) RenderMessage(score *entity.ReadinessScore, feature *entity.FeatureDefinition, profile *entity.UserProfile) (*entity.UnlockMessage, error) {
	if score == nil || profile == nil {
		return nil, entity.ErrNilProfile
	}
	if feature == nil {
		return nil, entity.ErrNilFeature
	}

	if score.Recommendation == entity.RecommendationUnlock {
		return &entity.UnlockMessage{
			Type:     "ready",
			Title:    fmt.Sprintf("%s unlocked", feature.Name),
			Body:     fmt.Sprintf("Great work — your recent progress shows you are ready for %s.", feature.Name),
			Evidence: score.Evidence,
		}, nil
	}

	return &entity.UnlockMessage{
		Type:  "not_ready",
		Title: fmt.Sprintf("%s is almost within reach", feature.Name),
		Body: fmt.Sprintf("Keep working on %s — estimated %s until %s unlocks.",
			readableCriterion(score.LargestGap), score.EstimatedTimeline, feature.Name),
		Evidence: score.Evidence,
	}, nil
}

// skillScore averages per-skill attainment ratios; a feature with no skill
// requirements is fully satisfied.
func skillScore(profile *entity.UserProfile, feature *entity.FeatureDefinition) float64 {
	if len(feature.RequiredSkills) == 0 {
		return 1
	}
	var total float64
	for skill, need := range feature.RequiredSkills {
		if need <= 0 {
			total += 1
			continue
		}
		total += entity.Clamp01(profile.Competencies[skill] / need)
	}
	return total / float64(len(feature.RequiredSkills))
}

// requirementScore compares an observed score to a minimum; with no
// minimum the observed score stands on its own.
func requirementScore(have, min float64) float64 {
	if min <= 0 {
		return entity.Clamp01(have)
	}
	return entity.Clamp01(have / min)
}

func alignmentScore(profile *entity.UserProfile, feature *entity.FeatureDefinition) float64 {
	if len(feature.RelatedGoals) == 0 {
		return entity.Clamp01(profile.CulturalPreference)
	}
	shared := len(lo.Intersect(feature.RelatedGoals, profile.Goals))
	goalShare := float64(shared) / float64(len(feature.RelatedGoals))
	return entity.Clamp01(0.7*goalShare + 0.3*profile.CulturalPreference)
}

func timingScore(profile *entity.UserProfile, feature *entity.FeatureDefinition) float64 {
	if feature.RequiredStreakDays > 0 {
		return entity.Clamp01(float64(profile.StudyStreakDays) / float64(feature.RequiredStreakDays))
	}
	// Without an explicit streak requirement, recent activity stands in.
	return entity.Clamp01(float64(profile.SessionsLastWeek) / 5)
}

func evidence(breakdown map[string]float64) []string {
	names := lo.Keys(breakdown)
	sort.Strings(names)

	var out []string
	for _, name := range names {
		if breakdown[name] >= 0.8 {
			out = append(out, fmt.Sprintf("%s at %.2f", readableCriterion(name), breakdown[name]))
		}
	}
	return out
}

func lowestCriterion(breakdown map[string]float64) (string, float64) {
	names := lo.Keys(breakdown)
	sort.Strings(names)

	lowest := ""
	lowestScore := 2.0
	for _, name := range names {
		if breakdown[name] < lowestScore {
			lowest = name
			lowestScore = breakdown[name]
		}
	}
	return lowest, lowestScore
}

func timeline(gap float64) string {
	switch {
	case gap <= 0:
		return "ready now"
	case gap < 0.1:
		return "about a week"
	case gap < 0.25:
		return "two to three weeks"
	default:
		return "a month or more"
	}
}

func readableCriterion(name string) string {
	switch name {
	case entity.CriterionSkills:
		return "skill prerequisites"
	case entity.CriterionEngagement:
		return "engagement"
	case entity.CriterionConfidence:
		return "confidence"
	case entity.CriterionAlignment:
		return "goal alignment"
	case entity.CriterionTiming:
		return "study consistency"
	default:
		return name
	}
}
