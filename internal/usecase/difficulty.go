package usecase

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingokit/internal/entity"
)

// DifficultyParams are the adaptation dials. Defaults match the documented
// decision rules; config may override them.
type DifficultyParams struct {
	Floor             float64
	Ceiling           float64
	Step              float64
	Epsilon           float64
	EngagementDamping float64
}

// DefaultDifficultyParams returns the documented adaptation constants.
func DefaultDifficultyParams() DifficultyParams {
	return DifficultyParams{
		Floor:             entity.DifficultyFloor,
		Ceiling:           entity.DifficultyCeiling,
		Step:              0.1,
		Epsilon:           0.05,
		EngagementDamping: 0.95,
	}
}

// PerformanceMetrics are rolling averages over the recent session window.
type PerformanceMetrics struct {
	Accuracy        float64
	ResponseSeconds float64
	Completion      float64
	Engagement      float64
	Frustration     float64
	Sessions        int
}

// DifficultyUsecase runs the adaptation loop once per cycle. A modification
// commits only when the target moves beyond the epsilon, so repeated cycles
// with stable performance are no-ops.
type DifficultyUsecase interface {
	Adapt(state *entity.DifficultyState, pattern *entity.LearningPattern, now time.Time) (*entity.DifficultyModification, bool)
	RollingMetrics(pattern *entity.LearningPattern) PerformanceMetrics
	EstimateAbility(pattern *entity.LearningPattern) float64
}

// NewDifficultyUsecase wires the loop with the given params.
func NewDifficultyUsecase(params DifficultyParams, logger logrus.FieldLogger) DifficultyUsecase {
	return &difficultyUsecase{params: params, logger: logger}
}

type difficultyUsecase struct {
	params DifficultyParams
	logger logrus.FieldLogger
}

func (u *difficultyUsecase) RollingMetrics(pattern *entity.LearningPattern) PerformanceMetrics {
	snaps := pattern.RecentSnapshots(entity.PerformanceWindow)
	if len(snaps) == 0 {
		return PerformanceMetrics{}
	}

	var m PerformanceMetrics
	for _, s := range snaps {
		m.Accuracy += s.Accuracy
		m.ResponseSeconds += s.ResponseSeconds
		m.Completion += s.Completion
		m.Engagement += s.Engagement
		m.Frustration += s.Frustration
	}
	n := float64(len(snaps))
	m.Accuracy /= n
	m.ResponseSeconds /= n
	m.Completion /= n
	m.Engagement /= n
	m.Frustration /= n
	m.Sessions = len(snaps)
	return m
}

// EstimateAbility averages recent accuracy with an improvement-trend term:
// the accuracy gain between the first and second half of the window. New
// users with no history sit at the neutral 0.5.
func (u *difficultyUsecase) EstimateAbility(pattern *entity.LearningPattern) float64 {
	snaps := pattern.RecentSnapshots(entity.PerformanceWindow)
	if len(snaps) == 0 {
		return 0.5
	}

	values := make([]float64, len(snaps))
	for i, s := range snaps {
		values[i] = s.Accuracy
	}
	avg, _ := stats.Mean(values)
	if len(values) < 2 {
		return entity.Clamp01(avg)
	}

	mid := len(values) / 2
	first, _ := stats.Mean(values[:mid])
	second, _ := stats.Mean(values[mid:])
	return entity.Clamp01(avg + 0.5*(second-first))
}

func (u *difficultyUsecase) Adapt(state *entity.DifficultyState, pattern *entity.LearningPattern, now time.Time) (*entity.DifficultyModification, bool) {
	metrics := u.RollingMetrics(pattern)
	if metrics.Sessions == 0 {
		state.Target = state.Current
		return nil, false
	}

	target := state.Current
	rationale := ""
	switch {
	case metrics.Accuracy > 0.9 && metrics.Frustration < 0.2:
		target = entity.Clamp(state.Current+u.params.Step, u.params.Floor, u.params.Ceiling)
		rationale = fmt.Sprintf("high accuracy (%.2f) with low frustration, raising difficulty", metrics.Accuracy)
	case metrics.Accuracy < 0.6 || metrics.Frustration > 0.7:
		target = entity.Clamp(state.Current-u.params.Step, u.params.Floor, u.params.Ceiling)
		rationale = fmt.Sprintf("struggling (accuracy %.2f, frustration %.2f), lowering difficulty", metrics.Accuracy, metrics.Frustration)
	case metrics.Engagement < 0.5:
		target = entity.Clamp(state.Current*u.params.EngagementDamping, u.params.Floor, u.params.Ceiling)
		rationale = fmt.Sprintf("low engagement (%.2f), easing difficulty", metrics.Engagement)
	}

	state.Target = target
	delta := target - state.Current
	if delta < 0 {
		delta = -delta
	}
	if delta <= u.params.Epsilon {
		// Inside the inertia band; no modification this cycle.
		return nil, false
	}

	ability := u.EstimateAbility(pattern)
	mod := entity.DifficultyModification{
		At:               now,
		From:             state.Current,
		To:               target,
		Rationale:        rationale,
		PredictedSuccess: entity.Clamp(0.7-0.3*target+0.2*ability, 0.2, 0.95),
	}
	state.Current = target
	state.Record(mod)

	u.logger.WithFields(logrus.Fields{
		"user": pattern.UserID,
		"from": mod.From,
		"to":   mod.To,
	}).Info("difficulty adapted")
	return &mod, true
}
