package usecase

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingokit/internal/entity"
)

// LearnerEngine owns one user's adaptive state. State never crosses users;
// callers serialize telemetry for the same user (single-writer), so the
// engine holds no locks.
type LearnerEngine struct {
	UserID     string
	Pattern    *entity.LearningPattern
	Difficulty *entity.DifficultyState
	Reviews    map[string]*entity.ReviewInterval
	Schedule   *entity.StudySchedule
}

// Coordinator is the library boundary: every exposed operation of the
// personalization core, keyed by user. Engines are created lazily on the
// first telemetry event and live for the account's lifetime.
type Coordinator interface {
	RecordSession(userID string, summary entity.SessionSummary) error
	Tick(userID string, profile *entity.UserProfile) error

	CurrentDifficulty(userID string) (float64, error)
	OptimalStudyTime(userID string) (*time.Time, error)
	StudySchedule(userID string) (*entity.StudySchedule, error)

	RecommendLessons(userID string, profile *entity.UserProfile, lessons []entity.Lesson, opts entity.RecommendOptions) ([]entity.Recommendation, error)
	RecommendVocabulary(userID string, profile *entity.UserProfile, items []entity.VocabularyItem, opts entity.RecommendOptions) ([]entity.Recommendation, error)
	RecommendPractice(userID string, profile *entity.UserProfile, items []entity.PracticeItem, opts entity.RecommendOptions) ([]entity.Recommendation, error)
	SequenceLessons(userID string, lessons []entity.Lesson, profile *entity.UserProfile) ([]entity.Lesson, error)

	ReviewOutcome(userID, itemID string, quality entity.RecallQuality) error
	DueReviews(userID string, limit int) ([]*entity.ReviewInterval, error)

	LearningAnalytics(userID string) (*entity.AdvancedAnalytics, error)

	AssessFeatureReadiness(profile *entity.UserProfile, feature *entity.FeatureDefinition) (*entity.ReadinessScore, error)
	RenderUnlockMessage(score *entity.ReadinessScore, feature *entity.FeatureDefinition, profile *entity.UserProfile) (*entity.UnlockMessage, error)
}

// CoordinatorConfig carries the per-engine knobs the container wires in.
type CoordinatorConfig struct {
	PatternCapacity int
}

// NewCoordinator assembles the engines behind the library boundary.
func NewCoordinator(
	cfg CoordinatorConfig,
	pattern PatternUsecase,
	difficulty DifficultyUsecase,
	path PathUsecase,
	recommend RecommendUsecase,
	analytics AnalyticsUsecase,
	readiness ReadinessUsecase,
	logger logrus.FieldLogger,
) Coordinator {
	return &coordinator{
		cfg:        cfg,
		pattern:    pattern,
		difficulty: difficulty,
		path:       path,
		recommend:  recommend,
		analytics:  analytics,
		readiness:  readiness,
		logger:     logger,
		engines:    make(map[string]*LearnerEngine),
		clock:      time.Now,
	}
}

type coordinator struct {
	cfg        CoordinatorConfig
	pattern    PatternUsecase
	difficulty DifficultyUsecase
	path       PathUsecase
	recommend  RecommendUsecase
	analytics  AnalyticsUsecase
	readiness  ReadinessUsecase
	logger     logrus.FieldLogger
	engines    map[string]*LearnerEngine
	clock      func() time.Time
}

func (c *coordinator) engine(userID string) (*LearnerEngine, error) {
	if userID == "" {
		return nil, entity.ErrInvalidUserID
	}
	if e, ok := c.engines[userID]; ok {
		return e, nil
	}
	e := &LearnerEngine{
		UserID:     userID,
		Pattern:    entity.NewLearningPattern(userID, c.cfg.PatternCapacity),
		Difficulty: entity.NewDifficultyState(),
		Reviews:    make(map[string]*entity.ReviewInterval),
	}
	c.engines[userID] = e
	return e, nil
}

func (c *coordinator) RecordSession(userID string, summary entity.SessionSummary) error {
	e, err := c.engine(userID)
	if err != nil {
		return err
	}
	c.pattern.RecordSession(e.Pattern, &summary)
	// A pattern write makes any memoized analytics stale immediately.
	c.analytics.Invalidate(userID)
	return nil
}

// Tick runs one adaptation cycle as a strict sequential pipeline: the
// difficulty loop commits before the path optimizer reads the new level.
func (c *coordinator) Tick(userID string, profile *entity.UserProfile) error {
	e, err := c.engine(userID)
	if err != nil {
		return err
	}
	now := c.clock()

	c.difficulty.Adapt(e.Difficulty, e.Pattern, now)
	if profile == nil {
		profile = &entity.UserProfile{UserID: userID}
	}
	e.Schedule = c.path.BuildSchedule(e.Pattern, profile, e.Difficulty.Current, now)
	return nil
}

func (c *coordinator) CurrentDifficulty(userID string) (float64, error) {
	e, err := c.engine(userID)
	if err != nil {
		return 0, err
	}
	return e.Difficulty.Current, nil
}

func (c *coordinator) OptimalStudyTime(userID string) (*time.Time, error) {
	e, err := c.engine(userID)
	if err != nil {
		return nil, err
	}
	return c.path.OptimalStudyTime(e.Pattern, c.clock()), nil
}

func (c *coordinator) StudySchedule(userID string) (*entity.StudySchedule, error) {
	e, err := c.engine(userID)
	if err != nil {
		return nil, err
	}
	return e.Schedule, nil
}

func (c *coordinator) RecommendLessons(userID string, profile *entity.UserProfile, lessons []entity.Lesson, opts entity.RecommendOptions) ([]entity.Recommendation, error) {
	e, err := c.engine(userID)
	if err != nil {
		return nil, err
	}
	return c.recommend.RecommendLessons(e.Pattern, normalized(profile, userID), c.difficulty.EstimateAbility(e.Pattern), lessons, opts)
}

func (c *coordinator) RecommendVocabulary(userID string, profile *entity.UserProfile, items []entity.VocabularyItem, opts entity.RecommendOptions) ([]entity.Recommendation, error) {
	e, err := c.engine(userID)
	if err != nil {
		return nil, err
	}
	return c.recommend.RecommendVocabulary(e.Pattern, normalized(profile, userID), c.difficulty.EstimateAbility(e.Pattern), items, opts)
}

func (c *coordinator) RecommendPractice(userID string, profile *entity.UserProfile, items []entity.PracticeItem, opts entity.RecommendOptions) ([]entity.Recommendation, error) {
	e, err := c.engine(userID)
	if err != nil {
		return nil, err
	}
	return c.recommend.RecommendPractice(e.Pattern, normalized(profile, userID), c.difficulty.EstimateAbility(e.Pattern), items, opts)
}

func (c *coordinator) SequenceLessons(userID string, lessons []entity.Lesson, profile *entity.UserProfile) ([]entity.Lesson, error) {
	if _, err := c.engine(userID); err != nil {
		return nil, err
	}
	var completed map[string]struct{}
	if profile != nil {
		completed = profile.CompletedSet()
	}
	return c.path.SequenceLessons(lessons, completed), nil
}

func (c *coordinator) ReviewOutcome(userID, itemID string, quality entity.RecallQuality) error {
	e, err := c.engine(userID)
	if err != nil {
		return err
	}
	if itemID == "" {
		return entity.ErrUnknownItem
	}
	now := c.clock()
	r, ok := e.Reviews[itemID]
	if !ok {
		r = entity.NewReviewInterval(itemID, now)
		e.Reviews[itemID] = r
	}
	c.path.Review(r, quality, now)
	return nil
}

func (c *coordinator) DueReviews(userID string, limit int) ([]*entity.ReviewInterval, error) {
	e, err := c.engine(userID)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, entity.ErrInvalidLimit
	}
	return c.path.DueReviews(e.Reviews, c.clock(), limit), nil
}

func (c *coordinator) LearningAnalytics(userID string) (*entity.AdvancedAnalytics, error) {
	e, err := c.engine(userID)
	if err != nil {
		return nil, err
	}
	return c.analytics.Analyze(e.Pattern, c.clock()), nil
}

func (c *coordinator) AssessFeatureReadiness(profile *entity.UserProfile, feature *entity.FeatureDefinition) (*entity.ReadinessScore, error) {
	return c.readiness.Assess(profile, feature, c.clock())
}

func (c *coordinator) RenderUnlockMessage(score *entity.ReadinessScore, feature *entity.FeatureDefinition, profile *entity.UserProfile) (*entity.UnlockMessage, error) {
	return c.readiness.RenderMessage(score, feature, profile)
}

func normalized(profile *entity.UserProfile, userID string) *entity.UserProfile {
	if profile == nil {
		profile = &entity.UserProfile{UserID: userID}
	}
	profile.Normalize()
	return profile
}
