package app

import (
	"github.com/eslsoft/lingokit/internal/infrastructure/config"
	"github.com/eslsoft/lingokit/internal/usecase"
)

func provideCoordinatorConfig(cfg *config.Config) usecase.CoordinatorConfig {
	return usecase.CoordinatorConfig{PatternCapacity: cfg.Engine.PatternCapacity}
}

func provideDifficultyParams(cfg *config.Config) usecase.DifficultyParams {
	p := usecase.DefaultDifficultyParams()
	if cfg.Engine.DifficultyStep > 0 {
		p.Step = cfg.Engine.DifficultyStep
	}
	if cfg.Engine.DifficultyEpsilon > 0 {
		p.Epsilon = cfg.Engine.DifficultyEpsilon
	}
	return p
}

func provideScheduleParams(cfg *config.Config) usecase.ScheduleParams {
	p := usecase.DefaultScheduleParams()
	if cfg.Engine.BaseSessionMinutes > 0 {
		p.BaseSessionMinutes = cfg.Engine.BaseSessionMinutes
	}
	return p
}

func provideSRSParams(_ *config.Config) usecase.SRSParams {
	return usecase.DefaultSRSParams()
}

func provideRecommendParams(_ *config.Config) usecase.RecommendParams {
	return usecase.DefaultRecommendParams()
}

func provideAnalyticsParams(cfg *config.Config) usecase.AnalyticsParams {
	p := usecase.DefaultAnalyticsParams()
	if cfg.Engine.AnalyticsTTL > 0 {
		p.CacheTTL = cfg.Engine.AnalyticsTTL
	}
	if cfg.Engine.AnalyticsCacheSize > 0 {
		p.CacheSize = cfg.Engine.AnalyticsCacheSize
	}
	return p
}

func provideReadinessParams(cfg *config.Config) usecase.ReadinessParams {
	p := usecase.DefaultReadinessParams()
	if cfg.Engine.UnlockThreshold > 0 {
		p.UnlockThreshold = cfg.Engine.UnlockThreshold
	}
	return p
}

func provideTransferTable(cfg *config.Config) map[string][]string {
	return cfg.Engine.Transfer
}
