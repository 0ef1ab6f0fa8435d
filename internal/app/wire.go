//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingokit/internal/infrastructure/config"
	"github.com/eslsoft/lingokit/internal/infrastructure/logging"
	"github.com/eslsoft/lingokit/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
	provideCoordinatorConfig,
	provideDifficultyParams,
	provideScheduleParams,
	provideSRSParams,
	provideRecommendParams,
	provideAnalyticsParams,
	provideReadinessParams,
	provideTransferTable,
)

var loggerSet = wire.NewSet(
	logging.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
)

var usecaseSet = wire.NewSet(
	usecase.NewPatternUsecase,
	usecase.NewDifficultyUsecase,
	usecase.NewPathUsecase,
	usecase.NewRecommendUsecase,
	usecase.NewAnalyticsUsecase,
	usecase.NewReadinessUsecase,
	usecase.NewCoordinator,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, error) {
	wire.Build(
		configSet,
		loggerSet,
		usecaseSet,
		wire.Struct(new(Container), "Config", "Logger", "Coordinator"),
	)
	return nil, nil
}
