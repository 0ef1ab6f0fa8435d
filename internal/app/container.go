package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingokit/internal/infrastructure/config"
	"github.com/eslsoft/lingokit/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config      *config.Config
	Logger      *logrus.Logger
	Coordinator usecase.Coordinator
}
