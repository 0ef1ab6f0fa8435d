// Package scheduler drives adaptation cycles at a fixed interval. The
// loop is owned by the caller: engines never start their own timers, so
// tests can tick deterministically and teardown leaks nothing.
package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// TickFunc is one adaptation cycle.
type TickFunc func(now time.Time)

// Scheduler invokes a TickFunc on a fixed cadence until its context is
// cancelled.
type Scheduler struct {
	interval time.Duration
	logger   logrus.FieldLogger
	tick     TickFunc
}

// New builds a scheduler; intervals below one second are raised to it.
func New(interval time.Duration, tick TickFunc, logger logrus.FieldLogger) *Scheduler {
	if interval < time.Second {
		interval = time.Second
	}
	return &Scheduler{interval: interval, logger: logger, tick: tick}
}

// Run blocks, ticking until ctx is done. It always returns nil on
// cancellation; the ticker is stopped before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.WithField("interval", s.interval).Info("scheduler started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return nil
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}
