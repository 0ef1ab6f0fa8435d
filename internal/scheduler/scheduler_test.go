package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestRunStopsOnCancel(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	var ticks atomic.Int64
	s := New(time.Second, func(time.Time) { ticks.Add(1) }, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil on cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestNewRaisesTinyInterval(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	s := New(time.Millisecond, func(time.Time) {}, logger)
	if s.interval < time.Second {
		t.Fatalf("expected interval raised to 1s, got %v", s.interval)
	}
}
