package entity

import (
	"testing"
	"time"
)

var sessionNow = time.Date(2025, time.March, 10, 19, 30, 0, 0, time.UTC)

func TestNormalizeFillsDefaults(t *testing.T) {
	s := SessionSummary{}
	s.Normalize(sessionNow)

	if s.Minutes != DefaultSessionMinutes {
		t.Fatalf("expected default minutes, got %.1f", s.Minutes)
	}
	if s.Accuracy != DefaultAccuracy || s.Engagement != DefaultEngagement || s.Completion != DefaultCompletion {
		t.Fatalf("expected default scores, got %.2f/%.2f/%.2f", s.Accuracy, s.Engagement, s.Completion)
	}
	if s.LessonType != "general" {
		t.Fatalf("expected general lesson type, got %q", s.LessonType)
	}
	if !s.StartedAt.Equal(sessionNow) {
		t.Fatalf("expected StartedAt defaulted, got %v", s.StartedAt)
	}
	if s.Errors == nil || s.ResponseTimes == nil {
		t.Fatal("expected empty slices, not nil")
	}
}

func TestNormalizeRejectsOutOfRange(t *testing.T) {
	s := SessionSummary{Minutes: 5000, Accuracy: 1.2, Engagement: -0.1, Completion: 2}
	s.Normalize(sessionNow)

	if s.Minutes != DefaultSessionMinutes {
		t.Fatalf("expected absurd duration replaced, got %.1f", s.Minutes)
	}
	if s.Accuracy != DefaultAccuracy || s.Engagement != DefaultEngagement || s.Completion != DefaultCompletion {
		t.Fatalf("expected out-of-range scores replaced, got %.2f/%.2f/%.2f", s.Accuracy, s.Engagement, s.Completion)
	}
}

func TestErrorRateSaturates(t *testing.T) {
	s := SessionSummary{}
	for i := 0; i < 15; i++ {
		s.Errors = append(s.Errors, SessionError{Category: "grammar"})
	}
	if got := s.ErrorRate(); got != 1 {
		t.Fatalf("expected saturation at 1, got %.2f", got)
	}
}

func TestFrustrationCombinesSignals(t *testing.T) {
	clean := SessionSummary{Accuracy: 1, ResponseTimes: []float64{2, 3}}
	if got := clean.Frustration(); got != 0 {
		t.Fatalf("expected zero frustration, got %.2f", got)
	}

	rough := SessionSummary{
		Accuracy:      0.4,
		Errors:        []SessionError{{Category: "a"}, {Category: "b"}, {Category: "c"}},
		ResponseTimes: []float64{12, 14},
	}
	// 0.4*0.3 + 0.4*0.6 + 0.2*1.0
	if got := rough.Frustration(); got < 0.559 || got > 0.561 {
		t.Fatalf("expected frustration ~0.56, got %.3f", got)
	}
}

func TestCognitiveLoadStaysInRange(t *testing.T) {
	s := SessionSummary{Minutes: 500, ResponseTimes: []float64{60}}
	for i := 0; i < 20; i++ {
		s.Errors = append(s.Errors, SessionError{Category: "x"})
	}
	if got := s.CognitiveLoad(); got != 1 {
		t.Fatalf("expected load clamped at 1, got %.2f", got)
	}
}
