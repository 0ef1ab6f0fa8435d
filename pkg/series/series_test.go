package series

import (
	"testing"
	"time"
)

func TestBoundedEvictsOldestOnAppend(t *testing.T) {
	b := NewBounded(3)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		b.Append(float64(i), base.Add(time.Duration(i)*time.Minute))
	}

	if b.Len() != 3 {
		t.Fatalf("expected 3 samples after eviction, got %d", b.Len())
	}
	got := b.Values()
	want := []float64{2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestBoundedLast(t *testing.T) {
	b := NewBounded(10)
	now := time.Now()
	for i := 0; i < 4; i++ {
		b.Append(float64(i), now)
	}

	got := b.Last(2)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Fatalf("expected [2 3], got %v", got)
	}
	if got := b.Last(100); len(got) != 4 {
		t.Fatalf("expected all 4 values, got %v", got)
	}
	if got := b.Last(0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
}

func TestLatestFallback(t *testing.T) {
	b := NewBounded(5)
	if got := b.Latest(0.7); got != 0.7 {
		t.Fatalf("expected fallback 0.7, got %v", got)
	}
	b.Append(0.4, time.Now())
	if got := b.Latest(0.7); got != 0.4 {
		t.Fatalf("expected 0.4, got %v", got)
	}
}

func TestEMA(t *testing.T) {
	got := EMA(0.5, 1.0, 0.8)
	if got < 0.599 || got > 0.601 {
		t.Fatalf("expected 0.6, got %v", got)
	}
}
