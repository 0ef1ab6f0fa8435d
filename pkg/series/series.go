// Package series provides bounded sample sequences used to keep rolling
// behavioural signals without retaining full history.
package series

import "time"

// Sample is a single observation with its capture time.
type Sample struct {
	Value float64   `json:"value"`
	At    time.Time `json:"at"`
}

// Bounded keeps only the most recent samples up to a fixed capacity.
// Appending beyond capacity evicts the oldest sample first.
type Bounded struct {
	capacity int
	samples  []Sample
}

// NewBounded creates a bounded series with the given capacity.
func NewBounded(capacity int) *Bounded {
	if capacity <= 0 {
		capacity = 1
	}
	return &Bounded{capacity: capacity}
}

// Append records a sample, evicting the oldest one when full.
func (b *Bounded) Append(value float64, at time.Time) {
	b.samples = append(b.samples, Sample{Value: value, At: at})
	if len(b.samples) > b.capacity {
		b.samples = b.samples[len(b.samples)-b.capacity:]
	}
}

// Len reports the number of retained samples.
func (b *Bounded) Len() int { return len(b.samples) }

// Capacity reports the maximum number of retained samples.
func (b *Bounded) Capacity() int { return b.capacity }

// Values returns a copy of the retained values, oldest first.
func (b *Bounded) Values() []float64 {
	out := make([]float64, len(b.samples))
	for i, s := range b.samples {
		out[i] = s.Value
	}
	return out
}

// Samples returns a copy of the retained samples, oldest first.
func (b *Bounded) Samples() []Sample {
	out := make([]Sample, len(b.samples))
	copy(out, b.samples)
	return out
}

// Last returns up to n most recent values, oldest first.
func (b *Bounded) Last(n int) []float64 {
	if n <= 0 || len(b.samples) == 0 {
		return nil
	}
	if n > len(b.samples) {
		n = len(b.samples)
	}
	out := make([]float64, n)
	for i, s := range b.samples[len(b.samples)-n:] {
		out[i] = s.Value
	}
	return out
}

// Latest returns the most recent value, or the fallback when empty.
func (b *Bounded) Latest(fallback float64) float64 {
	if len(b.samples) == 0 {
		return fallback
	}
	return b.samples[len(b.samples)-1].Value
}

// EMA blends an existing estimate with a new sample using the given
// smoothing weight for the old estimate: new = weight*old + (1-weight)*sample.
func EMA(old, sample, weight float64) float64 {
	return weight*old + (1-weight)*sample
}
