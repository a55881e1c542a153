package retry

import (
	"math"
	"math/rand"
	"time"
)

// Strategy calculates the delay before the next attempt.
type Strategy interface {
	// NextDelay returns the wait before retry number attempt (zero-indexed).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the number of retries after the first attempt.
	// Zero disables retries; a negative value retries until the context ends.
	MaxAttempts() int
}

// Backoff is exponential backoff with symmetric jitter.
type Backoff struct {
	initial    time.Duration
	max        time.Duration
	multiplier float64
	attempts   int

	// jitter of 0.1 spreads each delay by up to +/- 10%.
	jitter float64
	random func() float64
}

// BackoffOption configures a Backoff.
type BackoffOption func(*Backoff)

func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *Backoff) { b.initial = d }
}

func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *Backoff) { b.max = d }
}

func WithMultiplier(m float64) BackoffOption {
	return func(b *Backoff) { b.multiplier = m }
}

func WithJitter(j float64) BackoffOption {
	return func(b *Backoff) { b.jitter = j }
}

// WithRandom replaces the source of jitter, which must return values in [0, 1).
func WithRandom(f func() float64) BackoffOption {
	return func(b *Backoff) { b.random = f }
}

// NewBackoff returns a backoff of 100ms doubling up to 5s with 10% jitter.
func NewBackoff(maxAttempts int, opts ...BackoffOption) *Backoff {
	b := &Backoff{
		initial:    100 * time.Millisecond,
		max:        5 * time.Second,
		multiplier: 2,
		attempts:   maxAttempts,
		jitter:     0.1,
		random:     rand.Float64,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backoff) NextDelay(attempt int) time.Duration {
	delay := float64(b.initial) * math.Pow(b.multiplier, float64(attempt))
	if delay > float64(b.max) {
		delay = float64(b.max)
	}
	if b.jitter > 0 {
		offset := (b.random() - 0.5) * 2
		delay *= 1 + b.jitter*offset
	}
	if delay < 0 {
		return 0
	}
	return time.Duration(delay)
}

func (b *Backoff) MaxAttempts() int { return b.attempts }
