package retry

import (
	"context"
	"time"
)

// Retrier runs operations with retries. It is safe for concurrent use;
// OnRetry returns a copy rather than modifying the receiver.
type Retrier struct {
	classifier Classifier
	strategy   Strategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// New creates a Retrier. Panics if classifier or strategy is nil.
func New(classifier Classifier, strategy Strategy) *Retrier {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Retrier{classifier: classifier, strategy: strategy}
}

// OnRetry returns a copy of r that calls fn before each wait.
func (r *Retrier) OnRetry(fn func(attempt int, err error, delay time.Duration)) *Retrier {
	clone := *r
	clone.onRetry = fn
	return &clone
}

// Do runs op until it succeeds, fails with a non-transient error, runs out
// of attempts, or ctx ends. The last error is returned.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	limit := r.strategy.MaxAttempts()

	for attempt := 0; err != nil && r.classifier.IsTransient(err) && (limit < 0 || attempt < limit); attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := r.strategy.NextDelay(attempt)
		if r.onRetry != nil {
			r.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = op(ctx)
	}
	return err
}
