// Package retry re-runs operations that fail with transient errors.
//
// A Retrier pairs a Classifier, which decides whether an error is worth
// another attempt, with a Strategy, which decides how long to wait. The
// result store wraps its transactions in a Retrier so that a dropped
// connection or a serialization failure does not lose a batch run.
//
//	r := retry.New(retry.NewStoreClassifier(), retry.NewBackoff(3))
//	err := r.Do(ctx, func(ctx context.Context) error {
//	    return saveRun(ctx)
//	})
package retry
