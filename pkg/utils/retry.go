package utils

import (
	"context"
	"time"
)

// Retry runs op up to attempts times, sleeping between failures with an
// exponential backoff that doubles from delay. The first success wins; after
// the last failure the last error is returned.
func Retry[T any](ctx context.Context, attempts int, delay time.Duration, op func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		backoff := delay * (1 << i)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, lastErr
}
