// Package clock provides helpers for waiting and retry pacing.
package clock

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewBackOff returns an exponential backoff bound to ctx. A zero maxRetries
// retries until the context is canceled.
func NewBackOff(ctx context.Context, initial, maxInterval time.Duration, maxRetries uint64) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = initial
	exp.MaxInterval = maxInterval
	exp.MaxElapsedTime = 0
	exp.Reset()

	var b backoff.BackOff = exp
	if maxRetries > 0 {
		b = backoff.WithMaxRetries(b, maxRetries)
	}
	return backoff.WithContext(b, ctx)
}
