// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// Clock reports the current time. Tests swap it for a fixed source.
type Clock interface {
	Now() time.Time
}

// Real is the wall clock.
type Real struct{}

// Now returns time.Now.
func (Real) Now() time.Time { return time.Now() }

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff doubles base for every consecutive failure, up to limit.
func Backoff(base time.Duration, failures int, limit time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 16 {
		failures = 16
	}
	d := base << failures
	if d <= 0 || (limit > 0 && d > limit) {
		return limit
	}
	return d
}
