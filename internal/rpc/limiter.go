package rpc

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket with burst 1 shared by every call of one client.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter allows rps calls per second.
func NewLimiter(rps float64) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Wait blocks until a token is available or ctx is done and returns the time spent waiting.
// The reservation is cancelled on ctx so the token goes back to the bucket.
func (l *Limiter) Wait(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r := l.limiter.Reserve()
	if !r.OK() {
		return 0, errors.New("rate: cannot reserve token")
	}
	delay := r.Delay()
	if delay <= 0 {
		return 0, nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return delay, nil
	case <-ctx.Done():
		r.Cancel()
		return 0, ctx.Err()
	}
}
