package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces outbound requests to a single source by a fixed interval.
// It has no burst allowance: every Wait after the first is delayed until
// the interval has elapsed since the previous slot.
type Limiter struct {
	interval time.Duration
	lim      *rate.Limiter
}

// New returns a limiter issuing one slot per interval.
// A non-positive interval disables spacing.
func New(interval time.Duration) *Limiter {
	l := &Limiter{interval: interval}
	if interval > 0 {
		l.lim = rate.NewLimiter(rate.Every(interval), 1)
	}
	return l
}

// FromMillis is New with the interval expressed in milliseconds, as configured.
func FromMillis(ms int) *Limiter {
	return New(time.Duration(ms) * time.Millisecond)
}

// Wait blocks until the next slot is available. It only fails when ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.lim == nil {
		return ctx.Err()
	}
	return l.lim.Wait(ctx)
}

// Interval returns the configured spacing.
func (l *Limiter) Interval() time.Duration {
	if l == nil {
		return 0
	}
	return l.interval
}
