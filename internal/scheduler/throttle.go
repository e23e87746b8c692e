package scheduler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle enforces a minimum pause between the end of one lookup and the
// start of the next to respect the upstream rate limit. The first Wait
// returns immediately.
type Throttle struct {
	interval time.Duration
	limiter  *rate.Limiter
}

// NewThrottle creates a gate; an interval <= 0 disables it.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Throttle{interval: interval, limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next lookup may start or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Done marks the end of a lookup; the next Wait blocks for a full interval from now.
func (t *Throttle) Done() {
	if t.interval <= 0 {
		return
	}
	t.limiter = rate.NewLimiter(rate.Every(t.interval), 1)
	t.limiter.Allow()
}
