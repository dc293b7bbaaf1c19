// Package pace provides the politeness delay used between successive
// external calls. It exists as an interface so tests can run at full speed.
package pace

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks until the next external call is allowed to proceed.
type Pacer interface {
	Wait(ctx context.Context) error
}

type limiterPacer struct {
	limiter *rate.Limiter
}

// Fixed returns a Pacer that allows one call per interval. The first call
// passes immediately; subsequent calls block for the remainder of the
// interval. A non-positive interval behaves like None.
func Fixed(interval time.Duration) Pacer {
	if interval <= 0 {
		return None()
	}
	return &limiterPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *limiterPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

type noopPacer struct{}

// None returns a Pacer that never blocks, for tests and dry runs.
func None() Pacer {
	return noopPacer{}
}

func (noopPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}
