package usecase

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer schedules upstream requests within a calendar build.
// Wait is called before each request with the number already issued in
// the build, and returns early with ctx.Err() on cancellation.
type Pacer interface {
	Wait(ctx context.Context, issued int) error
}

// RatePacer spaces requests with a token bucket and adds a longer pause
// every PauseEvery requests. One RatePacer is shared by all builds of the
// same kind, so the interval holds across clients.
type RatePacer struct {
	limiter    *rate.Limiter
	pauseEvery int
	pause      time.Duration
}

// NewRatePacer creates a pacer allowing one request per interval.
// A zero interval disables spacing; a zero pauseEvery disables pauses.
func NewRatePacer(interval time.Duration, pauseEvery int, pause time.Duration) *RatePacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &RatePacer{
		limiter:    rate.NewLimiter(limit, 1),
		pauseEvery: pauseEvery,
		pause:      pause,
	}
}

// Wait implements Pacer.
func (p *RatePacer) Wait(ctx context.Context, issued int) error {
	if p.pauseEvery > 0 && p.pause > 0 && issued > 0 && issued%p.pauseEvery == 0 {
		timer := time.NewTimer(p.pause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return p.limiter.Wait(ctx)
}

// NoopPacer never waits.
type NoopPacer struct{}

// Wait implements Pacer.
func (NoopPacer) Wait(ctx context.Context, _ int) error {
	return ctx.Err()
}

var (
	_ Pacer = (*RatePacer)(nil)
	_ Pacer = NoopPacer{}
)
