package usecase

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/ratelimit"
)

// Pacer spaces out requests to the source site.
type Pacer interface {
	Wait(ctx context.Context) error
}

type intervalPacer struct {
	limiter ratelimit.Limiter
	jitter  time.Duration
	randN   func(n int64) int64
	started bool
}

// NewPacer admits one call per interval plus a uniform random delay in [0, jitter]. The first
// call is never delayed.
func NewPacer(interval, jitter time.Duration) Pacer {
	if interval <= 0 {
		return noPacer{}
	}
	return &intervalPacer{
		limiter: ratelimit.New(1, ratelimit.Per(interval), ratelimit.WithoutSlack),
		jitter:  jitter,
		randN:   rand.Int64N,
	}
}

func (p *intervalPacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.take(ctx); err != nil {
		return err
	}
	if !p.started {
		p.started = true
		return ctx.Err()
	}
	if p.jitter <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(time.Duration(p.randN(int64(p.jitter) + 1)))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// take waits for the limiter's next slot. ratelimit blocks without a context, so the wait runs
// aside and a cancelled scan returns at once; the abandoned slot is consumed when it comes due.
func (p *intervalPacer) take(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.limiter.Take()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

type noPacer struct{}

func (noPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}
