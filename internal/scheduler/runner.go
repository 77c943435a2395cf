// Package scheduler drives the periodic watering tick. The runner owns the
// timer only; what a tick does lives in services.SchedulerService, so the
// same tick can be run by an external cron through the CLI.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-irrigation-backend/internal/services"
)

// Ticker runs one scheduler tick.
type Ticker interface {
	Tick(ctx context.Context) (*services.TickReport, error)
}

// Housekeeper performs periodic maintenance alongside ticks, such as purging
// expired idempotency keys.
type Housekeeper func(ctx context.Context, now time.Time) (int64, error)

// maxAlignOffset is how far past a boundary a tick fires, so that a tick
// meant for minute mm never observes the clock still at mm-1.
const maxAlignOffset = time.Second

// Runner invokes Ticker on every Interval boundary of the wall clock until
// its context is cancelled. Ticks never overlap: the next one waits for the
// previous to return.
type Runner struct {
	Ticker   Ticker
	Interval time.Duration
	Cleanup  Housekeeper

	// now is replaceable in tests.
	now func() time.Time
}

// New returns a Runner with the given tick interval (one minute if <= 0).
func New(t Ticker, interval time.Duration, cleanup Housekeeper) *Runner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Runner{Ticker: t, Interval: interval, Cleanup: cleanup, now: time.Now}
}

// Run blocks until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	if r == nil || r.Ticker == nil {
		return
	}
	if r.now == nil {
		r.now = time.Now
	}
	logger := log.With().Str("component", "scheduler").Logger()
	logger.Info().Dur("interval", r.Interval).Msg("scheduler started")

	timer := time.NewTimer(r.untilNext(r.now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("scheduler stopped")
			return
		case <-timer.C:
			r.runOnce(ctx)
			timer.Reset(r.untilNext(r.now()))
		}
	}
}

// untilNext returns the wait from now to the next Interval boundary plus a
// small offset. Re-arming from the clock after every tick keeps a slow tick
// from shifting later ones across a minute.
func (r *Runner) untilNext(now time.Time) time.Duration {
	offset := r.Interval / 10
	if offset > maxAlignOffset {
		offset = maxAlignOffset
	}
	next := now.Truncate(r.Interval).Add(offset)
	if !next.After(now) {
		next = next.Add(r.Interval)
	}
	return next.Sub(now)
}

func (r *Runner) runOnce(ctx context.Context) {
	logger := log.With().Str("component", "scheduler").Logger()
	ctx = logger.WithContext(ctx)

	rep, err := r.Ticker.Tick(ctx)
	switch {
	case err != nil:
		logger.Error().Err(err).Msg("scheduler tick failed")
	case rep != nil && !rep.Skipped && (len(rep.ToStart) > 0 || len(rep.ToStop) > 0):
		logger.Debug().
			Int("to_start", len(rep.ToStart)).
			Int("to_stop", len(rep.ToStop)).
			Str("at", rep.At.String()).
			Msg("scheduler tick")
	}

	if r.Cleanup != nil {
		if n, err := r.Cleanup(ctx, r.now()); err != nil {
			logger.Warn().Err(err).Msg("housekeeping failed")
		} else if n > 0 {
			logger.Debug().Int64("purged", n).Msg("housekeeping")
		}
	}
}
