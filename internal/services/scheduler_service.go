// Package services – SchedulerService
//
// SchedulerService implements one scheduler tick: find the active automatic
// sessions whose start or end minute equals the current minute and issue at
// most one global start and one global stop. Matching is exact on hour and
// minute; a tick that misses the minute misses that day's trigger.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/repo"
)

// TickReport summarizes one tick.
type TickReport struct {
	At       domain.TimeOfDay         `json:"heure"`
	ToStart  []domain.WateringSession `json:"arrosagesADemarrer"`
	ToStop   []domain.WateringSession `json:"arrosagesAArreter"`
	Started  bool                     `json:"demarre"`
	Stopped  bool                     `json:"arrete"`
	Skipped  bool                     `json:"ignore,omitempty"`
	StartErr string                   `json:"erreurDemarrage,omitempty"`
	StopErr  string                   `json:"erreurArret,omitempty"`
}

// SchedulerService evaluates due sessions. Ticks are serialized; a second
// tick within an already processed minute is skipped.
type SchedulerService struct {
	DB       *gorm.DB
	Actuator Actuator
	Now      func() time.Time
	Loc      *time.Location

	mu      sync.Mutex
	lastRun time.Time
}

// Tick runs a tick for the current time.
func (s *SchedulerService) Tick(ctx context.Context) (*TickReport, error) {
	return s.TickAt(ctx, clock{Now: s.Now, Loc: s.Loc}.now())
}

// TickAt runs a tick as of now. Actuator failures are logged and reported
// but never returned; only storage errors are.
func (s *SchedulerService) TickAt(ctx context.Context, now time.Time) (*TickReport, error) {
	if s.Loc != nil {
		now = now.In(s.Loc)
	}
	at := domain.ClockOf(now)
	ctx, span := otel.Tracer("services/SchedulerService").Start(ctx, "Tick",
		trace.WithAttributes(attribute.Int("hour", at.Hour), attribute.Int("minute", at.Minute)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	minute := now.Truncate(time.Minute)
	if !s.lastRun.IsZero() && minute.Equal(s.lastRun) {
		return &TickReport{At: at, Skipped: true}, nil
	}

	rep, err := s.due(ctx, at)
	if err != nil {
		return nil, err
	}
	s.lastRun = minute

	logger := log.Ctx(ctx).With().
		Str("component", "scheduler").
		Int("hour", at.Hour).
		Int("minute", at.Minute).
		Logger()

	if len(rep.ToStart) > 0 {
		if err := s.Actuator.Start(ctx); err != nil {
			rep.StartErr = err.Error()
			logger.Error().Err(err).Int("sessions", len(rep.ToStart)).Msg("scheduled start failed")
		} else {
			rep.Started = true
			logger.Info().Int("sessions", len(rep.ToStart)).Msg("scheduled start")
		}
	}
	if len(rep.ToStop) > 0 {
		if err := s.Actuator.Stop(ctx); err != nil {
			rep.StopErr = err.Error()
			logger.Error().Err(err).Int("sessions", len(rep.ToStop)).Msg("scheduled stop failed")
		} else {
			rep.Stopped = true
			logger.Info().Int("sessions", len(rep.ToStop)).Msg("scheduled stop")
		}
	}

	schedulerTicks.Inc()
	schedulerMatched.WithLabelValues("start").Add(float64(len(rep.ToStart)))
	schedulerMatched.WithLabelValues("stop").Add(float64(len(rep.ToStop)))
	return rep, nil
}

// Preview lists what a tick at the current minute would start and stop,
// without calling the actuator.
func (s *SchedulerService) Preview(ctx context.Context) (*TickReport, error) {
	now := clock{Now: s.Now, Loc: s.Loc}.now()
	ctx, span := otel.Tracer("services/SchedulerService").Start(ctx, "Preview")
	defer span.End()
	return s.due(ctx, domain.ClockOf(now))
}

func (s *SchedulerService) due(ctx context.Context, at domain.TimeOfDay) (*TickReport, error) {
	toStart, err := repo.SessionsStartingAt(ctx, s.DB, at.Hour, at.Minute)
	if err != nil {
		return nil, persistence(err)
	}
	toStop, err := repo.SessionsEndingAt(ctx, s.DB, at.Hour, at.Minute)
	if err != nil {
		return nil, persistence(err)
	}
	return &TickReport{At: at, ToStart: toStart, ToStop: toStop}, nil
}
