// Package services – TriggerService
//
// TriggerService starts watering outside the schedule: a single-plant manual
// session, a global fan-out across every plant, and the blanket emergency
// stop. Global operations call the actuator before touching local state so
// that no session is recorded for a watering that never happened.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/repo"
)

// Actuator is the pump side of the remote gateway used by the core.
type Actuator interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// DefaultManualWindow is the length of a manual watering window.
const DefaultManualWindow = 5 * time.Minute

// Triggered pairs a created manual session with its history snapshot.
type Triggered struct {
	Session *domain.WateringSession `json:"arrosage"`
	History *domain.HistoryEntry    `json:"historique"`
}

// StopResult reports what an emergency stop touched.
type StopResult struct {
	Sessions int64            `json:"arrosagesArretes"`
	History  int64            `json:"historiquesMisAJour"`
	End      domain.TimeOfDay `json:"heureFin"`
}

// TriggerService runs manual waterings.
type TriggerService struct {
	DB       *gorm.DB
	Actuator Actuator
	Now      func() time.Time
	Loc      *time.Location
	Window   time.Duration
}

func (s *TriggerService) clock() clock { return clock{Now: s.Now, Loc: s.Loc} }

func (s *TriggerService) window() time.Duration {
	if s.Window > 0 {
		return s.Window
	}
	return DefaultManualWindow
}

// TriggerPlant creates a manual session for plantID over [now, now+window].
// A nil volume defaults to the plant's maximum. The actuator is not called.
func (s *TriggerService) TriggerPlant(ctx context.Context, userID, plantID string, volume *float64) (*Triggered, error) {
	ctx, span := otel.Tracer("services/TriggerService").Start(ctx, "TriggerPlant",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("plant.id", plantID)))
	defer span.End()

	var out *Triggered
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := loadPlant(ctx, tx, plantID)
		if err != nil {
			return err
		}
		v := p.MaxWaterVolume
		if volume != nil {
			v = *volume
		}
		if err := validateVolume(v); err != nil {
			return err
		}
		if err := validateMaxVolume(v, p); err != nil {
			return err
		}
		out, err = s.createManual(ctx, tx, userID, p, v, s.clock().now())
		return err
	})
	if err != nil {
		return nil, err
	}
	sessionsCreated.WithLabelValues(string(domain.KindManual)).Inc()
	return out, nil
}

// TriggerAll starts the pump and then records one manual session per plant
// at the plant's maximum volume with a shared window. Plants are written one
// at a time; a failure mid-way keeps the plants already recorded.
func (s *TriggerService) TriggerAll(ctx context.Context, userID string) ([]Triggered, error) {
	ctx, span := otel.Tracer("services/TriggerService").Start(ctx, "TriggerAll",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	plants, err := repo.ListPlants(ctx, s.DB)
	if err != nil {
		return nil, persistence(err)
	}
	if len(plants) == 0 {
		return nil, ErrNoPlants
	}
	if err := s.Actuator.Start(ctx); err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrActuatorFailure, err)
	}

	now := s.clock().now()
	out := make([]Triggered, 0, len(plants))
	for i := range plants {
		p := &plants[i]
		var t *Triggered
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			t, err = s.createManual(ctx, tx, userID, p, p.MaxWaterVolume, now)
			return err
		})
		if err != nil {
			log.Ctx(ctx).Error().Err(err).
				Str("component", "trigger").
				Str("plant_id", p.ID).
				Int("recorded", len(out)).
				Msg("global trigger stopped mid fan-out")
			return out, err
		}
		sessionsCreated.WithLabelValues(string(domain.KindManual)).Inc()
		out = append(out, *t)
	}
	return out, nil
}

// EmergencyStop stops the pump and, only if that succeeded, deactivates every
// active session and its still-active history entries with end = now.
func (s *TriggerService) EmergencyStop(ctx context.Context) (*StopResult, error) {
	ctx, span := otel.Tracer("services/TriggerService").Start(ctx, "EmergencyStop")
	defer span.End()

	if err := s.Actuator.Stop(ctx); err != nil {
		return nil, fmt.Errorf("%w: stop: %v", ErrActuatorFailure, err)
	}

	now := s.clock().now()
	res := &StopResult{End: domain.ClockOf(now)}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := repo.ActiveSessionIDs(ctx, tx)
		if err != nil {
			return persistence(err)
		}
		if res.Sessions, err = repo.StopSessions(ctx, tx, ids, res.End, now.UTC()); err != nil {
			return persistence(err)
		}
		if res.History, err = repo.StopHistory(ctx, tx, ids, res.End); err != nil {
			return persistence(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("sessions.stopped", res.Sessions))
	return res, nil
}

func (s *TriggerService) createManual(ctx context.Context, tx *gorm.DB, userID string, p *domain.Plant, volume float64, now time.Time) (*Triggered, error) {
	start, end := manualWindow(now, s.clock().location(), s.window())
	sess := &domain.WateringSession{
		PlantID:   p.ID,
		UserID:    userID,
		Kind:      domain.KindManual,
		Start:     start,
		End:       end,
		Volume:    volume,
		Active:    true,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	h, err := recordSession(ctx, tx, sess, now)
	if err != nil {
		return nil, err
	}
	sess.PlantName, sess.PlantCategory = p.Name, p.Category
	h.PlantName, h.PlantCategory = p.Name, p.Category
	return &Triggered{Session: sess, History: h}, nil
}
