// Package services – SessionService
//
// SessionService owns the lifecycle of watering sessions: creation with plant
// and window validation, partial edits, activation toggling, deletion and
// ownership-scoped reads. Every create or edit appends a history snapshot in
// the same transaction as the session write.
//
// Observability: all public methods are OpenTelemetry-instrumented with the
// session, plant and user identifiers.
package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/repo"
)

// SessionInput is the payload of a session creation.
type SessionInput struct {
	PlantID string
	Kind    domain.Kind
	Start   domain.TimeOfDay
	End     domain.TimeOfDay
	Volume  float64
	Params  *ParamsInput
}

// SessionPatch is a partial edit. Nil fields are left unchanged.
type SessionPatch struct {
	Start  *domain.TimeOfDay
	End    *domain.TimeOfDay
	Volume *float64
	Active *bool
	Params *ParamsInput
}

// SessionService manages watering sessions.
type SessionService struct {
	DB  *gorm.DB
	Now func() time.Time
	Loc *time.Location
}

func (s *SessionService) clock() clock { return clock{Now: s.Now, Loc: s.Loc} }

// Create validates in against the referenced plant, stores the session as
// active, and records the initial history snapshot. The actuator is not
// contacted; automatic sessions are started by the scheduler.
func (s *SessionService) Create(ctx context.Context, userID string, in SessionInput) (*domain.WateringSession, *domain.HistoryEntry, error) {
	ctx, span := otel.Tracer("services/SessionService").Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("plant.id", in.PlantID),
			attribute.String("session.kind", string(in.Kind)),
		))
	defer span.End()

	if !in.Kind.Valid() {
		return nil, nil, invalid("type must be %q or %q", domain.KindManual, domain.KindAutomatic)
	}
	if err := validateVolume(in.Volume); err != nil {
		return nil, nil, err
	}
	if err := validateWindow(in.Start, in.End); err != nil {
		return nil, nil, err
	}

	var sess *domain.WateringSession
	var hist *domain.HistoryEntry
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := loadPlant(ctx, tx, in.PlantID)
		if err != nil {
			return err
		}
		var params *domain.WateringParams
		if in.Kind == domain.KindAutomatic {
			if params, err = resolveParams(in.Params, nil, p, in.Volume); err != nil {
				return err
			}
		}
		now := s.clock().now()
		sess = &domain.WateringSession{
			PlantID:   p.ID,
			UserID:    userID,
			Kind:      in.Kind,
			Start:     in.Start,
			End:       in.End,
			Volume:    in.Volume,
			Params:    params,
			Active:    true,
			CreatedAt: now.UTC(),
			UpdatedAt: now.UTC(),
		}
		hist, err = recordSession(ctx, tx, sess, now)
		if err != nil {
			return err
		}
		sess.PlantName, sess.PlantCategory = p.Name, p.Category
		hist.PlantName, hist.PlantCategory = p.Name, p.Category
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sessionsCreated.WithLabelValues(string(sess.Kind)).Inc()
	return sess, hist, nil
}

// Get returns one session owned by userID.
func (s *SessionService) Get(ctx context.Context, userID, id string) (*domain.WateringSession, error) {
	ctx, span := otel.Tracer("services/SessionService").Start(ctx, "Get",
		trace.WithAttributes(attribute.String("session.id", id), attribute.String("user.id", userID)))
	defer span.End()

	sess, err := s.load(ctx, s.DB, userID, id)
	if err != nil {
		return nil, err
	}
	if err := attachSessionPlants(ctx, s.DB, []*domain.WateringSession{sess}); err != nil {
		return nil, err
	}
	return sess, nil
}

// List returns every session owned by userID, newest first.
func (s *SessionService) List(ctx context.Context, userID string) ([]domain.WateringSession, error) {
	ctx, span := otel.Tracer("services/SessionService").Start(ctx, "List",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	out, err := repo.ListSessions(ctx, s.DB, userID)
	if err != nil {
		return nil, persistence(err)
	}
	ptrs := make([]*domain.WateringSession, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	if err := attachSessionPlants(ctx, s.DB, ptrs); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies patch to the session, re-validates the merged state and
// appends a fresh history snapshot. A patch with no changes still records a
// snapshot identical to the current state.
func (s *SessionService) Update(ctx context.Context, userID, id string, patch SessionPatch) (*domain.WateringSession, *domain.HistoryEntry, error) {
	ctx, span := otel.Tracer("services/SessionService").Start(ctx, "Update",
		trace.WithAttributes(attribute.String("session.id", id), attribute.String("user.id", userID)))
	defer span.End()

	var sess *domain.WateringSession
	var hist *domain.HistoryEntry
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := s.load(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		p, err := loadPlant(ctx, tx, cur.PlantID)
		if err != nil {
			return err
		}

		if patch.Start != nil {
			cur.Start = *patch.Start
		}
		if patch.End != nil {
			cur.End = *patch.End
		}
		if patch.Active != nil {
			cur.Active = *patch.Active
		}
		volume := cur.EffectiveVolume()
		if patch.Volume != nil {
			volume = *patch.Volume
		}
		if err := validateVolume(volume); err != nil {
			return err
		}
		if err := validateWindow(cur.Start, cur.End); err != nil {
			return err
		}
		if err := validateMaxVolume(volume, p); err != nil {
			return err
		}
		cur.Volume = volume
		if cur.Kind == domain.KindAutomatic {
			if cur.Params, err = resolveParams(patch.Params, cur.Params, p, volume); err != nil {
				return err
			}
		} else {
			cur.Params = nil
		}

		now := s.clock().now()
		cur.UpdatedAt = now.UTC()
		if err := repo.SaveSession(ctx, tx, cur); err != nil {
			return persistence(err)
		}
		h := domain.SnapshotOf(cur, now.UTC())
		if err := repo.CreateHistory(ctx, tx, h); err != nil {
			return persistence(err)
		}
		cur.PlantName, cur.PlantCategory = p.Name, p.Category
		h.PlantName, h.PlantCategory = p.Name, p.Category
		sess, hist = cur, h
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return sess, hist, nil
}

// Toggle flips the active flag of a session. No history is written.
func (s *SessionService) Toggle(ctx context.Context, userID, id string) (*domain.WateringSession, error) {
	ctx, span := otel.Tracer("services/SessionService").Start(ctx, "Toggle",
		trace.WithAttributes(attribute.String("session.id", id), attribute.String("user.id", userID)))
	defer span.End()

	var sess *domain.WateringSession
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := s.load(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		cur.Active = !cur.Active
		cur.UpdatedAt = s.clock().now().UTC()
		if err := tx.Model(&domain.WateringSession{}).
			Where("id = ?", cur.ID).
			Updates(map[string]any{"active": cur.Active, "updated_at": cur.UpdatedAt}).Error; err != nil {
			return persistence(err)
		}
		sess = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Delete removes a session. Its history entries are retained.
func (s *SessionService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := otel.Tracer("services/SessionService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("session.id", id), attribute.String("user.id", userID)))
	defer span.End()

	if err := checkID(id); err != nil {
		return err
	}
	err := repo.DeleteSession(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return persistence(err)
	}
	return nil
}

func (s *SessionService) load(ctx context.Context, db *gorm.DB, userID, id string) (*domain.WateringSession, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	sess, err := repo.GetSession(ctx, db, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, persistence(err)
	}
	return sess, nil
}

// recordSession inserts sess and its first history snapshot using tx.
func recordSession(ctx context.Context, tx *gorm.DB, sess *domain.WateringSession, at time.Time) (*domain.HistoryEntry, error) {
	if err := repo.CreateSession(ctx, tx, sess); err != nil {
		return nil, persistence(err)
	}
	h := domain.SnapshotOf(sess, at.UTC())
	if err := repo.CreateHistory(ctx, tx, h); err != nil {
		return nil, persistence(err)
	}
	return h, nil
}

func attachSessionPlants(ctx context.Context, db *gorm.DB, items []*domain.WateringSession) error {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.PlantID)
	}
	plants, err := repo.PlantsByID(ctx, db, ids)
	if err != nil {
		return persistence(err)
	}
	for _, it := range items {
		if p, ok := plants[it.PlantID]; ok {
			it.PlantName, it.PlantCategory = p.Name, p.Category
		}
	}
	return nil
}
