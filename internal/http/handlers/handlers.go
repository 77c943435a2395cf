package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-irrigation-backend/internal/actuator"
	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/http/middleware"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// PlantService manages the plant registry.
type PlantService interface {
	Create(ctx context.Context, in services.PlantInput) (*domain.Plant, error)
	Get(ctx context.Context, id string) (*domain.Plant, error)
	List(ctx context.Context) ([]domain.Plant, error)
	SearchByCategory(ctx context.Context, q string) ([]domain.Plant, error)
	Update(ctx context.Context, id string, in services.PlantInput) (*domain.Plant, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// SessionService manages a user's watering sessions.
type SessionService interface {
	Create(ctx context.Context, userID string, in services.SessionInput) (*domain.WateringSession, *domain.HistoryEntry, error)
	Get(ctx context.Context, userID, id string) (*domain.WateringSession, error)
	List(ctx context.Context, userID string) ([]domain.WateringSession, error)
	Update(ctx context.Context, userID, id string, patch services.SessionPatch) (*domain.WateringSession, *domain.HistoryEntry, error)
	Toggle(ctx context.Context, userID, id string) (*domain.WateringSession, error)
	Delete(ctx context.Context, userID, id string) error
}

// TriggerService drives manual watering and the emergency stop.
type TriggerService interface {
	TriggerPlant(ctx context.Context, userID, plantID string, volume *float64) (*services.Triggered, error)
	TriggerAll(ctx context.Context, userID string) ([]services.Triggered, error)
	EmergencyStop(ctx context.Context) (*services.StopResult, error)
}

// SchedulePreviewer reports what the scheduler would do this minute.
type SchedulePreviewer interface {
	Preview(ctx context.Context) (*services.TickReport, error)
}

// HistoryService reads and deletes history entries.
type HistoryService interface {
	List(ctx context.Context, q services.HistoryQuery) (*services.HistoryPage, error)
	All(ctx context.Context, userID, plantID string, from, to *time.Time) ([]domain.HistoryEntry, error)
	Delete(ctx context.Context, userID, id string) error
}

// StatsService aggregates history.
type StatsService interface {
	Monthly(ctx context.Context, userID string, from, to *time.Time) ([]services.MonthlyStat, error)
	Period(ctx context.Context, userID, period string) (*services.PeriodStats, error)
}

// SensorReader returns the latest device sample.
type SensorReader interface {
	ReadSensors(ctx context.Context) (*actuator.SensorReading, error)
}

// IdempotencyStore persists the outcome of keyed manual triggers.
type IdempotencyStore interface {
	Find(ctx context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error)
	Save(ctx context.Context, userID, scope, key, resourceID string, status int) error
}

// Versioner feeds weak ETags for list endpoints. Errors disable the ETag.
type Versioner interface {
	PlantsVersion(ctx context.Context) (count int64, last *time.Time, err error)
	SessionsVersion(ctx context.Context, userID string) (count int64, last *time.Time, err error)
}

//
// Handler wiring
//

// Deps lists the collaborators of Handlers. Idem, Versions and Sensors are
// optional.
type Deps struct {
	Plants    PlantService
	Sessions  SessionService
	Triggers  TriggerService
	Scheduler SchedulePreviewer
	History   HistoryService
	Stats     StatsService
	Sensors   SensorReader
	Idem      IdempotencyStore
	Versions  Versioner
	// Loc interprets date-only query parameters and export timestamps.
	Loc *time.Location
	Now func() time.Time
}

// Handlers groups the HTTP endpoints of the irrigation API.
type Handlers struct {
	d Deps
}

// New constructs Handlers bound to d.
func New(d Deps) *Handlers {
	if d.Loc == nil {
		d.Loc = time.Local
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Handlers{d: d}
}

// userID returns the identity set by middleware.Authenticate.
func userID(c *gin.Context) string {
	if s := c.GetString(middleware.CtxUserID); s != "" {
		return s
	}
	return middleware.DemoUserID
}

// bindJSON decodes the body or answers 400. A wrongly typed time component
// is a validation error like any other out-of-range time value.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && isTimeField(typeErr.Field) {
			failWith(c, http.StatusBadRequest, ErrCodeValidation, "time components must be integers", err.Error())
			return false
		}
		failWith(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", err.Error())
		return false
	}
	return true
}

func isTimeField(field string) bool {
	return strings.HasPrefix(field, "heureDebut") || strings.HasPrefix(field, "heureFin")
}

// notModified sets a weak ETag and reports whether the client copy is fresh.
func notModified(c *gin.Context, kind, scope string, count int64, last *time.Time) bool {
	var ts int64
	if last != nil {
		ts = last.UnixNano()
	}
	etag := fmt.Sprintf(`W/"%s:%s:%d:%d"`, kind, scope, count, ts)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}
