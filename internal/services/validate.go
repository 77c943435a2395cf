package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/repo"
)

// ParamsInput carries the thresholds of an automatic session. Nil fields are
// "not supplied".
type ParamsInput struct {
	RequiredSoilHumidity *float64
	RequiredLight        *float64
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

func persistence(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

// checkID rejects identifiers that are not UUIDs.
func checkID(id string) error {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// validateWindow enforces component ranges and end > start.
func validateWindow(start, end domain.TimeOfDay) error {
	if !start.Valid() {
		return invalid("heureDebut %v out of range", start)
	}
	if !end.Valid() {
		return invalid("heureFin %v out of range", end)
	}
	if end.Seconds() <= start.Seconds() {
		return invalid("heureFin (%s) must be after heureDebut (%s)", end, start)
	}
	return nil
}

func validateVolume(v float64) error {
	if v <= 0 {
		return invalid("volumeEau must be > 0")
	}
	return nil
}

func validateMaxVolume(v float64, p *domain.Plant) error {
	if v > p.MaxWaterVolume {
		return invalid("volumeEau %.2f exceeds plant maximum %.2f", v, p.MaxWaterVolume)
	}
	return nil
}

// resolveParams merges supplied thresholds over current ones and checks them
// against the plant. volume is the canonical session volume.
func resolveParams(in *ParamsInput, current *domain.WateringParams, p *domain.Plant, volume float64) (*domain.WateringParams, error) {
	out := domain.WateringParams{}
	if current != nil {
		out = *current
	}
	hasHumidity, hasLight := current != nil, current != nil
	if in != nil {
		if in.RequiredSoilHumidity != nil {
			out.RequiredSoilHumidity, hasHumidity = *in.RequiredSoilHumidity, true
		}
		if in.RequiredLight != nil {
			out.RequiredLight, hasLight = *in.RequiredLight, true
		}
	}
	if !hasHumidity || !hasLight {
		return nil, invalid("automatic sessions require humiditeSolRequise and luminositeRequise")
	}
	if out.RequiredSoilHumidity < 0 || out.RequiredSoilHumidity > 100 {
		return nil, invalid("humiditeSolRequise must be within 0-100")
	}
	if out.RequiredLight < 0 {
		return nil, invalid("luminositeRequise must be >= 0")
	}
	if out.RequiredSoilHumidity < p.RequiredSoilHumidity {
		return nil, invalid("humiditeSolRequise %.2f is below plant threshold %.2f", out.RequiredSoilHumidity, p.RequiredSoilHumidity)
	}
	if err := validateMaxVolume(volume, p); err != nil {
		return nil, err
	}
	out.Volume = volume
	return &out, nil
}

// loadPlant maps a missing plant to ErrPlantNotFound.
func loadPlant(ctx context.Context, db *gorm.DB, id string) (*domain.Plant, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	p, err := repo.GetPlant(ctx, db, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPlantNotFound
	}
	if err != nil {
		return nil, persistence(err)
	}
	return p, nil
}

// manualWindow returns [now, now+d] as times of day in loc. The end is
// clamped to 23:59:59 when the window would cross midnight, and the start
// moves back so that the end stays strictly after it.
func manualWindow(now time.Time, loc *time.Location, d time.Duration) (domain.TimeOfDay, domain.TimeOfDay) {
	if loc != nil {
		now = now.In(loc)
	}
	start := domain.ClockOf(now)
	endAt := now.Add(d)
	end := domain.ClockOf(endAt)
	if endAt.YearDay() != now.YearDay() || endAt.Year() != now.Year() {
		end = domain.TimeOfDay{Hour: 23, Minute: 59, Second: 59}
	}
	if !start.Before(end) {
		if end.Seconds() > 0 {
			start = domain.ClockFromSeconds(end.Seconds() - 1)
		} else {
			end = domain.ClockFromSeconds(start.Seconds() + 1)
		}
	}
	return start, end
}

// clock bundles the time source and location shared by services.
type clock struct {
	Now func() time.Time
	Loc *time.Location
}

func (c clock) now() time.Time {
	t := time.Now()
	if c.Now != nil {
		t = c.Now()
	}
	if c.Loc != nil {
		t = t.In(c.Loc)
	}
	return t
}

func (c clock) location() *time.Location {
	if c.Loc != nil {
		return c.Loc
	}
	return time.Local
}
