// Package services – PlantService
//
// This file implements PlantService, which owns the plant registry: profile
// creation, lookups, category search, partial updates and (bulk) deletion.
// Plant thresholds are validated here because every session rule downstream
// depends on them.
package services

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/repo"
)

// PlantInput describes a plant profile to create or patch. Nil pointers are
// "not supplied"; Create requires all of them.
type PlantInput struct {
	Name                 *string
	Category             *string
	RequiredSoilHumidity *float64
	MaxWaterVolume       *float64
	RequiredLight        *float64
}

// PlantService manages plant profiles.
type PlantService struct {
	DB *gorm.DB
}

// Create validates in and stores a new plant.
func (s *PlantService) Create(ctx context.Context, in PlantInput) (*domain.Plant, error) {
	ctx, span := otel.Tracer("services/PlantService").Start(ctx, "Create")
	defer span.End()

	if in.Name == nil || in.Category == nil || in.RequiredSoilHumidity == nil ||
		in.MaxWaterVolume == nil || in.RequiredLight == nil {
		return nil, invalid("nom, categorie, humiditeSol, volumeEau and luminosite are required")
	}
	p := &domain.Plant{
		Name:                 normalizeLabel(*in.Name),
		Category:             normalizeLabel(*in.Category),
		RequiredSoilHumidity: *in.RequiredSoilHumidity,
		MaxWaterVolume:       *in.MaxWaterVolume,
		RequiredLight:        *in.RequiredLight,
	}
	if err := validatePlant(p); err != nil {
		return nil, err
	}
	if err := repo.CreatePlant(ctx, s.DB, p); err != nil {
		return nil, persistence(err)
	}
	return p, nil
}

// Get returns one plant by id.
func (s *PlantService) Get(ctx context.Context, id string) (*domain.Plant, error) {
	ctx, span := otel.Tracer("services/PlantService").Start(ctx, "Get",
		trace.WithAttributes(attribute.String("plant.id", id)))
	defer span.End()
	return loadPlant(ctx, s.DB, id)
}

// List returns every plant ordered by name.
func (s *PlantService) List(ctx context.Context) ([]domain.Plant, error) {
	ctx, span := otel.Tracer("services/PlantService").Start(ctx, "List")
	defer span.End()

	out, err := repo.ListPlants(ctx, s.DB)
	if err != nil {
		return nil, persistence(err)
	}
	return out, nil
}

// SearchByCategory returns plants whose category contains q, ignoring case.
func (s *PlantService) SearchByCategory(ctx context.Context, q string) ([]domain.Plant, error) {
	ctx, span := otel.Tracer("services/PlantService").Start(ctx, "SearchByCategory",
		trace.WithAttributes(attribute.String("query", q)))
	defer span.End()

	q = normalizeLabel(q)
	if q == "" {
		return nil, invalid("categorie query must not be empty")
	}
	out, err := repo.SearchPlantsByCategory(ctx, s.DB, q)
	if err != nil {
		return nil, persistence(err)
	}
	return out, nil
}

// Update applies the supplied fields of in to plant id and returns the
// resulting profile. Existing sessions are not re-validated.
func (s *PlantService) Update(ctx context.Context, id string, in PlantInput) (*domain.Plant, error) {
	ctx, span := otel.Tracer("services/PlantService").Start(ctx, "Update",
		trace.WithAttributes(attribute.String("plant.id", id)))
	defer span.End()

	var out *domain.Plant
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := loadPlant(ctx, tx, id)
		if err != nil {
			return err
		}
		fields := map[string]any{}
		if in.Name != nil {
			p.Name = normalizeLabel(*in.Name)
			fields["name"] = p.Name
		}
		if in.Category != nil {
			p.Category = normalizeLabel(*in.Category)
			fields["category"] = p.Category
		}
		if in.RequiredSoilHumidity != nil {
			p.RequiredSoilHumidity = *in.RequiredSoilHumidity
			fields["required_soil_humidity"] = p.RequiredSoilHumidity
		}
		if in.MaxWaterVolume != nil {
			p.MaxWaterVolume = *in.MaxWaterVolume
			fields["max_water_volume"] = p.MaxWaterVolume
		}
		if in.RequiredLight != nil {
			p.RequiredLight = *in.RequiredLight
			fields["required_light"] = p.RequiredLight
		}
		if len(fields) == 0 {
			return invalid("no fields to update")
		}
		if err := validatePlant(p); err != nil {
			return err
		}
		if err := repo.UpdatePlant(ctx, tx, p.ID, fields); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrPlantNotFound
			}
			return persistence(err)
		}
		fresh, err := repo.GetPlant(ctx, tx, p.ID)
		if err != nil {
			return persistence(err)
		}
		out = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one plant. Sessions and history that reference it are kept.
func (s *PlantService) Delete(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("services/PlantService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("plant.id", id)))
	defer span.End()

	if err := checkID(id); err != nil {
		return err
	}
	n, err := repo.DeletePlants(ctx, s.DB, []string{id})
	if err != nil {
		return persistence(err)
	}
	if n == 0 {
		return ErrPlantNotFound
	}
	return nil
}

// DeleteMany removes every listed plant and reports how many were deleted.
// ErrPlantNotFound is returned when none of the ids matched.
func (s *PlantService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	ctx, span := otel.Tracer("services/PlantService").Start(ctx, "DeleteMany",
		trace.WithAttributes(attribute.Int("plant.count", len(ids))))
	defer span.End()

	if len(ids) == 0 {
		return 0, invalid("ids must not be empty")
	}
	for _, id := range ids {
		if err := checkID(id); err != nil {
			return 0, err
		}
	}
	n, err := repo.DeletePlants(ctx, s.DB, ids)
	if err != nil {
		return 0, persistence(err)
	}
	if n == 0 {
		return 0, ErrPlantNotFound
	}
	return n, nil
}

func validatePlant(p *domain.Plant) error {
	switch {
	case p.Name == "":
		return invalid("nom must not be empty")
	case p.Category == "":
		return invalid("categorie must not be empty")
	case p.RequiredSoilHumidity < 0 || p.RequiredSoilHumidity > 100:
		return invalid("humiditeSol must be within 0-100")
	case p.MaxWaterVolume <= 0:
		return invalid("volumeEau must be > 0")
	case p.RequiredLight <= 0:
		return invalid("luminosite must be > 0")
	}
	return nil
}

// normalizeLabel applies NFC, trims, and collapses inner whitespace.
func normalizeLabel(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
