// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Plant model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business logic, only persistence and query composition.
//
// Error semantics:
//   - When a plant is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreatePlant inserts p, assigning a UUID when p.ID is empty.
func CreatePlant(ctx context.Context, db *gorm.DB, p *domain.Plant) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	return db.WithContext(ctx).Create(p).Error
}

// GetPlant fetches a plant by ID, or ErrNotFound.
func GetPlant(ctx context.Context, db *gorm.DB, id string) (*domain.Plant, error) {
	var p domain.Plant
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPlants returns every plant ordered by name.
func ListPlants(ctx context.Context, db *gorm.DB) ([]domain.Plant, error) {
	var out []domain.Plant
	err := db.WithContext(ctx).Order("name ASC, id ASC").Find(&out).Error
	return out, err
}

// SearchPlantsByCategory matches category case-insensitively as a substring.
func SearchPlantsByCategory(ctx context.Context, db *gorm.DB, q string) ([]domain.Plant, error) {
	var out []domain.Plant
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	err := db.WithContext(ctx).
		Where("LOWER(category) LIKE ? ESCAPE '\\'", pattern).
		Order("name ASC, id ASC").
		Find(&out).Error
	return out, err
}

// PlantsByID loads the plants with the given ids, keyed by id. Missing ids are
// simply absent from the map.
func PlantsByID(ctx context.Context, db *gorm.DB, ids []string) (map[string]domain.Plant, error) {
	out := make(map[string]domain.Plant, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Plant
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

// UpdatePlant applies the column/value pairs in fields to plant id.
// Returns ErrNotFound when no row matched.
func UpdatePlant(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	fields["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).Model(&domain.Plant{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePlants removes the plants with the given ids and reports how many
// rows were deleted. Sessions and history referencing them are kept.
func DeletePlants(ctx context.Context, db *gorm.DB, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Plant{})
	return res.RowsAffected, res.Error
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
