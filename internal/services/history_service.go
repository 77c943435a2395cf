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

// MaxHistoryLimit caps the page size of history listings.
const MaxHistoryLimit = 100

// HistoryQuery selects a page of a user's history.
type HistoryQuery struct {
	UserID  string
	PlantID string
	Page    int
	Limit   int
	From    *time.Time
	To      *time.Time
}

// HistoryPage is one page of history entries, newest first.
type HistoryPage struct {
	Items      []domain.HistoryEntry `json:"historique"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"totalPages"`
}

// HistoryService reads and deletes history entries.
type HistoryService struct {
	DB *gorm.DB
}

func (q HistoryQuery) filter() repo.HistoryFilter {
	return repo.HistoryFilter{UserID: q.UserID, PlantID: q.PlantID, From: q.From, To: q.To}
}

func validateRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return invalid("dateDebut must not be after dateFin")
	}
	return nil
}

// List returns a page of history for q.UserID. Asking for a page past the
// last one yields ErrPageNotFound; an empty first page is a valid result.
func (s *HistoryService) List(ctx context.Context, q HistoryQuery) (*HistoryPage, error) {
	ctx, span := otel.Tracer("services/HistoryService").Start(ctx, "List",
		trace.WithAttributes(
			attribute.String("user.id", q.UserID),
			attribute.Int("page", q.Page),
			attribute.Int("limit", q.Limit),
		))
	defer span.End()

	if q.Page < 1 || q.Limit < 1 {
		return nil, invalid("page and limit must be positive integers")
	}
	if q.Limit > MaxHistoryLimit {
		q.Limit = MaxHistoryLimit
	}
	if q.PlantID != "" {
		if _, err := loadPlant(ctx, s.DB, q.PlantID); err != nil {
			return nil, err
		}
	}
	if err := validateRange(q.From, q.To); err != nil {
		return nil, err
	}

	f := q.filter()
	total, err := repo.CountHistory(ctx, s.DB, f)
	if err != nil {
		return nil, persistence(err)
	}
	offset := (q.Page - 1) * q.Limit
	if q.Page > 1 && int64(offset) >= total {
		return nil, ErrPageNotFound
	}
	items, err := repo.ListHistoryPage(ctx, s.DB, f, offset, q.Limit)
	if err != nil {
		return nil, persistence(err)
	}
	if err := attachHistoryPlants(ctx, s.DB, items); err != nil {
		return nil, err
	}

	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &HistoryPage{Items: items, Total: total, Page: q.Page, Limit: q.Limit, TotalPages: pages}, nil
}

// All returns every entry matching the filter, oldest first. Used by exports.
func (s *HistoryService) All(ctx context.Context, userID, plantID string, from, to *time.Time) ([]domain.HistoryEntry, error) {
	ctx, span := otel.Tracer("services/HistoryService").Start(ctx, "All",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	items, err := repo.ListHistory(ctx, s.DB, repo.HistoryFilter{UserID: userID, PlantID: plantID, From: from, To: to})
	if err != nil {
		return nil, persistence(err)
	}
	if err := attachHistoryPlants(ctx, s.DB, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes one entry owned by userID. The existence check, ownership
// check and delete run in one transaction.
func (s *HistoryService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := otel.Tracer("services/HistoryService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("history.id", id), attribute.String("user.id", userID)))
	defer span.End()

	if err := checkID(id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		h, err := repo.GetHistory(ctx, tx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrHistoryNotFound
		}
		if err != nil {
			return persistence(err)
		}
		if h.UserID != userID {
			return ErrHistoryNotFound
		}
		if err := repo.DeleteHistory(ctx, tx, id, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrHistoryNotFound
			}
			return persistence(err)
		}
		return nil
	})
}

func attachHistoryPlants(ctx context.Context, db *gorm.DB, items []domain.HistoryEntry) error {
	seen := map[string]struct{}{}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.PlantID]; !ok {
			seen[it.PlantID] = struct{}{}
			ids = append(ids, it.PlantID)
		}
	}
	plants, err := repo.PlantsByID(ctx, db, ids)
	if err != nil {
		return persistence(err)
	}
	for i := range items {
		if p, ok := plants[items[i].PlantID]; ok {
			items[i].PlantName, items[i].PlantCategory = p.Name, p.Category
		}
	}
	return nil
}
