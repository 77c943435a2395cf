// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the watering
// history ledger.
//
// History rows are append-only snapshots. The only mutations are the
// emergency-stop mirror (StopHistory) and explicit deletion.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
)

// HistoryFilter narrows history queries. Empty fields are ignored; From and
// To are inclusive bounds on RecordedAt and are compared in UTC.
type HistoryFilter struct {
	UserID  string
	PlantID string
	From    *time.Time
	To      *time.Time
}

func (f HistoryFilter) apply(q *gorm.DB) *gorm.DB {
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.PlantID != "" {
		q = q.Where("plant_id = ?", f.PlantID)
	}
	if f.From != nil {
		q = q.Where("recorded_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("recorded_at <= ?", f.To.UTC())
	}
	return q
}

// CreateHistory inserts h, assigning a UUID when h.ID is empty.
func CreateHistory(ctx context.Context, db *gorm.DB, h *domain.HistoryEntry) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.RecordedAt.IsZero() {
		h.RecordedAt = time.Now()
	}
	h.RecordedAt = h.RecordedAt.UTC()
	return db.WithContext(ctx).Create(h).Error
}

// CountHistory returns the number of entries matching f.
func CountHistory(ctx context.Context, db *gorm.DB, f HistoryFilter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.HistoryEntry{})).Count(&total).Error
	return total, err
}

// ListHistoryPage returns a page of entries matching f, newest first.
// The caller is responsible for computing offset and limit.
func ListHistoryPage(ctx context.Context, db *gorm.DB, f HistoryFilter, offset, limit int) ([]domain.HistoryEntry, error) {
	var out []domain.HistoryEntry
	err := f.apply(db.WithContext(ctx)).
		Order("recorded_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListHistory returns every entry matching f, oldest first.
func ListHistory(ctx context.Context, db *gorm.DB, f HistoryFilter) ([]domain.HistoryEntry, error) {
	var out []domain.HistoryEntry
	err := f.apply(db.WithContext(ctx)).
		Order("recorded_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// GetHistory fetches an entry by ID regardless of owner, or ErrNotFound.
func GetHistory(ctx context.Context, db *gorm.DB, id string) (*domain.HistoryEntry, error) {
	var h domain.HistoryEntry
	if err := db.WithContext(ctx).Where("id = ?", id).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// DeleteHistory removes one entry owned by userID. Returns ErrNotFound when
// nothing matched.
func DeleteHistory(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.HistoryEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// StopHistory mirrors an emergency stop onto the still-active history
// entries of the given sessions.
func StopHistory(ctx context.Context, db *gorm.DB, sessionIDs []string, end domain.TimeOfDay) (int64, error) {
	if len(sessionIDs) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Model(&domain.HistoryEntry{}).
		Where("session_id IN ? AND active = ?", sessionIDs, true).
		Updates(map[string]any{
			"active":     false,
			"end_hour":   end.Hour,
			"end_minute": end.Minute,
			"end_second": end.Second,
		})
	return res.RowsAffected, res.Error
}
