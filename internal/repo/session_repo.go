// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// WateringSession model.
//
// Ownership is enforced in the WHERE clause: lookups and mutations scoped to
// a user return ErrNotFound for sessions owned by someone else.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
)

// CreateSession inserts s, assigning a UUID when s.ID is empty. Timestamps
// are stamped in UTC when unset.
func CreateSession(ctx context.Context, db *gorm.DB, s *domain.WateringSession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}
	return db.WithContext(ctx).Create(s).Error
}

// GetSession fetches a session by ID owned by userID, or ErrNotFound.
func GetSession(ctx context.Context, db *gorm.DB, id, userID string) (*domain.WateringSession, error) {
	var s domain.WateringSession
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSessions returns every session owned by userID, newest first.
func ListSessions(ctx context.Context, db *gorm.DB, userID string) ([]domain.WateringSession, error) {
	var out []domain.WateringSession
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// SaveSession writes every column of s back to its row. The caller is
// expected to have loaded s through an ownership-checked lookup.
func SaveSession(ctx context.Context, db *gorm.DB, s *domain.WateringSession) error {
	return db.WithContext(ctx).Save(s).Error
}

// DeleteSession hard-deletes a session owned by userID. History rows that
// reference it are left untouched. Returns ErrNotFound when nothing matched.
func DeleteSession(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.WateringSession{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SessionsStartingAt returns active automatic sessions whose start time has
// the given hour and minute.
func SessionsStartingAt(ctx context.Context, db *gorm.DB, hour, minute int) ([]domain.WateringSession, error) {
	return dueSessions(ctx, db, "start", hour, minute)
}

// SessionsEndingAt returns active automatic sessions whose end time has the
// given hour and minute.
func SessionsEndingAt(ctx context.Context, db *gorm.DB, hour, minute int) ([]domain.WateringSession, error) {
	return dueSessions(ctx, db, "end", hour, minute)
}

func dueSessions(ctx context.Context, db *gorm.DB, boundary string, hour, minute int) ([]domain.WateringSession, error) {
	var out []domain.WateringSession
	err := db.WithContext(ctx).
		Where("active = ? AND kind = ?", true, domain.KindAutomatic).
		Where(boundary+"_hour = ? AND "+boundary+"_minute = ?", hour, minute).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// ActiveSessionIDs returns the ids of every active session across all users.
func ActiveSessionIDs(ctx context.Context, db *gorm.DB) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&domain.WateringSession{}).
		Where("active = ?", true).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// StopSessions deactivates the given sessions and stamps their end time.
// Only rows still active are touched; the affected count is returned.
func StopSessions(ctx context.Context, db *gorm.DB, ids []string, end domain.TimeOfDay, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Model(&domain.WateringSession{}).
		Where("id IN ? AND active = ?", ids, true).
		Updates(map[string]any{
			"active":     false,
			"end_hour":   end.Hour,
			"end_minute": end.Minute,
			"end_second": end.Second,
			"updated_at": at,
		})
	return res.RowsAffected, res.Error
}
