package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/repo"
)

// ErrInactive is returned for disabled accounts.
var ErrInactive = errors.New("auth: user inactive")

// Identity is the resolved caller of a request.
type Identity struct {
	UserID string
	Role   string
}

// Resolver turns a claimed user id and role into an Identity, applying the
// locally stored account state.
type Resolver interface {
	Resolve(ctx context.Context, userID, claimedRole string) (*Identity, error)
}

// DBResolver resolves identities against the users table. Unknown users keep
// their claimed role; known users get their stored role and must be active.
type DBResolver struct {
	DB *gorm.DB
}

// Resolve implements Resolver.
func (r DBResolver) Resolve(ctx context.Context, userID, claimedRole string) (*Identity, error) {
	id := &Identity{UserID: userID, Role: claimedRole}
	if r.DB == nil {
		return id, nil
	}
	u, err := repo.GetUser(ctx, r.DB, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return id, nil
	}
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, ErrInactive
	}
	if role, ok := NormalizeRole(u.Role); ok {
		id.Role = role
	}
	return id, nil
}

// EnsureAdmin creates or refreshes an active super-admin account.
func EnsureAdmin(ctx context.Context, db *gorm.DB, id, firstName, lastName string) (*domain.User, error) {
	u := &domain.User{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Role:      domain.RoleAdmin,
		Active:    true,
	}
	if err := repo.UpsertUser(ctx, db, u); err != nil {
		return nil, err
	}
	return u, nil
}
