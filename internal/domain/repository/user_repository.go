package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lavauto/lavauto-server/internal/domain/model"
)

// ContactUpdate carries the mutable profile fields a customer may edit.
type ContactUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

type UserRepository interface {
	// GetBySupabaseID resolves the local user for an authenticated
	// identity, with the profile preloaded. Returns
	// errors.ErrUserNotFound when no row exists.
	GetBySupabaseID(ctx context.Context, supabaseUserID string) (*model.User, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// CreateWithProfile creates the user and its profile in one
	// transaction. Returns *errors.DuplicateProfileError naming the
	// uniqueness constraint that fired on collision.
	CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error

	// UpdateContact patches name and phone fields; nil fields are left
	// untouched.
	UpdateContact(ctx context.Context, id uuid.UUID, update ContactUpdate) (*model.User, error)
}
