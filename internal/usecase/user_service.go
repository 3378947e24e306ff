package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

// UserService resolves authenticated identities to local users and
// handles profile edits.
type UserService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Resolve maps a Supabase identity to its local user record.
func (s *UserService) Resolve(ctx context.Context, supabaseUserID string) (*model.User, error) {
	return s.users.GetBySupabaseID(ctx, supabaseUserID)
}

// UpdateContact patches the caller's name and phone.
func (s *UserService) UpdateContact(ctx context.Context, userID uuid.UUID, update repository.ContactUpdate) (*model.User, error) {
	return s.users.UpdateContact(ctx, userID, update)
}
