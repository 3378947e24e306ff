package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

type userRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger *zap.Logger) repository.UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) GetBySupabaseID(ctx context.Context, supabaseUserID string) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("supabase_user_id = ?", supabaseUserID).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by supabase id",
			zap.String("supabase_user_id", supabaseUserID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Preload("Profile").
		First(&user, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by id",
			zap.String("user_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// CreateWithProfile creates the user and profile rows in one
// transaction. The duplicate pre-checks run inside the transaction so
// the conflict response can name the constraint that fired; the unique
// indexes remain the backstop for races.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if profile.Siret != nil {
			var count int64
			if err := tx.Model(&model.Profile{}).
				Where("siret = ?", *profile.Siret).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return domainErrors.NewDuplicateProfileError(domainErrors.ConstraintSiret)
			}
		}

		var count int64
		if err := tx.Model(&model.User{}).
			Where("supabase_user_id = ?", user.SupabaseUserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainErrors.NewDuplicateProfileError(domainErrors.ConstraintSupabaseUserID)
		}

		if err := tx.Model(&model.User{}).
			Where("email = ?", user.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainErrors.NewDuplicateProfileError(domainErrors.ConstraintEmail)
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})

	if err != nil {
		var dup *domainErrors.DuplicateProfileError
		if errors.As(err, &dup) {
			return err
		}
		r.logger.Error("Failed to create user with profile",
			zap.String("email", user.Email),
			zap.Error(err))
		return fmt.Errorf("failed to create profile: %w", err)
	}

	user.Profile = profile
	return nil
}

func (r *userRepository) UpdateContact(ctx context.Context, id uuid.UUID, update repository.ContactUpdate) (*model.User, error) {
	values := map[string]interface{}{}
	if update.FirstName != nil {
		values["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		values["last_name"] = *update.LastName
	}
	if update.Phone != nil {
		values["phone"] = *update.Phone
	}

	if len(values) > 0 {
		res := r.db.WithContext(ctx).
			Model(&model.User{}).
			Where("id = ?", id).
			Updates(values)
		if res.Error != nil {
			r.logger.Error("Failed to update user contact",
				zap.String("user_id", id.String()),
				zap.Error(res.Error))
			return nil, fmt.Errorf("failed to update user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domainErrors.ErrUserNotFound
		}
	}

	return r.GetByID(ctx, id)
}
