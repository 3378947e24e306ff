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

type carRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCarRepository creates a new car repository
func NewCarRepository(db *gorm.DB, logger *zap.Logger) repository.CarRepository {
	return &carRepository{db: db, logger: logger}
}

func (r *carRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	var car model.Car
	err := r.db.WithContext(ctx).First(&car, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}
	return &car, nil
}

func (r *carRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&cars).Error
	if err != nil {
		r.logger.Error("Failed to list cars",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	return cars, nil
}

func (r *carRepository) Create(ctx context.Context, car *model.Car) error {
	if err := r.db.WithContext(ctx).Create(car).Error; err != nil {
		r.logger.Error("Failed to create car",
			zap.String("owner_id", car.UserID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

func (r *carRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.Car{}, "id = ?", id).Error; err != nil {
		r.logger.Error("Failed to delete car",
			zap.String("car_id", id.String()),
			zap.Error(err))
		return fmt.Errorf("failed to delete car: %w", err)
	}
	return nil
}
