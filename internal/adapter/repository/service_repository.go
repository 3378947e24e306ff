package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

type serviceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewServiceRepository creates a new service catalog repository
func NewServiceRepository(db *gorm.DB, logger *zap.Logger) repository.ServiceRepository {
	return &serviceRepository{db: db, logger: logger}
}

func (r *serviceRepository) UpsertByType(ctx context.Context, t model.ServiceType) (*model.Service, error) {
	svc, err := upsertServiceTx(r.db.WithContext(ctx), t)
	if err != nil {
		r.logger.Error("Failed to upsert service",
			zap.String("type", string(t)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to upsert service: %w", err)
	}
	return svc, nil
}

func (r *serviceRepository) GetByType(ctx context.Context, t model.ServiceType) (*model.Service, error) {
	var svc model.Service
	err := r.db.WithContext(ctx).Where("type = ?", t).First(&svc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

// upsertServiceTx is the insert-if-absent on the type's unique index.
// ON CONFLICT DO NOTHING closes the duplicate-row window of a
// read-then-write sequence under concurrent first-time bookings.
func upsertServiceTx(tx *gorm.DB, t model.ServiceType) (*model.Service, error) {
	entry, ok := model.ServiceCatalog[t]
	if !ok {
		return nil, fmt.Errorf("unknown service type %q", t)
	}

	candidate := model.Service{
		Type:              t,
		Name:              entry.Name,
		Description:       entry.Description,
		BasePrice:         entry.BasePrice,
		EstimatedDuration: entry.EstimatedDuration,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}},
		DoNothing: true,
	}).Create(&candidate).Error; err != nil {
		return nil, err
	}

	// Re-read: on conflict the insert returns no row.
	var svc model.Service
	if err := tx.Where("type = ?", t).First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}
