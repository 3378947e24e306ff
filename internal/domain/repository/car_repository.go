package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lavauto/lavauto-server/internal/domain/model"
)

type CarRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Car, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Car, error)
	Create(ctx context.Context, car *model.Car) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceRepository interface {
	// UpsertByType inserts the catalog row for the type if absent and
	// returns the current row. Keyed on the type's unique index so
	// concurrent first bookings cannot create duplicates.
	UpsertByType(ctx context.Context, t model.ServiceType) (*model.Service, error)

	GetByType(ctx context.Context, t model.ServiceType) (*model.Service, error)
}
