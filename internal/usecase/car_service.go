package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lavauto/lavauto-server/internal/domain/authz"
	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

// CarService implements the ownership-checked car CRUD.
type CarService struct {
	cars     repository.CarRepository
	bookings repository.BookingRepository
	logger   *zap.Logger
}

// NewCarService creates a new car service
func NewCarService(cars repository.CarRepository, bookings repository.BookingRepository, logger *zap.Logger) *CarService {
	return &CarService{
		cars:     cars,
		bookings: bookings,
		logger:   logger,
	}
}

func (s *CarService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Car, error) {
	return s.cars.ListByOwner(ctx, ownerID)
}

func (s *CarService) Add(ctx context.Context, ownerID uuid.UUID, car *model.Car) error {
	car.UserID = ownerID
	return s.cars.Create(ctx, car)
}

// Delete removes a car unless a booking whose status is not CANCELLED
// still references it. Cancelled-only history does not block deletion.
func (s *CarService) Delete(ctx context.Context, sub authz.Subject, carID uuid.UUID) error {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return err
	}
	if !authz.Can(sub, authz.ActionDelete, car) {
		return domainErrors.ErrAccessDenied
	}

	count, err := s.bookings.CountNonCancelledByCar(ctx, carID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainErrors.ErrCarHasBookings
	}

	return s.cars.Delete(ctx, carID)
}
