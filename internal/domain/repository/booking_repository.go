package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lavauto/lavauto-server/internal/domain/model"
)

// NewCar carries the fields for a car created inline with a booking.
type NewCar struct {
	Make       string
	Model      string
	Plate      string
	CarType    string
	IsElectric bool
}

// ReservationParams is the input of the booking transaction. Exactly
// one of CarID / NewCar must be set.
type ReservationParams struct {
	Customer      *model.User
	ServiceType   model.ServiceType
	ScheduledDate time.Time
	Address       string
	Phone         string
	Notes         *string
	CarID         *uuid.UUID
	NewCar        *NewCar
}

type BookingRepository interface {
	// CountActiveAt counts bookings at the exact timestamp whose status
	// is not terminal.
	CountActiveAt(ctx context.Context, at time.Time) (int64, error)

	// CreateReservation runs the whole booking transaction under
	// serializable isolation: slot re-count, service upsert, car
	// resolution, phone refresh, booking insert. Returns
	// errors.ErrSlotFull or errors.ErrInvalidCar on the distinguished
	// abort paths.
	CreateReservation(ctx context.Context, params ReservationParams) (*model.Booking, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)

	// GetByIDWithService preloads the service row, needed for mission
	// window computation.
	GetByIDWithService(ctx context.Context, id uuid.UUID) (*model.Booking, error)

	// ListByCustomer returns the customer's bookings newest first with
	// service, car and assignment (incl. washer) preloaded.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Booking, error)

	// ListPending returns PENDING bookings soonest first with service,
	// car and customer preloaded (the available-missions feed).
	ListPending(ctx context.Context) ([]model.Booking, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error

	// DeleteIfPending removes the booking only while it is still
	// PENDING; any other state is a no-op.
	DeleteIfPending(ctx context.Context, id uuid.UUID) error

	// CountNonCancelledByCar counts bookings of a car whose status is
	// not CANCELLED (the car-deletion guard).
	CountNonCancelledByCar(ctx context.Context, carID uuid.UUID) (int64, error)
}
