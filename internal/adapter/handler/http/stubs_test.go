package http

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

// stubBookingRepo lets handler tests script repository behavior with
// plain function fields.
type stubBookingRepo struct {
	countActiveAt func(at time.Time) (int64, error)
	getByID       func(id uuid.UUID) (*model.Booking, error)
	deleted       []uuid.UUID
	deleteErr     error
}

func (s *stubBookingRepo) CountActiveAt(ctx context.Context, at time.Time) (int64, error) {
	if s.countActiveAt != nil {
		return s.countActiveAt(at)
	}
	return 0, nil
}

func (s *stubBookingRepo) CreateReservation(ctx context.Context, params repository.ReservationParams) (*model.Booking, error) {
	return nil, domainErrors.ErrSlotFull
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	if s.getByID != nil {
		return s.getByID(id)
	}
	return nil, domainErrors.ErrBookingNotFound
}

func (s *stubBookingRepo) GetByIDWithService(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.GetByID(ctx, id)
}

func (s *stubBookingRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Booking, error) {
	return nil, nil
}

func (s *stubBookingRepo) ListPending(ctx context.Context) ([]model.Booking, error) {
	return nil, nil
}

func (s *stubBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	return nil
}

func (s *stubBookingRepo) DeleteIfPending(ctx context.Context, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubBookingRepo) CountNonCancelledByCar(ctx context.Context, carID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubPaymentRepo struct {
	confirmed []uuid.UUID
}

func (s *stubPaymentRepo) ConfirmCheckout(ctx context.Context, bookingID uuid.UUID, payment *model.Payment) error {
	s.confirmed = append(s.confirmed, bookingID)
	return nil
}

func (s *stubPaymentRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Payment, error) {
	return nil, nil
}
