package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lavauto/lavauto-server/internal/domain/authz"
	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/provider"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

// SubmitInput is the validated booking submission.
type SubmitInput struct {
	ServiceType   model.ServiceType
	ScheduledDate time.Time
	Address       string
	Phone         string
	Notes         *string
	CarID         *uuid.UUID
	NewCar        *repository.NewCar
}

// SubmitResult pairs the committed booking with the checkout redirect.
type SubmitResult struct {
	Booking     *model.Booking
	CheckoutURL string
}

// BookingService drives the booking lifecycle on the customer side.
type BookingService struct {
	bookings repository.BookingRepository
	checkout provider.CheckoutProvider
	logger   *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(bookings repository.BookingRepository, checkout provider.CheckoutProvider, logger *zap.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		checkout: checkout,
		logger:   logger,
	}
}

// Submit commits the reservation transaction and then opens the hosted
// checkout. The checkout call happens outside the transaction: if it
// fails, the PENDING booking stays behind and is only removed through
// the cancel redirect.
func (s *BookingService) Submit(ctx context.Context, customer *model.User, in SubmitInput) (*SubmitResult, error) {
	booking, err := s.bookings.CreateReservation(ctx, repository.ReservationParams{
		Customer:      customer,
		ServiceType:   in.ServiceType,
		ScheduledDate: in.ScheduledDate,
		Address:       in.Address,
		Phone:         in.Phone,
		Notes:         in.Notes,
		CarID:         in.CarID,
		NewCar:        in.NewCar,
	})
	if err != nil {
		return nil, err
	}

	serviceName := string(in.ServiceType)
	if booking.Service != nil {
		serviceName = booking.Service.Name
	}

	session, err := s.checkout.CreateSession(ctx, provider.CheckoutParams{
		BookingID:     booking.ID,
		CustomerEmail: customer.Email,
		ServiceName:   serviceName,
		AmountCents:   booking.FinalPrice.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency:      "eur",
	})
	if err != nil {
		s.logger.Error("Checkout session creation failed after booking commit",
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Booking submitted",
		zap.String("booking_id", booking.ID.String()),
		zap.Time("scheduled_date", booking.ScheduledDate),
		zap.String("checkout_session_id", session.ID))

	return &SubmitResult{Booking: booking, CheckoutURL: session.URL}, nil
}

// ListForCustomer returns the caller's bookings newest first.
func (s *BookingService) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID)
}

// Cancel marks a future, non-terminal booking CANCELLED after an
// ownership check.
func (s *BookingService) Cancel(ctx context.Context, sub authz.Subject, bookingID uuid.UUID) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !authz.Can(sub, authz.ActionCancel, booking) {
		return domainErrors.ErrAccessDenied
	}
	if booking.Status.IsTerminal() || booking.ScheduledDate.Before(time.Now()) {
		return domainErrors.ErrBookingNotCancellable
	}
	return s.bookings.UpdateStatus(ctx, bookingID, model.BookingStatusCancelled)
}

// CancelPendingRedirect is the checkout cancel link target: it removes
// the booking only while it is still PENDING and never fails loudly.
func (s *BookingService) CancelPendingRedirect(ctx context.Context, bookingID uuid.UUID) error {
	return s.bookings.DeleteIfPending(ctx, bookingID)
}
