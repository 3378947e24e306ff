package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

// CheckoutCompleted is the provider-agnostic projection of a completed
// checkout event.
type CheckoutCompleted struct {
	BookingID       string
	SessionID       string
	PaymentIntentID string
	AmountCents     int64
	Currency        string
	Method          string
}

// WebhookService reconciles payment events with booking state.
type WebhookService struct {
	bookings repository.BookingRepository
	payments repository.PaymentRepository
	logger   *zap.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(bookings repository.BookingRepository, payments repository.PaymentRepository, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		bookings: bookings,
		payments: payments,
		logger:   logger,
	}
}

// HandleCheckoutCompleted confirms the booking the event points at and
// records the payment. Redelivery of an already-confirmed booking is a
// successful no-op; the confirmation itself is one transaction.
func (s *WebhookService) HandleCheckoutCompleted(ctx context.Context, event CheckoutCompleted) error {
	if event.BookingID == "" {
		return domainErrors.ErrMissingBookingMetadata
	}
	bookingID, err := uuid.Parse(event.BookingID)
	if err != nil {
		return domainErrors.ErrMissingBookingMetadata
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	switch booking.Status {
	case model.BookingStatusConfirmed, model.BookingStatusInProgress, model.BookingStatusCompleted:
		s.logger.Info("Checkout event redelivered for confirmed booking, ignoring",
			zap.String("booking_id", bookingID.String()),
			zap.String("session_id", event.SessionID))
		return nil
	}

	now := time.Now()
	payment := &model.Payment{
		Amount:      decimal.NewFromInt(event.AmountCents).Div(decimal.NewFromInt(100)),
		Currency:    strings.ToUpper(event.Currency),
		Status:      model.PaymentStatusCompleted,
		Method:      event.Method,
		ProcessedAt: &now,
	}
	if event.SessionID != "" {
		payment.StripeSessionID = &event.SessionID
	}
	if event.PaymentIntentID != "" {
		payment.StripePaymentIntentID = &event.PaymentIntentID
	}

	if err := s.payments.ConfirmCheckout(ctx, bookingID, payment); err != nil {
		return err
	}

	s.logger.Info("Booking confirmed by checkout event",
		zap.String("booking_id", bookingID.String()),
		zap.String("session_id", event.SessionID),
		zap.String("amount", payment.Amount.String()),
		zap.String("currency", payment.Currency))

	return nil
}
