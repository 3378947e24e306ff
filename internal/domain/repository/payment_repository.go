package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lavauto/lavauto-server/internal/domain/model"
)

type PaymentRepository interface {
	// ConfirmCheckout transitions the booking to CONFIRMED and inserts
	// the payment row in a single transaction, so the two writes cannot
	// diverge.
	ConfirmCheckout(ctx context.Context, bookingID uuid.UUID, payment *model.Payment) error

	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Payment, error)
}
