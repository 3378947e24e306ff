package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{db: db, logger: logger}
}

// ConfirmCheckout writes the status transition and the payment row in
// one transaction so a crash between the two cannot leave them apart.
func (r *paymentRepository) ConfirmCheckout(ctx context.Context, bookingID uuid.UUID, payment *model.Payment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Booking{}).
			Where("id = ?", bookingID).
			Update("status", model.BookingStatusConfirmed).Error; err != nil {
			return err
		}
		payment.BookingID = bookingID
		return tx.Create(payment).Error
	})

	if err != nil {
		r.logger.Error("Checkout confirmation transaction failed",
			zap.String("booking_id", bookingID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to confirm checkout: %w", err)
	}
	return nil
}

func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
