package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

type assignmentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB, logger *zap.Logger) repository.AssignmentRepository {
	return &assignmentRepository{db: db, logger: logger}
}

// Assign creates the assignment row and flips the booking to ASSIGNED
// atomically. The status guard in the UPDATE re-checks PENDING inside
// the transaction, so two washers racing for the same mission cannot
// both claim it.
func (r *assignmentRepository) Assign(ctx context.Context, bookingID, washerID uuid.UUID) (*model.BookingAssignment, *model.Booking, error) {
	var assignment *model.BookingAssignment
	var booking model.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Booking{}).
			Where("id = ? AND status = ?", bookingID, model.BookingStatusPending).
			Update("status", model.BookingStatusAssigned)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainErrors.ErrBookingNotPending
		}

		now := time.Now()
		assignment = &model.BookingAssignment{
			BookingID:  bookingID,
			WasherID:   washerID,
			IsAccepted: true,
			AcceptedAt: &now,
		}
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}

		return tx.First(&booking, "id = ?", bookingID).Error
	})

	if err != nil {
		if errors.Is(err, domainErrors.ErrBookingNotPending) {
			return nil, nil, err
		}
		r.logger.Error("Assignment transaction failed",
			zap.String("booking_id", bookingID.String()),
			zap.String("washer_id", washerID.String()),
			zap.Error(err))
		return nil, nil, fmt.Errorf("failed to assign mission: %w", err)
	}

	return assignment, &booking, nil
}

func (r *assignmentRepository) ListActiveForWasherBetween(ctx context.Context, washerID uuid.UUID, from, to time.Time) ([]model.BookingAssignment, error) {
	var assignments []model.BookingAssignment
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Service").
		Joins("JOIN bookings ON bookings.id = booking_assignments.booking_id").
		Where("booking_assignments.washer_id = ?", washerID).
		Where("bookings.status NOT IN ?", model.TerminalBookingStatuses).
		Where("bookings.scheduled_date >= ? AND bookings.scheduled_date < ?", from, to).
		Find(&assignments).Error
	if err != nil {
		r.logger.Error("Failed to list washer assignments for day",
			zap.String("washer_id", washerID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (r *assignmentRepository) ListActiveForWasher(ctx context.Context, washerID uuid.UUID) ([]model.BookingAssignment, error) {
	var assignments []model.BookingAssignment
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Service").
		Preload("Booking.Car").
		Preload("Booking.User").
		Joins("JOIN bookings ON bookings.id = booking_assignments.booking_id").
		Where("booking_assignments.washer_id = ?", washerID).
		Where("bookings.status NOT IN ?", model.TerminalBookingStatuses).
		Order("bookings.scheduled_date ASC").
		Find(&assignments).Error
	if err != nil {
		r.logger.Error("Failed to list washer assignments",
			zap.String("washer_id", washerID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}
