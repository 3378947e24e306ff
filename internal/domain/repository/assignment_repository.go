package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lavauto/lavauto-server/internal/domain/model"
)

type AssignmentRepository interface {
	// Assign creates the assignment and flips the booking to ASSIGNED
	// in one transaction. Returns errors.ErrBookingNotPending when the
	// booking state changed underneath.
	Assign(ctx context.Context, bookingID, washerID uuid.UUID) (*model.BookingAssignment, *model.Booking, error)

	// ListActiveForWasherBetween returns the washer's assignments whose
	// booking is active and scheduled in [from, to), with the booking
	// and its service preloaded.
	ListActiveForWasherBetween(ctx context.Context, washerID uuid.UUID, from, to time.Time) ([]model.BookingAssignment, error)

	// ListActiveForWasher returns the washer's active assignments
	// soonest first with booking, service, car and customer preloaded.
	ListActiveForWasher(ctx context.Context, washerID uuid.UUID) ([]model.BookingAssignment, error)
}
