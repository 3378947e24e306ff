package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lavauto/lavauto-server/internal/domain/authz"
	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
	"github.com/lavauto/lavauto-server/internal/domain/schedule"
)

// MissionService handles the washer side: browsing and claiming
// missions.
type MissionService struct {
	assignments repository.AssignmentRepository
	bookings    repository.BookingRepository
	logger      *zap.Logger
}

// NewMissionService creates a new mission service
func NewMissionService(assignments repository.AssignmentRepository, bookings repository.BookingRepository, logger *zap.Logger) *MissionService {
	return &MissionService{
		assignments: assignments,
		bookings:    bookings,
		logger:      logger,
	}
}

// Accept claims a pending booking for the washer. The candidate window
// is checked against every active assignment of the washer on the same
// calendar day before anything is written; the rejected path writes no
// rows at all.
func (s *MissionService) Accept(ctx context.Context, washer *model.User, bookingID uuid.UUID) (*model.BookingAssignment, *model.Booking, error) {
	if !authz.Can(authz.SubjectFor(washer), authz.ActionAccept, nil) {
		return nil, nil, domainErrors.ErrAccessDenied
	}

	booking, err := s.bookings.GetByIDWithService(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking.Status != model.BookingStatusPending {
		return nil, nil, domainErrors.ErrBookingNotPending
	}

	candidate := schedule.WindowFor(booking)
	dayStart := schedule.StartOfDay(booking.ScheduledDate)
	dayEnd := schedule.EndOfDay(booking.ScheduledDate)

	existing, err := s.assignments.ListActiveForWasherBetween(ctx, washer.ID, dayStart, dayEnd)
	if err != nil {
		return nil, nil, err
	}
	for i := range existing {
		if existing[i].Booking == nil {
			continue
		}
		if candidate.Overlaps(schedule.WindowFor(existing[i].Booking)) {
			s.logger.Info("Mission rejected: schedule conflict",
				zap.String("booking_id", bookingID.String()),
				zap.String("washer_id", washer.ID.String()),
				zap.String("conflicting_booking_id", existing[i].BookingID.String()))
			return nil, nil, domainErrors.ErrScheduleConflict
		}
	}

	assignment, updated, err := s.assignments.Assign(ctx, bookingID, washer.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Mission accepted",
		zap.String("booking_id", bookingID.String()),
		zap.String("washer_id", washer.ID.String()))

	return assignment, updated, nil
}

// Available lists the PENDING bookings any washer may claim.
func (s *MissionService) Available(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.ListPending(ctx)
}

// Accepted lists the washer's active missions, flattened to bookings
// for the client.
func (s *MissionService) Accepted(ctx context.Context, washerID uuid.UUID) ([]model.Booking, error) {
	assignments, err := s.assignments.ListActiveForWasher(ctx, washerID)
	if err != nil {
		return nil, err
	}

	bookings := make([]model.Booking, 0, len(assignments))
	for i := range assignments {
		if assignments[i].Booking != nil {
			bookings = append(bookings, *assignments[i].Booking)
		}
	}
	return bookings, nil
}
