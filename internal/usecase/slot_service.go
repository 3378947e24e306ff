package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
	"github.com/lavauto/lavauto-server/internal/domain/schedule"
)

// MaxConcurrentBookings is the global ceiling of non-terminal bookings
// sharing one exact timestamp.
const MaxConcurrentBookings = 3

// ParseSlot builds the naive local timestamp from the client's date and
// time fields. The time is matched exactly; slots are expected to come
// from the client's 30-minute grid and are not re-aligned here.
func ParseSlot(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02T15:04", date+"T"+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot %q %q: %w", date, clock, err)
	}
	return t, nil
}

// SlotService implements the standalone slot-availability check.
type SlotService struct {
	bookings repository.BookingRepository
	logger   *zap.Logger

	// Now is swappable for tests.
	Now func() time.Time
}

// NewSlotService creates a new slot availability service
func NewSlotService(bookings repository.BookingRepository, logger *zap.Logger) *SlotService {
	return &SlotService{
		bookings: bookings,
		logger:   logger,
		Now:      time.Now,
	}
}

// Validate runs the standalone checks in order: past, business window,
// same-day notice, then the capacity count. The first three reject
// without touching the booking table.
func (s *SlotService) Validate(ctx context.Context, slot time.Time) error {
	now := s.Now()

	if slot.Before(now) {
		return domainErrors.ErrSlotInPast
	}
	if !schedule.WithinBusinessHours(slot) {
		return domainErrors.ErrOutsideBusinessHours
	}
	if schedule.SameCalendarDay(slot, now) &&
		schedule.MinutesIntoDay(slot) <= schedule.MinutesIntoDay(now)+int(schedule.MinSameDayNotice.Minutes()) {
		return domainErrors.ErrShortNotice
	}

	count, err := s.bookings.CountActiveAt(ctx, slot)
	if err != nil {
		return err
	}
	if count >= MaxConcurrentBookings {
		s.logger.Info("Slot rejected: capacity reached",
			zap.Time("slot", slot),
			zap.Int64("active_bookings", count))
		return domainErrors.ErrSlotFull
	}

	return nil
}
