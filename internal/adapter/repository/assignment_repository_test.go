package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
)

func TestAssign(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepository(db, zap.NewNop())
	ctx := context.Background()

	customer := seedUser(t, db, model.RoleClient)
	car := seedCar(t, db, customer.ID)
	washer := seedUser(t, db, model.RoleLaveur)

	booking := seedBooking(t, db, customer.ID, car.ID, testSlot, model.BookingStatusPending)

	assignment, updated, err := repo.Assign(ctx, booking.ID, washer.ID)
	require.NoError(t, err)

	assert.Equal(t, booking.ID, assignment.BookingID)
	assert.Equal(t, washer.ID, assignment.WasherID)
	assert.True(t, assignment.IsAccepted)
	require.NotNil(t, assignment.AcceptedAt)
	assert.Equal(t, model.BookingStatusAssigned, updated.Status)
}

func TestAssignRace(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepository(db, zap.NewNop())
	ctx := context.Background()

	customer := seedUser(t, db, model.RoleClient)
	car := seedCar(t, db, customer.ID)
	first := seedUser(t, db, model.RoleLaveur)
	second := seedUser(t, db, model.RoleLaveur)

	booking := seedBooking(t, db, customer.ID, car.ID, testSlot, model.BookingStatusPending)

	_, _, err := repo.Assign(ctx, booking.ID, first.ID)
	require.NoError(t, err)

	// The second claim loses on the status guard and writes nothing.
	_, _, err = repo.Assign(ctx, booking.ID, second.ID)
	assert.ErrorIs(t, err, domainErrors.ErrBookingNotPending)

	var count int64
	require.NoError(t, db.Model(&model.BookingAssignment{}).
		Where("booking_id = ?", booking.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAssignNonPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepository(db, zap.NewNop())
	ctx := context.Background()

	customer := seedUser(t, db, model.RoleClient)
	car := seedCar(t, db, customer.ID)
	washer := seedUser(t, db, model.RoleLaveur)

	for _, status := range []model.BookingStatus{
		model.BookingStatusConfirmed,
		model.BookingStatusCancelled,
	} {
		booking := seedBooking(t, db, customer.ID, car.ID, testSlot, status)
		_, _, err := repo.Assign(ctx, booking.ID, washer.ID)
		assert.ErrorIs(t, err, domainErrors.ErrBookingNotPending, "status %s", status)
	}
}

func TestListActiveForWasherBetween(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepository(db, zap.NewNop())
	ctx := context.Background()

	customer := seedUser(t, db, model.RoleClient)
	car := seedCar(t, db, customer.ID)
	washer := seedUser(t, db, model.RoleLaveur)

	dayStart := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	sameDay := seedBooking(t, db, customer.ID, car.ID, dayStart.Add(10*time.Hour), model.BookingStatusPending)
	nextDay := seedBooking(t, db, customer.ID, car.ID, dayStart.Add(34*time.Hour), model.BookingStatusPending)
	cancelled := seedBooking(t, db, customer.ID, car.ID, dayStart.Add(14*time.Hour), model.BookingStatusPending)

	for _, b := range []*model.Booking{sameDay, nextDay, cancelled} {
		_, _, err := repo.Assign(ctx, b.ID, washer.ID)
		require.NoError(t, err)
	}
	require.NoError(t, db.Model(&model.Booking{}).
		Where("id = ?", cancelled.ID).
		Update("status", model.BookingStatusCancelled).Error)

	got, err := repo.ListActiveForWasherBetween(ctx, washer.ID, dayStart, dayEnd)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sameDay.ID, got[0].BookingID)
	require.NotNil(t, got[0].Booking)
	require.NotNil(t, got[0].Booking.Service)
	assert.Equal(t, 60, got[0].Booking.Service.EstimatedDuration)
}

func TestListActiveForWasher(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepository(db, zap.NewNop())
	ctx := context.Background()

	customer := seedUser(t, db, model.RoleClient)
	car := seedCar(t, db, customer.ID)
	washer := seedUser(t, db, model.RoleLaveur)
	rival := seedUser(t, db, model.RoleLaveur)

	late := seedBooking(t, db, customer.ID, car.ID, testSlot.Add(4*time.Hour), model.BookingStatusPending)
	early := seedBooking(t, db, customer.ID, car.ID, testSlot, model.BookingStatusPending)
	other := seedBooking(t, db, customer.ID, car.ID, testSlot.Add(time.Hour), model.BookingStatusPending)

	for _, b := range []*model.Booking{late, early} {
		_, _, err := repo.Assign(ctx, b.ID, washer.ID)
		require.NoError(t, err)
	}
	_, _, err := repo.Assign(ctx, other.ID, rival.ID)
	require.NoError(t, err)

	got, err := repo.ListActiveForWasher(ctx, washer.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].BookingID)
	assert.Equal(t, late.ID, got[1].BookingID)
}
