package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

var testSlot = time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC)

func reservationFor(user *model.User, at time.Time) repository.ReservationParams {
	return repository.ReservationParams{
		Customer:      user,
		ServiceType:   model.ServiceComplete,
		ScheduledDate: at,
		Address:       "12 rue de la République, Lyon",
		Phone:         user.Phone,
		NewCar: &repository.NewCar{
			Make:  "Peugeot",
			Model: "208",
			Plate: uuid.NewString()[:8],
		},
	}
}

func TestCreateReservationSlotCapacity(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		user := seedUser(t, db, model.RoleClient)
		booking, err := repo.CreateReservation(ctx, reservationFor(user, testSlot))
		require.NoError(t, err, "booking %d should fit", i+1)
		assert.Equal(t, model.BookingStatusPending, booking.Status)
	}

	user := seedUser(t, db, model.RoleClient)
	_, err := repo.CreateReservation(ctx, reservationFor(user, testSlot))
	assert.ErrorIs(t, err, domainErrors.ErrSlotFull)

	count, err := repo.CountActiveAt(ctx, testSlot)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// A different timestamp is unaffected.
	_, err = repo.CreateReservation(ctx, reservationFor(user, testSlot.Add(30*time.Minute)))
	assert.NoError(t, err)
}

func TestCreateReservationTerminalStatusesFreeTheSlot(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db, zap.NewNop())
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		user := seedUser(t, db, model.RoleClient)
		booking, err := repo.CreateReservation(ctx, reservationFor(user, testSlot))
		require.NoError(t, err)
		ids = append(ids, booking.ID)
	}

	require.NoError(t, repo.UpdateStatus(ctx, ids[0], model.BookingStatusCancelled))

	user := seedUser(t, db, model.RoleClient)
	_, err := repo.CreateReservation(ctx, reservationFor(user, testSlot))
	assert.NoError(t, err, "cancelled booking must not hold the slot")

	require.NoError(t, repo.UpdateStatus(ctx, ids[1], model.BookingStatusCompleted))

	user = seedUser(t, db, model.RoleClient)
	_, err = repo.CreateReservation(ctx, reservationFor(user, testSlot))
	assert.NoError(t, err, "completed booking must not hold the slot")

	// ASSIGNED and CONFIRMED still count.
	require.NoError(t, repo.UpdateStatus(ctx, ids[2], model.BookingStatusConfirmed))
	user = seedUser(t, db, model.RoleClient)
	_, err = repo.CreateReservation(ctx, reservationFor(user, testSlot))
	assert.ErrorIs(t, err, domainErrors.ErrSlotFull)
}

func TestCreateReservationCarResolution(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db, zap.NewNop())
	ctx := context.Background()

	owner := seedUser(t, db, model.RoleClient)
	stranger := seedUser(t, db, model.RoleClient)
	car := seedCar(t, db, owner.ID)

	t.Run("own car accepted", func(t *testing.T) {
		params := reservationFor(owner, testSlot)
		params.NewCar = nil
		params.CarID = &car.ID
		booking, err := repo.CreateReservation(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, car.ID, booking.CarID)
	})

	t.Run("someone else's car rejected", func(t *testing.T) {
		params := reservationFor(stranger, testSlot.Add(time.Hour))
		params.NewCar = nil
		params.CarID = &car.ID
		_, err := repo.CreateReservation(ctx, params)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidCar)
	})

	t.Run("unknown car rejected", func(t *testing.T) {
		params := reservationFor(owner, testSlot.Add(2*time.Hour))
		params.NewCar = nil
		unknown := uuid.New()
		params.CarID = &unknown
		_, err := repo.CreateReservation(ctx, params)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidCar)
	})

	t.Run("incomplete new car rejected", func(t *testing.T) {
		params := reservationFor(owner, testSlot.Add(3*time.Hour))
		params.NewCar = &repository.NewCar{Make: "Peugeot"}
		_, err := repo.CreateReservation(ctx, params)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidCar)
	})

	t.Run("new car created with trimmed fields", func(t *testing.T) {
		params := reservationFor(owner, testSlot.Add(4*time.Hour))
		params.NewCar = &repository.NewCar{Make: "  Citroën ", Model: " C3 ", Plate: " ZZ-999-ZZ "}
		booking, err := repo.CreateReservation(ctx, params)
		require.NoError(t, err)

		var created model.Car
		require.NoError(t, db.First(&created, "id = ?", booking.CarID).Error)
		assert.Equal(t, "Citroën", created.Make)
		assert.Equal(t, "C3", created.Model)
		assert.Equal(t, "ZZ-999-ZZ", created.Plate)
		assert.Equal(t, owner.ID, created.UserID)
	})
}

func TestCreateReservationRollbackWritesNothing(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, db, model.RoleClient)

	var carsBefore int64
	require.NoError(t, db.Model(&model.Car{}).Count(&carsBefore).Error)

	// Fill the slot, then a submission with a new car must leave no car
	// row behind when the capacity check aborts the transaction.
	for i := 0; i < 3; i++ {
		u := seedUser(t, db, model.RoleClient)
		_, err := repo.CreateReservation(ctx, reservationFor(u, testSlot))
		require.NoError(t, err)
	}

	_, err := repo.CreateReservation(ctx, reservationFor(user, testSlot))
	require.ErrorIs(t, err, domainErrors.ErrSlotFull)

	var carsAfter int64
	require.NoError(t, db.Model(&model.Car{}).Count(&carsAfter).Error)
	assert.Equal(t, carsBefore+3, carsAfter)
}

func TestCreateReservationServiceCatalog(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db, zap.NewNop())
	ctx := context.Background()

	u1 := seedUser(t, db, model.RoleClient)
	u2 := seedUser(t, db, model.RoleClient)

	b1, err := repo.CreateReservation(ctx, reservationFor(u1, testSlot))
	require.NoError(t, err)
	b2, err := repo.CreateReservation(ctx, reservationFor(u2, testSlot.Add(time.Hour)))
	require.NoError(t, err)

	// Same catalog row both times, priced from the catalog.
	assert.Equal(t, b1.ServiceID, b2.ServiceID)
	assert.Equal(t, "45", b1.FinalPrice.String())

	var serviceCount int64
	require.NoError(t, db.Model(&model.Service{}).Where("type = ?", model.ServiceComplete).Count(&serviceCount).Error)
	assert.Equal(t, int64(1), serviceCount)
}

func TestCreateReservationUpdatesPhone(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, db, model.RoleClient)
	params := reservationFor(user, testSlot)
	params.Phone = "0698765432"

	_, err := repo.CreateReservation(ctx, params)
	require.NoError(t, err)

	var refreshed model.User
	require.NoError(t, db.First(&refreshed, "id = ?", user.ID).Error)
	assert.Equal(t, "0698765432", refreshed.Phone)
}

func TestDeleteIfPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, db, model.RoleClient)
	car := seedCar(t, db, user.ID)

	pending := seedBooking(t, db, user.ID, car.ID, testSlot, model.BookingStatusPending)
	confirmed := seedBooking(t, db, user.ID, car.ID, testSlot.Add(time.Hour), model.BookingStatusConfirmed)

	require.NoError(t, repo.DeleteIfPending(ctx, pending.ID))
	_, err := repo.GetByID(ctx, pending.ID)
	assert.ErrorIs(t, err, domainErrors.ErrBookingNotFound)

	// Confirmed bookings survive the cancel redirect.
	require.NoError(t, repo.DeleteIfPending(ctx, confirmed.ID))
	got, err := repo.GetByID(ctx, confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, got.Status)
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db, zap.NewNop())

	err := repo.UpdateStatus(context.Background(), uuid.New(), model.BookingStatusCancelled)
	assert.ErrorIs(t, err, domainErrors.ErrBookingNotFound)
}

func TestCountNonCancelledByCar(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, db, model.RoleClient)
	car := seedCar(t, db, user.ID)

	seedBooking(t, db, user.ID, car.ID, testSlot, model.BookingStatusCancelled)
	count, err := repo.CountNonCancelledByCar(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "cancelled-only history must not block")

	seedBooking(t, db, user.ID, car.ID, testSlot.Add(time.Hour), model.BookingStatusCompleted)
	count, err = repo.CountNonCancelledByCar(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "completed bookings keep the car referenced")
}

func TestListByCustomerOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, db, model.RoleClient)
	car := seedCar(t, db, user.ID)
	other := seedUser(t, db, model.RoleClient)
	otherCar := seedCar(t, db, other.ID)

	early := seedBooking(t, db, user.ID, car.ID, testSlot, model.BookingStatusPending)
	late := seedBooking(t, db, user.ID, car.ID, testSlot.Add(2*time.Hour), model.BookingStatusPending)
	seedBooking(t, db, other.ID, otherCar.ID, testSlot, model.BookingStatusPending)

	got, err := repo.ListByCustomer(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, late.ID, got[0].ID)
	assert.Equal(t, early.ID, got[1].ID)
	require.NotNil(t, got[0].Service)
	assert.Equal(t, "Lavage Complet", got[0].Service.Name)
}

func TestListPendingOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, db, model.RoleClient)
	car := seedCar(t, db, user.ID)

	late := seedBooking(t, db, user.ID, car.ID, testSlot.Add(3*time.Hour), model.BookingStatusPending)
	early := seedBooking(t, db, user.ID, car.ID, testSlot, model.BookingStatusPending)
	seedBooking(t, db, user.ID, car.ID, testSlot.Add(time.Hour), model.BookingStatusConfirmed)

	got, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)
}
