package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/provider"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) CountActiveAt(ctx context.Context, at time.Time) (int64, error) {
	args := m.Called(ctx, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) CreateReservation(ctx context.Context, params repository.ReservationParams) (*model.Booking, error) {
	args := m.Called(ctx, params)
	if b := args.Get(0); b != nil {
		return b.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) GetByIDWithService(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Booking, error) {
	args := m.Called(ctx, customerID)
	if b := args.Get(0); b != nil {
		return b.([]model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) ListPending(ctx context.Context) ([]model.Booking, error) {
	args := m.Called(ctx)
	if b := args.Get(0); b != nil {
		return b.([]model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockBookingRepo) DeleteIfPending(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBookingRepo) CountNonCancelledByCar(ctx context.Context, carID uuid.UUID) (int64, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).(int64), args.Error(1)
}

type mockAssignmentRepo struct {
	mock.Mock
}

func (m *mockAssignmentRepo) Assign(ctx context.Context, bookingID, washerID uuid.UUID) (*model.BookingAssignment, *model.Booking, error) {
	args := m.Called(ctx, bookingID, washerID)
	var a *model.BookingAssignment
	var b *model.Booking
	if v := args.Get(0); v != nil {
		a = v.(*model.BookingAssignment)
	}
	if v := args.Get(1); v != nil {
		b = v.(*model.Booking)
	}
	return a, b, args.Error(2)
}

func (m *mockAssignmentRepo) ListActiveForWasherBetween(ctx context.Context, washerID uuid.UUID, from, to time.Time) ([]model.BookingAssignment, error) {
	args := m.Called(ctx, washerID, from, to)
	if v := args.Get(0); v != nil {
		return v.([]model.BookingAssignment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAssignmentRepo) ListActiveForWasher(ctx context.Context, washerID uuid.UUID) ([]model.BookingAssignment, error) {
	args := m.Called(ctx, washerID)
	if v := args.Get(0); v != nil {
		return v.([]model.BookingAssignment), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) ConfirmCheckout(ctx context.Context, bookingID uuid.UUID, payment *model.Payment) error {
	args := m.Called(ctx, bookingID, payment)
	return args.Error(0)
}

func (m *mockPaymentRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Payment, error) {
	args := m.Called(ctx, bookingID)
	if v := args.Get(0); v != nil {
		return v.([]model.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetBySupabaseID(ctx context.Context, supabaseUserID string) (*model.User, error) {
	args := m.Called(ctx, supabaseUserID)
	if v := args.Get(0); v != nil {
		return v.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error {
	args := m.Called(ctx, user, profile)
	if err := args.Error(0); err != nil {
		return err
	}
	// Mirror the real repository's side effects on success.
	profile.UserID = user.ID
	user.Profile = profile
	return nil
}

func (m *mockUserRepo) UpdateContact(ctx context.Context, id uuid.UUID, update repository.ContactUpdate) (*model.User, error) {
	args := m.Called(ctx, id, update)
	if v := args.Get(0); v != nil {
		return v.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCheckout struct {
	mock.Mock
}

func (m *mockCheckout) CreateSession(ctx context.Context, params provider.CheckoutParams) (*provider.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if v := args.Get(0); v != nil {
		return v.(*provider.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}
