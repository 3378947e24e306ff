package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

// MaxConcurrentBookings is the global per-timestamp ceiling. The count
// is a strict per-exact-timestamp match, not per service type or zone.
const MaxConcurrentBookings = 3

type bookingRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB, logger *zap.Logger) repository.BookingRepository {
	return &bookingRepository{db: db, logger: logger}
}

func (r *bookingRepository) CountActiveAt(ctx context.Context, at time.Time) (int64, error) {
	count, err := countActiveAtTx(r.db.WithContext(ctx), at)
	if err != nil {
		r.logger.Error("Failed to count bookings at slot",
			zap.Time("scheduled_date", at),
			zap.Error(err))
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// CreateReservation performs the whole booking submission inside one
// serializable transaction. The slot re-count is intentionally repeated
// here: the standalone validation endpoint is not atomic with the
// submission, so this transaction is the source of truth for the
// capacity invariant. Under serializable isolation two concurrent
// submissions cannot both observe two free slots and both commit.
func (r *bookingRepository) CreateReservation(ctx context.Context, params repository.ReservationParams) (*model.Booking, error) {
	var booking *model.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := countActiveAtTx(tx, params.ScheduledDate)
		if err != nil {
			return err
		}
		if count >= MaxConcurrentBookings {
			return domainErrors.ErrSlotFull
		}

		svc, err := upsertServiceTx(tx, params.ServiceType)
		if err != nil {
			return err
		}

		carID, err := resolveCarTx(tx, params)
		if err != nil {
			return err
		}

		if params.Phone != "" && params.Phone != params.Customer.Phone {
			if err := tx.Model(&model.User{}).
				Where("id = ?", params.Customer.ID).
				Update("phone", params.Phone).Error; err != nil {
				return err
			}
		}

		booking = &model.Booking{
			UserID:        params.Customer.ID,
			ServiceID:     svc.ID,
			CarID:         carID,
			ScheduledDate: params.ScheduledDate,
			Address:       params.Address,
			FinalPrice:    svc.BasePrice,
			Status:        model.BookingStatusPending,
			Notes:         params.Notes,
		}
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		booking.Service = svc
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		if errors.Is(err, domainErrors.ErrSlotFull) || errors.Is(err, domainErrors.ErrInvalidCar) {
			return nil, err
		}
		r.logger.Error("Reservation transaction failed",
			zap.Time("scheduled_date", params.ScheduledDate),
			zap.String("customer_id", params.Customer.ID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	return booking, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) GetByIDWithService(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Car").
		Preload("Assignment").
		Preload("Assignment.Washer").
		Where("user_id = ?", customerID).
		Order("scheduled_date DESC").
		Find(&bookings).Error
	if err != nil {
		r.logger.Error("Failed to list customer bookings",
			zap.String("customer_id", customerID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListPending(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Car").
		Preload("User").
		Where("status = ?", model.BookingStatusPending).
		Order("scheduled_date ASC").
		Find(&bookings).Error
	if err != nil {
		r.logger.Error("Failed to list pending bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to list pending bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domainErrors.ErrBookingNotFound
	}
	return nil
}

func (r *bookingRepository) DeleteIfPending(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, model.BookingStatusPending).
		Delete(&model.Booking{}).Error
	if err != nil {
		r.logger.Error("Failed to delete pending booking",
			zap.String("booking_id", id.String()),
			zap.Error(err))
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) CountNonCancelledByCar(ctx context.Context, carID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("car_id = ? AND status <> ?", carID, model.BookingStatusCancelled).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count car bookings: %w", err)
	}
	return count, nil
}

func countActiveAtTx(tx *gorm.DB, at time.Time) (int64, error) {
	var count int64
	err := tx.Model(&model.Booking{}).
		Where("scheduled_date = ? AND status NOT IN ?", at, model.TerminalBookingStatuses).
		Count(&count).Error
	return count, err
}

// resolveCarTx returns the car id to book against: an existing car
// after an ownership check, or a freshly created one.
func resolveCarTx(tx *gorm.DB, params repository.ReservationParams) (uuid.UUID, error) {
	if params.CarID != nil {
		var car model.Car
		err := tx.First(&car, "id = ?", *params.CarID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, domainErrors.ErrInvalidCar
			}
			return uuid.Nil, err
		}
		if car.UserID != params.Customer.ID {
			return uuid.Nil, domainErrors.ErrInvalidCar
		}
		return car.ID, nil
	}

	nc := params.NewCar
	if nc == nil || strings.TrimSpace(nc.Make) == "" ||
		strings.TrimSpace(nc.Model) == "" || strings.TrimSpace(nc.Plate) == "" {
		return uuid.Nil, domainErrors.ErrInvalidCar
	}

	car := model.Car{
		UserID:     params.Customer.ID,
		Make:       strings.TrimSpace(nc.Make),
		Model:      strings.TrimSpace(nc.Model),
		Plate:      strings.TrimSpace(nc.Plate),
		CarType:    nc.CarType,
		IsElectric: nc.IsElectric,
	}
	if err := tx.Create(&car).Error; err != nil {
		return uuid.Nil, err
	}
	return car.ID, nil
}
