package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lavauto/lavauto-server/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if db.Dialector.Name() == "postgres" {
		if err := createExtensions(db); err != nil {
			logger.Error("Failed to create extensions", zap.Error(err))
			return err
		}
	}

	err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Car{},
		&model.Service{},
		&model.Booking{},
		&model.BookingAssignment{},
		&model.Payment{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := createCustomIndexes(db); err != nil {
			logger.Error("Failed to create custom indexes", zap.Error(err))
			return err
		}
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
}

// createCustomIndexes creates partial indexes GORM tags cannot express.
func createCustomIndexes(db *gorm.DB) error {
	// Speeds up the capacity count on the slot-contention path.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_bookings_active_slot ON bookings (scheduled_date) WHERE status NOT IN ('CANCELLED', 'COMPLETED')`).Error; err != nil {
		return err
	}

	// Soonest-first ordering of the open mission pool.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_bookings_pending ON bookings (scheduled_date) WHERE status = 'PENDING'`).Error; err != nil {
		return err
	}

	return nil
}
