package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lavauto/lavauto-server/internal/domain/model"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// The pool is pinned to one connection so every session sees the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Car{},
		&model.Service{},
		&model.Booking{},
		&model.BookingAssignment{},
		&model.Payment{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		SupabaseUserID: uuid.NewString(),
		Email:          uuid.NewString() + "@example.fr",
		FirstName:      "Test",
		LastName:       "User",
		Phone:          "0612345678",
		Role:           role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCar(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *model.Car {
	t.Helper()
	car := &model.Car{
		UserID: ownerID,
		Make:   "Renault",
		Model:  "Clio",
		Plate:  uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(car).Error)
	return car
}

func seedBooking(t *testing.T, db *gorm.DB, userID, carID uuid.UUID, at time.Time, status model.BookingStatus) *model.Booking {
	t.Helper()

	svc, err := upsertServiceTx(db, model.ServiceComplete)
	require.NoError(t, err)

	booking := &model.Booking{
		UserID:        userID,
		ServiceID:     svc.ID,
		CarID:         carID,
		ScheduledDate: at,
		Address:       "12 rue de la République, Lyon",
		FinalPrice:    svc.BasePrice,
		Status:        status,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}
