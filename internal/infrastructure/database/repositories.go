package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lavauto/lavauto-server/internal/adapter/repository"
	domainRepo "github.com/lavauto/lavauto-server/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	User       domainRepo.UserRepository
	Car        domainRepo.CarRepository
	Service    domainRepo.ServiceRepository
	Booking    domainRepo.BookingRepository
	Assignment domainRepo.AssignmentRepository
	Payment    domainRepo.PaymentRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		User:       repository.NewUserRepository(db, logger),
		Car:        repository.NewCarRepository(db, logger),
		Service:    repository.NewServiceRepository(db, logger),
		Booking:    repository.NewBookingRepository(db, logger),
		Assignment: repository.NewAssignmentRepository(db, logger),
		Payment:    repository.NewPaymentRepository(db, logger),
	}
}
