package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusAssigned   BookingStatus = "ASSIGNED"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// Scan implements sql.Scanner interface
func (s *BookingStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = BookingStatus(v)
	case []byte:
		*s = BookingStatus(v)
	default:
		*s = BookingStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s BookingStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// IsTerminal reports whether the booking no longer occupies a slot.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// TerminalBookingStatuses are the states excluded from slot counting
// and overlap checks.
var TerminalBookingStatuses = []BookingStatus{
	BookingStatusCancelled,
	BookingStatusCompleted,
}

// Booking is the central entity tying a customer, a service, a car and
// a time slot together.
type Booking struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	ServiceID     uuid.UUID       `gorm:"type:uuid;not null" json:"service_id"`
	CarID         uuid.UUID       `gorm:"type:uuid;index;not null" json:"car_id"`
	ScheduledDate time.Time       `gorm:"index;not null" json:"scheduled_date"`
	Address       string          `gorm:"size:500;not null" json:"address"`
	FinalPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"final_price"`
	Status        BookingStatus   `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	Notes         *string         `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations
	User       *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Service    *Service           `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Car        *Car               `gorm:"foreignKey:CarID" json:"car,omitempty"`
	Assignment *BookingAssignment `gorm:"foreignKey:BookingID" json:"assignment,omitempty"`
	Payments   []Payment          `gorm:"foreignKey:BookingID" json:"payments,omitempty"`
}

// TableName specifies the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// OwnerID implements authz.Resource.
func (b *Booking) OwnerID() uuid.UUID {
	return b.UserID
}

// DurationMinutes returns the estimated mission duration, defaulting to
// 60 minutes when the service row is absent or unset.
func (b *Booking) DurationMinutes() int {
	if b.Service != nil && b.Service.EstimatedDuration > 0 {
		return b.Service.EstimatedDuration
	}
	return 60
}
