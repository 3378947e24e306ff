package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingAssignment links one booking to the washer who claimed it.
type BookingAssignment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID  uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	WasherID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"washer_id"`
	IsAccepted bool       `gorm:"default:false" json:"is_accepted"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	Washer  *User    `gorm:"foreignKey:WasherID" json:"washer,omitempty"`
}

// TableName specifies the table name for GORM
func (BookingAssignment) TableName() string {
	return "booking_assignments"
}

func (a *BookingAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// OwnerID implements authz.Resource.
func (a *BookingAssignment) OwnerID() uuid.UUID {
	return a.WasherID
}
