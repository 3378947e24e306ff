package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Car belongs to exactly one customer. Deletion is blocked while any
// booking of the car is in a non-cancelled state.
type Car struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Make       string    `gorm:"size:50;not null" json:"make"`
	Model      string    `gorm:"size:50;not null" json:"model"`
	Plate      string    `gorm:"size:20;not null" json:"plate"`
	CarType    string    `gorm:"size:30" json:"car_type"`
	IsElectric bool      `gorm:"default:false" json:"is_electric"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Car) TableName() string {
	return "cars"
}

func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// OwnerID implements authz.Resource.
func (c *Car) OwnerID() uuid.UUID {
	return c.UserID
}
