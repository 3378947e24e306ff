package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileStatus represents the manual-review state of a profile.
// Clients are validated immediately; washer profiles wait for review.
type ProfileStatus string

const (
	ProfileStatusValidated         ProfileStatus = "VALIDATED"
	ProfileStatusValidationPending ProfileStatus = "VALIDATION_PENDING"
)

// Profile carries the onboarding data attached 1:1 to a User.
type Profile struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Status      ProfileStatus `gorm:"size:30;not null;default:'VALIDATED'" json:"status"`
	Siret       *string       `gorm:"size:14;uniqueIndex" json:"siret,omitempty"`
	CompanyName *string       `gorm:"size:150" json:"company_name,omitempty"`
	AvatarURL   *string       `gorm:"size:500" json:"avatar_url,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
