package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole discriminates the two sides of the marketplace.
type UserRole string

const (
	RoleClient UserRole = "CLIENT"
	RoleLaveur UserRole = "LAVEUR"
	RoleAdmin  UserRole = "ADMIN"
)

// IsValid reports whether the role is one a user may onboard with.
// ADMIN accounts are provisioned out of band.
func (r UserRole) IsValid() bool {
	return r == RoleClient || r == RoleLaveur
}

// User is the local record for an authenticated Supabase identity.
// The role is fixed at onboarding and never changed afterwards.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SupabaseUserID string    `gorm:"column:supabase_user_id;size:64;uniqueIndex;not null" json:"supabase_user_id"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName      string    `gorm:"size:100" json:"first_name"`
	LastName       string    `gorm:"size:100" json:"last_name"`
	Phone          string    `gorm:"size:30" json:"phone"`
	Role           UserRole  `gorm:"size:20;not null" json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
