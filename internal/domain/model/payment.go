package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus mirrors the provider-side outcome of a checkout.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment records one settled checkout for a booking. The webhook
// handler creates at most one row per booking.
type Payment struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID             uuid.UUID       `gorm:"type:uuid;index;not null" json:"booking_id"`
	Amount                decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency              string          `gorm:"size:3;default:'EUR'" json:"currency"`
	Status                PaymentStatus   `gorm:"size:20;not null" json:"status"`
	Method                string          `gorm:"size:30" json:"method"`
	StripeSessionID       *string         `gorm:"size:100" json:"stripe_session_id,omitempty"`
	StripePaymentIntentID *string         `gorm:"size:100;uniqueIndex" json:"stripe_payment_intent_id,omitempty"`
	ProcessedAt           *time.Time      `json:"processed_at,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`

	// Relations
	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
