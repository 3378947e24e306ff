package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceType identifies a catalog entry.
type ServiceType string

const (
	ServiceExterior ServiceType = "EXTERIOR"
	ServiceComplete ServiceType = "COMPLETE"
	ServicePremium  ServiceType = "PREMIUM"
)

// ParseServiceType maps the client-facing service ids ("exterior",
// "complete", "premium") to their catalog type.
func ParseServiceType(s string) (ServiceType, bool) {
	switch s {
	case "exterior", string(ServiceExterior):
		return ServiceExterior, true
	case "complete", string(ServiceComplete):
		return ServiceComplete, true
	case "premium", string(ServicePremium):
		return ServicePremium, true
	}
	return "", false
}

// Service is a catalog row. Rows are created on first use from the
// static catalog below, not through an admin surface.
type Service struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Type              ServiceType     `gorm:"size:20;uniqueIndex;not null" json:"type"`
	Name              string          `gorm:"size:100;not null" json:"name"`
	Description       string          `gorm:"size:500" json:"description"`
	BasePrice         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	EstimatedDuration int             `gorm:"not null" json:"estimated_duration"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Service) TableName() string {
	return "services"
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// CatalogEntry holds the seed values for a service type.
type CatalogEntry struct {
	Name              string
	Description       string
	BasePrice         decimal.Decimal
	EstimatedDuration int // minutes
}

// ServiceCatalog is the static seed table used to lazily create
// catalog rows on first booking of a given type.
var ServiceCatalog = map[ServiceType]CatalogEntry{
	ServiceExterior: {
		Name:              "Lavage Extérieur",
		Description:       "Nettoyage complet de l'extérieur de votre véhicule avec des produits de qualité.",
		BasePrice:         decimal.NewFromInt(25),
		EstimatedDuration: 30,
	},
	ServiceComplete: {
		Name:              "Lavage Complet",
		Description:       "Nettoyage intérieur et extérieur pour une voiture impeccable.",
		BasePrice:         decimal.NewFromInt(45),
		EstimatedDuration: 60,
	},
	ServicePremium: {
		Name:              "Lavage Premium",
		Description:       "Service complet avec cire, lustrage et traitement des plastiques.",
		BasePrice:         decimal.NewFromInt(75),
		EstimatedDuration: 90,
	},
}
