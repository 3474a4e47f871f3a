package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/morganshaw/partslink-backend/pkg/enums"
)

// DealerAccount is a trade customer account.
type DealerAccount struct {
	ID              uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AccountNumber   string                 `gorm:"column:account_number;not null;uniqueIndex"`
	Name            string                 `gorm:"column:name;not null"`
	Entitlement     enums.Entitlement      `gorm:"column:entitlement;type:entitlement;not null"`
	Status          enums.DealerStatus     `gorm:"column:status;type:dealer_status;not null;default:'ACTIVE'"`
	BandAssignments []DealerBandAssignment `gorm:"foreignKey:DealerAccountID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
