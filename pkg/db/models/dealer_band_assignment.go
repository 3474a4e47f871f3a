package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/morganshaw/partslink-backend/pkg/enums"
)

// DealerBandAssignment maps a dealer account to a pricing band per part type.
type DealerBandAssignment struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DealerAccountID uuid.UUID      `gorm:"column:dealer_account_id;type:uuid;not null;uniqueIndex:idx_band_assignments_dealer_part_type"`
	PartType        enums.PartType `gorm:"column:part_type;type:part_type;not null;uniqueIndex:idx_band_assignments_dealer_part_type"`
	BandCode        string         `gorm:"column:band_code;not null"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
