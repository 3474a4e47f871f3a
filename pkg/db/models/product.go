package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/morganshaw/partslink-backend/pkg/enums"
)

// Product represents a catalogue part.
type Product struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductCode    string          `gorm:"column:product_code;not null;uniqueIndex"`
	Description    string          `gorm:"column:description;not null"`
	PartType       enums.PartType  `gorm:"column:part_type;type:part_type;not null"`
	IsActive       bool            `gorm:"column:is_active;not null;default:true"`
	ReferencePrice *ReferencePrice `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	BandPrices     []BandPrice     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
