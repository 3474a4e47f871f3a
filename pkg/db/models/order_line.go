package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/morganshaw/partslink-backend/pkg/enums"
)

// OrderLine snapshots a priced cart line at the moment the order was placed.
// Later catalogue or band edits never touch these rows.
type OrderLine struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID         uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductCode     string          `gorm:"column:product_code;not null"`
	Description     string          `gorm:"column:description;not null"`
	PartType        enums.PartType  `gorm:"column:part_type;type:part_type;not null"`
	BandCode        string          `gorm:"column:band_code;not null"`
	Qty             int             `gorm:"column:qty;not null"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	LineTotal       decimal.Decimal `gorm:"column:line_total;type:numeric(12,2);not null"`
	MinPriceApplied bool            `gorm:"column:min_price_applied;not null;default:false"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
