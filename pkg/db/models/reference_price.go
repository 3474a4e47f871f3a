package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/morganshaw/partslink-backend/pkg/enums"
)

// ReferencePrice holds the list prices and the optional price floor for a product.
type ReferencePrice struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID        `gorm:"column:product_id;type:uuid;not null;uniqueIndex"`
	TradePrice   decimal.Decimal  `gorm:"column:trade_price;type:numeric(12,2);not null"`
	RetailPrice  decimal.Decimal  `gorm:"column:retail_price;type:numeric(12,2);not null"`
	MinimumPrice *decimal.Decimal `gorm:"column:minimum_price;type:numeric(12,2)"`
	Currency     enums.Currency   `gorm:"column:currency;type:text;not null;default:'GBP'"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
