package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/morganshaw/partslink-backend/pkg/enums"
)

// OrderHeader is the immutable order record written at checkout.
type OrderHeader struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string            `gorm:"column:order_number;not null;uniqueIndex"`
	DealerAccountID uuid.UUID         `gorm:"column:dealer_account_id;type:uuid;not null;index"`
	DealerUserID    uuid.UUID         `gorm:"column:dealer_user_id;type:uuid;not null"`
	Status          enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'PROCESSING'"`
	PORef           string            `gorm:"column:po_ref;not null;default:''"`
	Notes           string            `gorm:"column:notes;not null;default:''"`
	Subtotal        decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Total           decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Currency        enums.Currency    `gorm:"column:currency;type:text;not null;default:'GBP'"`
	Lines           []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
