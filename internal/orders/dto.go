package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
)

// Summary is a single row in the dealer's order history.
type Summary struct {
	ID          uuid.UUID         `json:"id"`
	OrderNumber string            `json:"order_number"`
	Status      enums.OrderStatus `json:"status"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	Total       decimal.Decimal   `json:"total"`
	Currency    enums.Currency    `json:"currency"`
	LineCount   int               `json:"line_count"`
	CreatedAt   time.Time         `json:"created_at"`
}

// List is a cursor-paginated page of order summaries.
type List struct {
	Orders     []Summary `json:"orders"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// LineDetail mirrors the persisted order line snapshot.
type LineDetail struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductCode     string          `json:"product_code"`
	Description     string          `json:"description"`
	PartType        enums.PartType  `json:"part_type"`
	BandCode        string          `json:"band_code"`
	Qty             int             `json:"qty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
	MinPriceApplied bool            `json:"min_price_applied"`
}

// Detail is the full dealer-facing order view.
type Detail struct {
	ID          uuid.UUID         `json:"id"`
	OrderNumber string            `json:"order_number"`
	Status      enums.OrderStatus `json:"status"`
	PORef       string            `json:"po_ref,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	Total       decimal.Decimal   `json:"total"`
	Currency    enums.Currency    `json:"currency"`
	Lines       []LineDetail      `json:"lines"`
	CreatedAt   time.Time         `json:"created_at"`
}

func summaryFromModel(order models.OrderHeader) Summary {
	return Summary{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Subtotal:    order.Subtotal,
		Total:       order.Total,
		Currency:    order.Currency,
		LineCount:   len(order.Lines),
		CreatedAt:   order.CreatedAt,
	}
}

// DetailFromModel maps a persisted order header and its lines to the
// dealer-facing detail view.
func DetailFromModel(order models.OrderHeader) Detail {
	detail := Detail{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		PORef:       order.PORef,
		Notes:       order.Notes,
		Subtotal:    order.Subtotal,
		Total:       order.Total,
		Currency:    order.Currency,
		CreatedAt:   order.CreatedAt,
	}
	for _, line := range order.Lines {
		detail.Lines = append(detail.Lines, LineDetail{
			ProductID:       line.ProductID,
			ProductCode:     line.ProductCode,
			Description:     line.Description,
			PartType:        line.PartType,
			BandCode:        line.BandCode,
			Qty:             line.Qty,
			UnitPrice:       line.UnitPrice,
			LineTotal:       line.LineTotal,
			MinPriceApplied: line.MinPriceApplied,
		})
	}
	return detail
}
