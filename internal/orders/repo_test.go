package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
	"github.com/morganshaw/partslink-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	orderHeaders := `
CREATE TABLE IF NOT EXISTS order_headers (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL,
  dealer_account_id TEXT NOT NULL,
  dealer_user_id TEXT NOT NULL,
  status TEXT NOT NULL,
  po_ref TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  subtotal NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  currency TEXT NOT NULL DEFAULT 'GBP',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderLines := `
CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_code TEXT NOT NULL,
  description TEXT NOT NULL,
  part_type TEXT NOT NULL,
  band_code TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  min_price_applied INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orderHeaders).Error)
	require.NoError(t, db.Exec(orderLines).Error)
	return db
}

func buildOrder(dealerID uuid.UUID, number string, createdAt time.Time) *models.OrderHeader {
	return &models.OrderHeader{
		ID:              uuid.New(),
		OrderNumber:     number,
		DealerAccountID: dealerID,
		DealerUserID:    uuid.New(),
		Status:          enums.OrderStatusProcessing,
		Subtotal:        decimal.NewFromInt(100),
		Total:           decimal.NewFromInt(100),
		Currency:        enums.CurrencyGBP,
		CreatedAt:       createdAt,
		Lines: []models.OrderLine{
			{
				ID:          uuid.New(),
				ProductID:   uuid.New(),
				ProductCode: "BP-1001",
				Description: "brake pads",
				PartType:    enums.PartTypeGenuine,
				BandCode:    "B1",
				Qty:         2,
				UnitPrice:   decimal.NewFromInt(50),
				LineTotal:   decimal.NewFromInt(100),
			},
		},
	}
}

func TestCreatePersistsHeaderAndLines(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	dealerID := uuid.New()

	created, err := repo.Create(context.Background(), buildOrder(dealerID, "ORD-20250812-0001", time.Now().UTC()))
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20250812-0001", found.OrderNumber)
	require.Len(t, found.Lines, 1)
	assert.Equal(t, "BP-1001", found.Lines[0].ProductCode)
	assert.True(t, found.Subtotal.Equal(decimal.NewFromInt(100)))
}

func TestCountCreatedBetween(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	dealerID := uuid.New()

	today := time.Date(2025, 8, 12, 10, 0, 0, 0, time.UTC)
	yesterday := today.Add(-24 * time.Hour)

	_, err := repo.Create(context.Background(), buildOrder(dealerID, "ORD-20250812-0001", today))
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), buildOrder(dealerID, "ORD-20250812-0002", today.Add(time.Hour)))
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), buildOrder(dealerID, "ORD-20250811-0001", yesterday))
	require.NoError(t, err)

	dayStart := time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC)
	count, err := repo.CountCreatedBetween(context.Background(), dayStart, dayStart.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestListByDealerPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	dealerID := uuid.New()
	otherDealer := uuid.New()

	base := time.Date(2025, 8, 12, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(context.Background(),
			buildOrder(dealerID, fmt.Sprintf("ORD-20250812-%04d", i+1), base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}
	_, err := repo.Create(context.Background(), buildOrder(otherDealer, "ORD-20250812-0099", base))
	require.NoError(t, err)

	page, err := repo.ListByDealer(context.Background(), dealerID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Orders, 2)
	assert.Equal(t, "ORD-20250812-0003", page.Orders[0].OrderNumber, "newest first")
	require.NotEmpty(t, page.NextCursor)

	next, err := repo.ListByDealer(context.Background(), dealerID, pagination.Params{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, next.Orders, 1)
	assert.Equal(t, "ORD-20250812-0001", next.Orders[0].OrderNumber)
	assert.Empty(t, next.NextCursor)
}

func TestUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	created, err := repo.Create(context.Background(), buildOrder(uuid.New(), "ORD-20250812-0001", time.Now().UTC()))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(context.Background(), created.ID, enums.OrderStatusShipped))

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, found.Status)
}
