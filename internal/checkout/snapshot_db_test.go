package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/internal/cart"
	"github.com/morganshaw/partslink-backend/internal/catalog"
	"github.com/morganshaw/partslink-backend/internal/dealers"
	"github.com/morganshaw/partslink-backend/internal/orders"
	"github.com/morganshaw/partslink-backend/internal/pricing"
	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (g gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

func setupCheckoutTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS dealer_accounts (
  id TEXT PRIMARY KEY,
  account_number TEXT NOT NULL,
  name TEXT NOT NULL,
  entitlement TEXT NOT NULL,
  status TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS dealer_band_assignments (
  id TEXT PRIMARY KEY,
  dealer_account_id TEXT NOT NULL,
  part_type TEXT NOT NULL,
  band_code TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  product_code TEXT NOT NULL,
  description TEXT NOT NULL,
  part_type TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS reference_prices (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  trade_price NUMERIC NOT NULL,
  retail_price NUMERIC NOT NULL,
  minimum_price NUMERIC,
  currency TEXT NOT NULL DEFAULT 'GBP',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS band_prices (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  band_code TEXT NOT NULL,
  price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  dealer_account_id TEXT NOT NULL,
  dealer_user_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  qty INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_headers (
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
);`,
		`CREATE TABLE IF NOT EXISTS order_lines (
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
);`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func TestPlacedOrderKeepsPricesAfterSourceDataChanges(t *testing.T) {
	db := setupCheckoutTestDB(t)
	ctx := context.Background()

	dealer := &models.DealerAccount{
		ID:            uuid.New(),
		AccountNumber: "D-2001",
		Name:          "Brakeline Motors",
		Entitlement:   enums.EntitlementShowAll,
		Status:        enums.DealerStatusActive,
	}
	require.NoError(t, db.Create(dealer).Error)
	require.NoError(t, db.Create(&models.DealerBandAssignment{
		ID:              uuid.New(),
		DealerAccountID: dealer.ID,
		PartType:        enums.PartTypeGenuine,
		BandCode:        "B1",
	}).Error)

	product := &models.Product{
		ID:          uuid.New(),
		ProductCode: "BP-1001",
		Description: "brake pads",
		PartType:    enums.PartTypeGenuine,
		IsActive:    true,
		ReferencePrice: &models.ReferencePrice{
			ID:          uuid.New(),
			TradePrice:  money("40.00"),
			RetailPrice: money("60.00"),
			Currency:    enums.CurrencyGBP,
		},
		BandPrices: []models.BandPrice{
			{ID: uuid.New(), BandCode: "B1", Price: money("50.00")},
		},
	}
	require.NoError(t, db.Create(product).Error)

	dealersRepo := dealers.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	cartRepo := cart.NewRepository(db)
	ordersRepo := orders.NewRepository(db)

	identity := cart.Identity{DealerAccountID: dealer.ID, DealerUserID: uuid.New()}
	basket, err := cartRepo.GetOrCreate(ctx, identity.DealerAccountID, identity.DealerUserID)
	require.NoError(t, err)
	require.NoError(t, cartRepo.CreateItem(ctx, &models.CartItem{
		ID:        uuid.New(),
		CartID:    basket.ID,
		ProductID: product.ID,
		Qty:       2,
	}))

	pricingService, err := pricing.NewService(catalogRepo, dealersRepo, nil)
	require.NoError(t, err)
	cartService, err := cart.NewService(cartRepo, catalogRepo, pricingService)
	require.NoError(t, err)
	svc, err := NewService(dealersRepo, cartService, cartRepo, ordersRepo, gormTxRunner{db: db})
	require.NoError(t, err)

	detail, err := svc.PlaceOrder(ctx, identity, PlaceOrderInput{})
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	require.True(t, detail.Lines[0].UnitPrice.Equal(money("50.00")))
	require.True(t, detail.Subtotal.Equal(money("100.00")))

	// Rewrite every pricing input the snapshot was derived from.
	require.NoError(t, db.Model(&models.BandPrice{}).
		Where("product_id = ?", product.ID).
		Update("price", decimal.RequireFromString("80.00")).Error)
	require.NoError(t, db.Model(&models.DealerBandAssignment{}).
		Where("dealer_account_id = ?", dealer.ID).
		Update("band_code", "B9").Error)
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("is_active", false).Error)

	persisted, err := ordersRepo.FindByID(ctx, detail.ID)
	require.NoError(t, err)
	require.Len(t, persisted.Lines, 1)
	line := persisted.Lines[0]
	assert.True(t, line.UnitPrice.Equal(money("50.00")), "unit price changed after checkout: %s", line.UnitPrice)
	assert.True(t, line.LineTotal.Equal(money("100.00")))
	assert.Equal(t, "B1", line.BandCode)
	assert.False(t, line.MinPriceApplied)
	assert.True(t, persisted.Subtotal.Equal(money("100.00")))
	assert.True(t, persisted.Total.Equal(money("100.00")))

	emptied, err := cartRepo.FindByID(ctx, basket.ID)
	require.NoError(t, err)
	assert.Empty(t, emptied.Items, "checkout should clear the cart")
}
