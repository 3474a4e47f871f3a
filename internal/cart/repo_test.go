package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  product_code TEXT NOT NULL,
  description TEXT NOT NULL,
  part_type TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	referencePrices := `
CREATE TABLE IF NOT EXISTS reference_prices (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  trade_price NUMERIC NOT NULL,
  retail_price NUMERIC NOT NULL,
  minimum_price NUMERIC,
  currency TEXT NOT NULL DEFAULT 'GBP',
  created_at DATETIME,
  updated_at DATETIME
);`
	bandPrices := `
CREATE TABLE IF NOT EXISTS band_prices (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  band_code TEXT NOT NULL,
  price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  dealer_account_id TEXT NOT NULL,
  dealer_user_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  qty INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	for _, ddl := range []string{products, referencePrices, bandPrices, carts, cartItems} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedCartProduct(t *testing.T, db *gorm.DB, code string) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		ProductCode: code,
		Description: "part " + code,
		PartType:    enums.PartTypeGenuine,
		IsActive:    true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	accountID := uuid.New()
	userID := uuid.New()

	first, err := repo.GetOrCreate(context.Background(), accountID, userID)
	require.NoError(t, err)
	second, err := repo.GetOrCreate(context.Background(), accountID, userID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same dealer user must get the same cart")

	other, err := repo.GetOrCreate(context.Background(), accountID, uuid.New())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID, "different user gets a different cart")
}

func TestItemLifecycle(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	product := seedCartProduct(t, db, "BP-1001")

	cart, err := repo.GetOrCreate(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)

	item := &models.CartItem{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: product.ID,
		Qty:       2,
	}
	require.NoError(t, repo.CreateItem(context.Background(), item))

	found, err := repo.FindItem(context.Background(), cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Qty)

	require.NoError(t, repo.UpdateItemQty(context.Background(), item.ID, 5))
	found, err = repo.FindItem(context.Background(), cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.Qty)

	loaded, err := repo.FindByID(context.Background(), cart.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	require.NotNil(t, loaded.Items[0].Product)
	assert.Equal(t, "BP-1001", loaded.Items[0].Product.ProductCode)

	require.NoError(t, repo.ClearItems(context.Background(), cart.ID))
	loaded, err = repo.FindByID(context.Background(), cart.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
}
