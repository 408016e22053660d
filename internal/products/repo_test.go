package products

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  shop_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  compare_at_price NUMERIC,
  category TEXT NOT NULL,
  images TEXT,
  stock INTEGER NOT NULL DEFAULT 0,
  in_stock INTEGER NOT NULL DEFAULT 1,
  is_active INTEGER NOT NULL DEFAULT 1,
  tags TEXT,
  variants TEXT,
  has_sizes INTEGER NOT NULL DEFAULT 0,
  has_colors INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, shopID uuid.UUID, mutate func(*models.Product)) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		ShopID:   shopID,
		Name:     "Item",
		Price:    10,
		Category: "misc",
		IsActive: true,
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestListPriceAndCategoryFilters(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	seedProduct(t, db, shopID, func(p *models.Product) {
		p.Name = "Budget Watch"
		p.Category = "watches"
		p.Price = 49.99
	})
	seedProduct(t, db, shopID, func(p *models.Product) {
		p.Name = "Premium Watch"
		p.Category = "watches"
		p.Price = 499
	})
	seedProduct(t, db, shopID, func(p *models.Product) {
		p.Name = "Strap"
		p.Category = "accessories"
		p.Price = 15
	})

	min, max := 20.0, 100.0
	rows, total, err := repo.List(ctx, listQuery{
		shopID:   shopID,
		category: "watches",
		minPrice: &min,
		maxPrice: &max,
		limit:    10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Budget Watch", rows[0].Name)
}

func TestListSearchMatchesNameAndTags(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	seedProduct(t, db, shopID, func(p *models.Product) {
		p.Name = "Silver Ring"
		p.Tags = []string{"jewelry", "silver"}
	})
	seedProduct(t, db, shopID, func(p *models.Product) {
		p.Name = "Plain Band"
		p.Tags = []string{"Gold"}
	})
	seedProduct(t, db, shopID, func(p *models.Product) {
		p.Name = "Phone Case"
	})

	rows, total, err := repo.List(ctx, listQuery{shopID: shopID, search: "silver", limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Silver Ring", rows[0].Name)

	rows, total, err = repo.List(ctx, listQuery{shopID: shopID, search: "gold", limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Plain Band", rows[0].Name)
}

func TestListHidesInactiveUnlessIncludeAll(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	seedProduct(t, db, shopID, nil)
	seedProduct(t, db, shopID, func(p *models.Product) { p.IsActive = false })

	_, total, err := repo.List(ctx, listQuery{shopID: shopID, limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = repo.List(ctx, listQuery{shopID: shopID, includeAll: true, limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestListOffsetPagination(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 25; i++ {
		index := i
		seedProduct(t, db, shopID, func(p *models.Product) {
			p.Name = fmt.Sprintf("product-%02d", index)
			// newest first ordering puts product-25 on page one
			p.CreatedAt = base.Add(time.Duration(index) * time.Second)
		})
	}

	rows, total, err := repo.List(ctx, listQuery{shopID: shopID, limit: 10, offset: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, rows, 10)
	assert.Equal(t, "product-15", rows[0].Name)
	assert.Equal(t, "product-06", rows[9].Name)

	// the tail page is partial and total is unchanged
	rows, total, err = repo.List(ctx, listQuery{shopID: shopID, limit: 10, offset: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, rows, 5)
}
