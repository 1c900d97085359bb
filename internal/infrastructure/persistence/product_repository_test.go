package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&ProductModel{}, &LocationStockModel{})
	require.NoError(t, err)

	return db
}

// seedProduct inserts a product and pins its updated_at, which gorm would
// otherwise overwrite on create.
func seedProduct(t *testing.T, db *gorm.DB, p ProductModel, updatedAt time.Time) {
	require.NoError(t, db.Create(&p).Error)
	require.NoError(t, db.Model(&ProductModel{}).Where("id = ?", p.ID).
		UpdateColumn("updated_at", updatedAt).Error)
}

func seedStock(t *testing.T, db *gorm.DB, s LocationStockModel, updatedAt time.Time) {
	require.NoError(t, db.Create(&s).Error)
	require.NoError(t, db.Model(&LocationStockModel{}).Where("id = ?", s.ID).
		UpdateColumn("updated_at", updatedAt).Error)
}

func TestGormProductRepository_DetectChangedSince(t *testing.T) {
	cursor := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	before := cursor.Add(-time.Hour)
	after := cursor.Add(time.Hour)
	ctx := context.Background()

	t.Run("returns empty slice when nothing changed", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		seedProduct(t, db, ProductModel{ID: 1, Code: "P-001", Barcode: "A", Name: "Widget",
			SalePrice: decimal.NewFromFloat(10)}, before)
		seedStock(t, db, LocationStockModel{ID: 1, ProductID: 1, LocationID: 1, Quantity: 5}, before)

		products, err := repo.DetectChangedSince(ctx, cursor)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("picks up products whose master row changed", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		seedProduct(t, db, ProductModel{ID: 1, Code: "P-001", Barcode: "A", Name: "Widget",
			SalePrice: decimal.NewFromFloat(10)}, after)
		seedStock(t, db, LocationStockModel{ID: 1, ProductID: 1, LocationID: 1, Quantity: 5}, before)

		products, err := repo.DetectChangedSince(ctx, cursor)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "A", products[0].SKU)
		assert.Equal(t, "Widget", products[0].Name)
		assert.Equal(t, int64(5), products[0].TotalStock)
	})

	t.Run("picks up products whose stock row changed", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		seedProduct(t, db, ProductModel{ID: 1, Code: "P-001", Barcode: "A", Name: "Widget",
			SalePrice: decimal.NewFromFloat(10)}, before)
		seedStock(t, db, LocationStockModel{ID: 1, ProductID: 1, LocationID: 1, Quantity: 5}, after)

		products, err := repo.DetectChangedSince(ctx, cursor)
		require.NoError(t, err)
		require.Len(t, products, 1)
	})

	t.Run("sums all locations even when only one stock row changed", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		seedProduct(t, db, ProductModel{ID: 1, Code: "P-001", Barcode: "A", Name: "Widget",
			SalePrice: decimal.NewFromFloat(10)}, before)
		seedStock(t, db, LocationStockModel{ID: 1, ProductID: 1, LocationID: 1, Quantity: 5}, before)
		seedStock(t, db, LocationStockModel{ID: 2, ProductID: 1, LocationID: 2, Quantity: 3}, after)

		products, err := repo.DetectChangedSince(ctx, cursor)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, int64(8), products[0].TotalStock, "unchanged rows still count toward the total")
	})

	t.Run("clamps negative location stock to zero instead of subtracting", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		seedProduct(t, db, ProductModel{ID: 1, Code: "P-001", Barcode: "A", Name: "Widget",
			SalePrice: decimal.NewFromFloat(10)}, after)
		seedStock(t, db, LocationStockModel{ID: 1, ProductID: 1, LocationID: 1, Quantity: 7}, before)
		seedStock(t, db, LocationStockModel{ID: 2, ProductID: 1, LocationID: 2, Quantity: -3}, before)

		seedProduct(t, db, ProductModel{ID: 2, Code: "P-002", Barcode: "B", Name: "Gadget",
			SalePrice: decimal.NewFromFloat(20)}, after)
		seedStock(t, db, LocationStockModel{ID: 3, ProductID: 2, LocationID: 1, Quantity: -4}, before)

		products, err := repo.DetectChangedSince(ctx, cursor)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, int64(7), products[0].TotalStock, "negative row must not subtract")
		assert.Equal(t, int64(0), products[1].TotalStock, "all-negative stock aggregates to zero")
	})

	t.Run("excludes products without a SKU", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		seedProduct(t, db, ProductModel{ID: 1, Code: "P-001", Barcode: "", Name: "No Barcode",
			SalePrice: decimal.NewFromFloat(10)}, after)
		seedProduct(t, db, ProductModel{ID: 2, Code: "P-002", Barcode: "B", Name: "Gadget",
			SalePrice: decimal.NewFromFloat(20)}, after)

		products, err := repo.DetectChangedSince(ctx, cursor)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "B", products[0].SKU)
	})

	t.Run("includes products with no stock rows at zero stock", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		seedProduct(t, db, ProductModel{ID: 1, Code: "P-001", Barcode: "A", Name: "Widget",
			SalePrice: decimal.NewFromFloat(10)}, after)

		products, err := repo.DetectChangedSince(ctx, cursor)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, int64(0), products[0].TotalStock)
	})
}

func TestGormProductRepository_StockBySKU(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("aggregates stock across locations with clamping", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		seedProduct(t, db, ProductModel{ID: 1, Code: "P-001", Barcode: "A", Name: "Widget",
			SalePrice: decimal.NewFromFloat(10)}, now)
		seedStock(t, db, LocationStockModel{ID: 1, ProductID: 1, LocationID: 1, Quantity: 4}, now)
		seedStock(t, db, LocationStockModel{ID: 2, ProductID: 1, LocationID: 2, Quantity: 6}, now)
		seedStock(t, db, LocationStockModel{ID: 3, ProductID: 1, LocationID: 3, Quantity: -5}, now)

		stock, err := repo.StockBySKU(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, int64(10), stock)
	})

	t.Run("returns zero for unknown SKU", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		stock, err := repo.StockBySKU(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Equal(t, int64(0), stock)
	})
}
