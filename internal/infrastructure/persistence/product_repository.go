package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/erp/sync-agent/internal/domain/catalog"
	"github.com/erp/sync-agent/internal/domain/shared"
)

// clampedStockExpr sums location stock treating negative quantities as zero.
// Negative rows are upstream data-entry inconsistencies and must never
// subtract from the aggregate.
const clampedStockExpr = "COALESCE(SUM(CASE WHEN s.quantity > 0 THEN s.quantity ELSE 0 END), 0)"

// GormProductRepository implements the catalog read model using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

type changedProductRow struct {
	SKU        string
	Name       string
	Price      decimal.Decimal
	TotalStock int64
}

// DetectChangedSince returns every product whose master or stock rows changed
// strictly after since, aggregated by SKU. Products without a SKU cannot be
// addressed downstream and are excluded.
func (r *GormProductRepository) DetectChangedSince(ctx context.Context, since time.Time) ([]catalog.Product, error) {
	var rows []changedProductRow
	err := r.db.WithContext(ctx).
		Table("products AS p").
		Select("p.barcode AS sku, MAX(p.name) AS name, MAX(p.sale_price) AS price, "+clampedStockExpr+" AS total_stock").
		Joins("LEFT JOIN location_stocks s ON s.product_id = p.id").
		Where("p.barcode IS NOT NULL AND p.barcode <> ''").
		Group("p.barcode").
		// The time filter must apply to the whole group, not the joined rows:
		// a WHERE on s.updated_at would drop a product's unchanged stock rows
		// from the sum.
		Having("MAX(p.updated_at) > ? OR MAX(s.updated_at) > ?", since, since).
		Order("p.barcode").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDataSource, err)
	}

	products := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, catalog.Product{
			SKU:        row.SKU,
			Name:       row.Name,
			TotalStock: row.TotalStock,
			Price:      row.Price,
		})
	}
	return products, nil
}

// StockBySKU returns the aggregated non-negative stock for one SKU. An
// unknown SKU yields 0, not an error.
func (r *GormProductRepository) StockBySKU(ctx context.Context, sku string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("products AS p").
		Select(clampedStockExpr).
		Joins("LEFT JOIN location_stocks s ON s.product_id = p.id").
		Where("p.barcode = ?", sku).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrDataSource, err)
	}
	return total, nil
}
