package catalog

import (
	"context"
	"strings"

	"github.com/erp/sync-agent/internal/domain/catalog"
	"github.com/erp/sync-agent/internal/domain/shared"
)

// StockService answers single-SKU stock lookups
type StockService struct {
	stocks catalog.StockReader
}

// NewStockService creates a new StockService
func NewStockService(stocks catalog.StockReader) *StockService {
	return &StockService{stocks: stocks}
}

// StockBySKU returns the aggregated non-negative stock for one SKU. An
// unknown SKU deliberately answers 0 rather than an error.
func (s *StockService) StockBySKU(ctx context.Context, sku string) (int64, error) {
	if strings.TrimSpace(sku) == "" {
		return 0, shared.NewValidationError("SKU is required")
	}
	return s.stocks.StockBySKU(ctx, sku)
}
