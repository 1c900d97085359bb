package catalog

import (
	"context"
	"time"
)

// ChangeFeed reads products whose source rows were modified after a watermark.
type ChangeFeed interface {
	// DetectChangedSince returns every product whose master or stock rows
	// changed strictly after since, aggregated by SKU. Products without a SKU
	// are excluded; negative location stocks count as zero. An empty result
	// is not an error.
	DetectChangedSince(ctx context.Context, since time.Time) ([]Product, error)
}

// StockReader returns the aggregated non-negative stock for a single SKU.
type StockReader interface {
	// StockBySKU returns 0 for an unknown SKU rather than an error.
	StockBySKU(ctx context.Context, sku string) (int64, error)
}
