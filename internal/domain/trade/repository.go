package trade

import "context"

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// CreateOrder resolves each requested item against the catalog, allocates
	// the next order id and sequence under a locking read, and writes the
	// header and all lines as a single transaction. Any failure rolls the
	// whole transaction back; no partial rows persist.
	CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error)
}
