package trade

import (
	"context"

	"go.uber.org/zap"

	"github.com/erp/sync-agent/internal/domain/trade"
)

// OrderIngestService turns externally submitted orders into committed ERP
// rows. Validation happens before any transaction is opened; the repository
// owns atomicity and identifier allocation.
type OrderIngestService struct {
	orders trade.OrderRepository
	logger *zap.Logger
}

// NewOrderIngestService creates a new OrderIngestService
func NewOrderIngestService(orders trade.OrderRepository, logger *zap.Logger) *OrderIngestService {
	return &OrderIngestService{
		orders: orders,
		logger: logger,
	}
}

// Ingest validates and persists one submitted order
func (s *OrderIngestService) Ingest(ctx context.Context, req *trade.OrderRequest) (*OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		s.logger.Warn("Order ingestion failed",
			zap.String("customer", req.CustomerName),
			zap.Int("items", len(req.Items)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Order ingested",
		zap.Int64("order_id", order.ID),
		zap.Int64("sequence", order.Sequence),
		zap.String("total", order.Total.String()),
		zap.Int("lines", len(order.Lines)),
	)
	return toOrderResponse(order), nil
}
