package trade

import (
	"github.com/shopspring/decimal"

	"github.com/erp/sync-agent/internal/domain/trade"
)

// OrderResponse is the committed-order view returned to the submitter
type OrderResponse struct {
	OrderID      int64               `json:"orderId"`
	Sequence     int64               `json:"sequence"`
	CustomerName string              `json:"customerName"`
	Total        decimal.Decimal     `json:"total"`
	CreatedAt    string              `json:"createdAt"`
	Lines        []OrderLineResponse `json:"lines"`
}

// OrderLineResponse is one committed line within an order
type OrderLineResponse struct {
	LineNumber  int             `json:"lineNumber"`
	ProductCode string          `json:"productCode"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

func toOrderResponse(order *trade.Order) *OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			LineNumber:  line.LineNumber,
			ProductCode: line.ProductCode,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
	}
	return &OrderResponse{
		OrderID:      order.ID,
		Sequence:     order.Sequence,
		CustomerName: order.CustomerName,
		Total:        order.Total,
		CreatedAt:    order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Lines:        lines,
	}
}
