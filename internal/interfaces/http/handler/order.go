package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apptrade "github.com/erp/sync-agent/internal/application/trade"
	"github.com/erp/sync-agent/internal/domain/trade"
	"github.com/erp/sync-agent/internal/interfaces/http/middleware"
)

// OrderHandler accepts externally submitted orders
type OrderHandler struct {
	BaseHandler
	ingestService *apptrade.OrderIngestService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(ingestService *apptrade.OrderIngestService) *OrderHandler {
	return &OrderHandler{ingestService: ingestService}
}

// CreateOrderRequest is the inbound order payload. The customer object must
// be present; only a blank name inside it falls back to the placeholder.
type CreateOrderRequest struct {
	Customer *CustomerPayload   `json:"customer" binding:"required"`
	Items    []OrderItemPayload `json:"items" binding:"required,min=1,dive"`
}

// CustomerPayload identifies the buyer; a blank name falls back to a placeholder
type CustomerPayload struct {
	Name string `json:"name"`
}

// OrderItemPayload is one requested line
type OrderItemPayload struct {
	SKU       string          `json:"sku" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.CreateOrder)
}

// CreateOrder validates and commits one order atomically
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			middleware.HandleValidationError(c, err)
			return
		}
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.ingestService.Ingest(c.Request.Context(), toDomainRequest(&req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

func toDomainRequest(req *CreateOrderRequest) *trade.OrderRequest {
	items := make([]trade.RequestedItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, trade.RequestedItem{
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return &trade.OrderRequest{
		CustomerName: trade.SanitizeCustomerName(req.Customer.Name),
		Items:        items,
	}
}
