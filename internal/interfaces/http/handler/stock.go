package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/erp/sync-agent/internal/application/catalog"
)

// StockHandler serves on-demand stock lookups
type StockHandler struct {
	BaseHandler
	stockService *appcatalog.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *appcatalog.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// StockResponse is the stock lookup payload
type StockResponse struct {
	SKU   string `json:"sku"`
	Stock int64  `json:"stock"`
}

// RegisterRoutes registers stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stock/:sku", h.GetStock)
}

// GetStock answers the current aggregated stock for one SKU
func (h *StockHandler) GetStock(c *gin.Context) {
	sku := c.Param("sku")

	stock, err := h.stockService.StockBySKU(c.Request.Context(), sku)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, StockResponse{SKU: sku, Stock: stock})
}
