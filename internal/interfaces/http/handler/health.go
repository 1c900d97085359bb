package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/sync-agent/internal/infrastructure/logger"
)

// StorePinger reports whether the ERP store connection is alive.
type StorePinger interface {
	Ping() error
}

// HealthHandler serves the liveness endpoint. It stays up even when the
// store connection could not be established, so operators can distinguish
// an unreachable agent from an unreachable store.
type HealthHandler struct {
	BaseHandler
	store   StorePinger
	version string
	started time.Time
}

// NewHealthHandler creates a new HealthHandler. A nil store means the agent
// is running in store-offline mode.
func NewHealthHandler(store StorePinger, version string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		version: version,
		started: time.Now(),
	}
}

// HealthResponse is the health endpoint payload
type HealthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	StoreConnected bool   `json:"storeConnected"`
	UptimeSeconds  int64  `json:"uptimeSeconds"`
}

// RegisterRoutes registers the health route on the root group
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health answers 200 with the store connectivity flag
func (h *HealthHandler) Health(c *gin.Context) {
	connected := false
	if h.store != nil {
		if err := h.store.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Store ping failed", zap.Error(err))
		} else {
			connected = true
		}
	}

	status := "ok"
	if !connected {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:         status,
		Version:        h.version,
		StoreConnected: connected,
		UptimeSeconds:  int64(time.Since(h.started).Seconds()),
	})
}
