package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/sync-agent/internal/domain/shared"
	"github.com/erp/sync-agent/internal/interfaces/http/dto"
)

// StoreGate rejects store-backed routes while the agent runs without a store
// connection. Routes stay registered in offline mode; the gate answers 503
// before any handler touches a repository. The health endpoint is registered
// outside the gated group and keeps answering.
func StoreGate(connected func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !connected() {
			code := dto.NormalizeErrorCode(shared.ErrStoreOffline.Code)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				dto.NewErrorResponse(code, shared.ErrStoreOffline.Message))
			return
		}
		c.Next()
	}
}
