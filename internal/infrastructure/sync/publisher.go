package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/erp/sync-agent/internal/domain/catalog"
	"github.com/erp/sync-agent/internal/domain/shared"
)

// maxResponseSize bounds how much of the endpoint's response body is drained (1MB)
const maxResponseSize = 1 * 1024 * 1024

// HTTPPublisher delivers product batches to the external e-commerce endpoint
// as a single POST per cycle. It never retries; the retry policy lives in the
// sync loop's cursor handling.
type HTTPPublisher struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPPublisher creates a publisher with a bounded request timeout
func NewHTTPPublisher(endpoint, token string, timeout time.Duration, logger *zap.Logger) *HTTPPublisher {
	return &HTTPPublisher{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type updatePayload struct {
	Updates []catalog.Product `json:"updates"`
}

// Publish sends the batch and returns a publish error for any network
// failure, timeout, or non-2xx response.
func (p *HTTPPublisher) Publish(ctx context.Context, batch []catalog.Product) error {
	body, err := json.Marshal(updatePayload{Updates: batch})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}
	defer resp.Body.Close()

	// Drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: endpoint returned %d", shared.ErrPublishFailed, resp.StatusCode)
	}

	p.logger.Debug("Batch delivered",
		zap.String("endpoint", p.endpoint),
		zap.Int("products", len(batch)),
	)
	return nil
}
