package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/sync-agent/internal/domain/catalog"
	"github.com/erp/sync-agent/internal/domain/shared"
)

func sampleBatch() []catalog.Product {
	return []catalog.Product{
		{SKU: "A", Name: "Widget", TotalStock: 7, Price: decimal.NewFromFloat(9.5)},
		{SKU: "B", Name: "Gadget", TotalStock: 0, Price: decimal.NewFromFloat(20)},
	}
}

func TestHTTPPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers the batch with bearer credential and updates envelope", func(t *testing.T) {
		var gotAuth, gotContentType string
		var gotBody struct {
			Updates []catalog.Product `json:"updates"`
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		publisher := NewHTTPPublisher(server.URL, "outbound-secret", 5*time.Second, zap.NewNop())
		err := publisher.Publish(ctx, sampleBatch())

		require.NoError(t, err)
		assert.Equal(t, "Bearer outbound-secret", gotAuth)
		assert.Equal(t, "application/json", gotContentType)
		require.Len(t, gotBody.Updates, 2)
		assert.Equal(t, "A", gotBody.Updates[0].SKU)
		assert.Equal(t, int64(7), gotBody.Updates[0].TotalStock)
	})

	t.Run("fails on non-2xx response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		publisher := NewHTTPPublisher(server.URL, "token", 5*time.Second, zap.NewNop())
		err := publisher.Publish(ctx, sampleBatch())

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrPublishFailed)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("fails when the endpoint exceeds the timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer func() {
			close(release)
			server.Close()
		}()

		publisher := NewHTTPPublisher(server.URL, "token", 50*time.Millisecond, zap.NewNop())
		err := publisher.Publish(ctx, sampleBatch())

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrPublishFailed)
	})

	t.Run("fails on an unreachable endpoint", func(t *testing.T) {
		publisher := NewHTTPPublisher("http://127.0.0.1:1", "token", time.Second, zap.NewNop())
		err := publisher.Publish(ctx, sampleBatch())
		assert.ErrorIs(t, err, shared.ErrPublishFailed)
	})
}
