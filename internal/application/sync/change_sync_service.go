package sync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/erp/sync-agent/internal/domain/catalog"
)

// CursorStore persists the sync watermark across process restarts.
type CursorStore interface {
	Read() time.Time
	Write(t time.Time) error
}

// Publisher delivers a detected batch to the external endpoint.
type Publisher interface {
	Publish(ctx context.Context, batch []catalog.Product) error
}

// ChangeSyncService runs one change-detection/publish cycle. The scheduler
// guarantees cycles never overlap; this service only decides whether the
// cursor may advance.
type ChangeSyncService struct {
	feed      catalog.ChangeFeed
	publisher Publisher
	cursor    CursorStore
	logger    *zap.Logger
	now       func() time.Time
}

// NewChangeSyncService creates a new ChangeSyncService
func NewChangeSyncService(feed catalog.ChangeFeed, publisher Publisher, cursor CursorStore, logger *zap.Logger) *ChangeSyncService {
	return &ChangeSyncService{
		feed:      feed,
		publisher: publisher,
		cursor:    cursor,
		logger:    logger,
		now:       time.Now,
	}
}

// RunCycle executes one cycle. The cursor advances to the timestamp captured
// before the detection query, and only when detection came back empty or the
// publish succeeded. A failed publish leaves the cursor untouched so the next
// cycle recomputes an overlapping batch: delivery is at-least-once and the
// receiver deduplicates by SKU.
func (s *ChangeSyncService) RunCycle(ctx context.Context) {
	cycleStart := s.now()
	since := s.cursor.Read()

	batch, err := s.feed.DetectChangedSince(ctx, since)
	if err != nil {
		s.logger.Error("Change detection failed, cycle skipped",
			zap.Time("cursor", since),
			zap.Error(err),
		)
		return
	}

	if len(batch) > 0 {
		if err := s.publisher.Publish(ctx, batch); err != nil {
			s.logger.Warn("Publish failed, cursor unchanged",
				zap.Int("batch_size", len(batch)),
				zap.Time("cursor", since),
				zap.Error(err),
			)
			return
		}
		s.logger.Info("Batch published",
			zap.Int("batch_size", len(batch)),
			zap.Time("cursor", cycleStart),
		)
	}

	if err := s.cursor.Write(cycleStart); err != nil {
		// Non-fatal: the next cycle recomputes from the stale cursor.
		s.logger.Warn("Cursor write failed", zap.Error(err))
	}
}
