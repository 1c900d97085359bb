package sync

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/erp/sync-agent/internal/domain/shared"
)

// bootstrapWindow bounds the first sync window when no cursor has been
// persisted yet, instead of replaying unbounded history.
const bootstrapWindow = 60 * time.Second

type cursorDocument struct {
	LastSync time.Time `json:"lastSync"`
}

// FileCursorStore persists the last-successful-sync watermark as a single
// JSON document on local disk. The sync cycle is its only writer.
type FileCursorStore struct {
	path   string
	logger *zap.Logger
}

// NewFileCursorStore creates a cursor store backed by the given file path
func NewFileCursorStore(path string, logger *zap.Logger) *FileCursorStore {
	return &FileCursorStore{path: path, logger: logger}
}

// Read returns the persisted cursor, or now minus the bootstrap window when
// the file is absent or unreadable.
func (s *FileCursorStore) Read() time.Time {
	fallback := time.Now().Add(-bootstrapWindow)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Cursor file unreadable, using bootstrap window",
				zap.String("path", s.path), zap.Error(err))
		}
		return fallback
	}

	var doc cursorDocument
	if err := json.Unmarshal(data, &doc); err != nil || doc.LastSync.IsZero() {
		s.logger.Warn("Cursor file corrupt, using bootstrap window",
			zap.String("path", s.path), zap.Error(err))
		return fallback
	}
	return doc.LastSync
}

// Write persists the cursor atomically (temp file plus rename). A failed
// write is reported but must be treated as non-fatal by the caller: the next
// cycle simply recomputes from the stale cursor.
func (s *FileCursorStore) Write(t time.Time) error {
	data, err := json.Marshal(cursorDocument{LastSync: t.UTC()})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersistence, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersistence, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersistence, err)
	}
	return nil
}
