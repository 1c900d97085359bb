package sync

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/sync-agent/internal/domain/shared"
)

func TestFileCursorStore_Read(t *testing.T) {
	t.Run("returns bootstrap window when file is absent", func(t *testing.T) {
		store := NewFileCursorStore(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())

		got := store.Read()
		expected := time.Now().Add(-bootstrapWindow)
		assert.WithinDuration(t, expected, got, 2*time.Second)
	})

	t.Run("returns bootstrap window for corrupt content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cursor.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		store := NewFileCursorStore(path, zap.NewNop())

		got := store.Read()
		assert.WithinDuration(t, time.Now().Add(-bootstrapWindow), got, 2*time.Second)
	})

	t.Run("round-trips a written cursor", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cursor.json")
		store := NewFileCursorStore(path, zap.NewNop())

		cursor := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
		require.NoError(t, store.Write(cursor))

		assert.True(t, store.Read().Equal(cursor))
	})

	t.Run("persists the documented JSON shape", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cursor.json")
		store := NewFileCursorStore(path, zap.NewNop())

		require.NoError(t, store.Write(time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc map[string]string
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "2026-08-29T10:30:00Z", doc["lastSync"])
	})
}

func TestFileCursorStore_Write(t *testing.T) {
	t.Run("reports a persistence error for an unwritable path", func(t *testing.T) {
		store := NewFileCursorStore(filepath.Join(t.TempDir(), "no-such-dir", "cursor.json"), zap.NewNop())

		err := store.Write(time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrPersistence)
	})
}
