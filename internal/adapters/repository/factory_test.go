package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rowdraraz100/RazNotes/internal/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Local backends", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.Default()
		cfg.StateFile = filepath.Join(dir, "state.json")
		cfg.SQLitePath = filepath.Join(dir, "state.sqlite")

		for _, backend := range []string{config.BackendMemory, config.BackendFile, config.BackendSQLite} {
			cfg.StoreBackend = backend
			store, closeFn, err := Open(ctx, cfg, nil)
			require.NoError(t, err, backend)
			assert.NoError(t, store.Ping(ctx))
			assert.NoError(t, closeFn())
		}
	})

	t.Run("Success: File backend points at the configured path", func(t *testing.T) {
		cfg := config.Default()
		cfg.StoreBackend = config.BackendFile
		cfg.StateFile = filepath.Join(t.TempDir(), "nested", "state.json")

		store, _, err := Open(ctx, cfg, nil)
		require.NoError(t, err)

		fileStore, ok := store.(*FileStateStore)
		require.True(t, ok)
		assert.Equal(t, cfg.StateFile, fileStore.Path())
	})

	t.Run("Error: Redis backend without client", func(t *testing.T) {
		cfg := config.Default()
		cfg.StoreBackend = config.BackendRedis

		_, _, err := Open(ctx, cfg, nil)
		assert.Error(t, err)
	})

	t.Run("Error: Unknown backend", func(t *testing.T) {
		cfg := config.Default()
		cfg.StoreBackend = "tape"

		_, _, err := Open(ctx, cfg, nil)
		assert.ErrorIs(t, err, config.ErrUnknownBackend)
	})
}
