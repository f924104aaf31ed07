package injector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/jecs/internal/config"
	"github.com/zeusync/jecs/internal/core/storage"
)

func TestInitializeTodoWiresFileStorage(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "error"
	cfg.Storage.Driver = "file"
	cfg.Storage.Path = t.TempDir()

	td, cleanup, err := InitializeTodo(cfg)
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	_, err = td.App.Add(ctx, "wired")
	require.NoError(t, err)
	assert.Len(t, td.View.Rows(), 1)

	store, err := storage.NewFile(cfg.Storage.Path)
	require.NoError(t, err)
	raw, err := store.Fetch(ctx, cfg.Storage.Key)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"title":"wired"`)
}

func TestInitializeRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "error"
	cfg.Engine.ErrorPolicy = "shrug"
	_, _, err := InitializeTodo(cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Log.Level = "error"
	cfg.Storage.Driver = "tape"
	_, _, err = InitializeServer(cfg)
	assert.ErrorIs(t, err, storage.ErrUnknownDriver)
}
