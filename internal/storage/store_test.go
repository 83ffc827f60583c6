package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elliot-ia/elliot/internal/config"
)

func TestStores(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(dir string) config.StorageConfig
	}{
		{
			name: "sqlite",
			cfg: func(dir string) config.StorageConfig {
				return config.StorageConfig{Driver: DriverSQLite, Path: filepath.Join(dir, "elliot.db")}
			},
		},
		{
			name: "file",
			cfg: func(dir string) config.StorageConfig {
				return config.StorageConfig{Driver: DriverFile, Path: filepath.Join(dir, "store")}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := Open(ctx, tt.cfg(t.TempDir()))
			require.NoError(t, err)
			defer func() { assert.NoError(t, store.Close()) }()

			_, err = store.Get(ctx, "devlab_comments")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "devlab_comments", []byte(`[{"id":"1"}]`)))
			require.NoError(t, store.Set(ctx, "devlab_settings", []byte(`{"theme":"dark"}`)))

			got, err := store.Get(ctx, "devlab_comments")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"1"}]`, string(got))

			require.NoError(t, store.Set(ctx, "devlab_comments", []byte(`[]`)))
			got, err = store.Get(ctx, "devlab_comments")
			require.NoError(t, err)
			assert.Equal(t, "[]", string(got))

			keys, err := store.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"devlab_comments", "devlab_settings"}, keys)

			require.NoError(t, store.Delete(ctx, "devlab_comments"))
			require.NoError(t, store.Delete(ctx, "devlab_comments"))
			_, err = store.Get(ctx, "devlab_comments")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	cfg := config.StorageConfig{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "elliot.db")}

	first, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "devlab_ideas", []byte(`["x"]`)))
	require.NoError(t, first.Close())

	second, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer second.Close()
	got, err := second.Get(ctx, "devlab_ideas")
	require.NoError(t, err)
	assert.Equal(t, `["x"]`, string(got))
}

func TestFileStore_InvalidKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", `a\b`, ".."} {
		_, err := store.Get(context.Background(), key)
		assert.ErrorContains(t, err, "invalid storage key", key)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: "localstorage", Path: "x"})
	assert.ErrorContains(t, err, "unknown storage driver")
}
