package profile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/mas-client/internal/constants"
	"github.com/fivetwenty-io/mas-client/internal/profile"
	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

func newStores(t *testing.T) map[string]profile.Store {
	t.Helper()

	return map[string]profile.Store{
		"memory": profile.NewMemoryStore(),
		"file":   profile.NewFileStore(filepath.Join(t.TempDir(), "nested", "servers.yml")),
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestStore_Lifecycle(t *testing.T) {
	t.Parallel()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()

			require.NoError(t, store.Put(ctx, &mas.Server{Name: "prod", Host: "mas.example.com", Username: "admin", Password: "secret"}))
			require.NoError(t, store.Put(ctx, &mas.Server{Name: "dev box", Host: "localhost", Port: 8443, RootPath: "/api"}))

			prod, err := store.Get(ctx, "prod")
			require.NoError(t, err)
			assert.Equal(t, "mas.example.com", prod.Host)
			assert.Equal(t, 443, prod.Port)
			assert.Equal(t, "/mas", prod.RootPath)
			assert.Equal(t, "https", prod.Scheme)

			servers, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, servers, 2)
			assert.Equal(t, "dev box", servers[0].Name)
			assert.Equal(t, "prod", servers[1].Name)

			_, err = store.Current(ctx)
			require.ErrorIs(t, err, constants.ErrServerNotFound)

			require.NoError(t, store.Use(ctx, "prod"))

			current, err := store.Current(ctx)
			require.NoError(t, err)
			assert.Equal(t, "prod", current.Name)

			require.ErrorIs(t, store.Use(ctx, "missing"), constants.ErrServerNotFound)

			require.NoError(t, store.Put(ctx, &mas.Server{Name: "prod", Host: "mas2.example.com"}))
			prod, err = store.Get(ctx, "prod")
			require.NoError(t, err)
			assert.Equal(t, "mas2.example.com", prod.Host)

			require.NoError(t, store.Delete(ctx, "prod"))
			_, err = store.Current(ctx)
			require.ErrorIs(t, err, constants.ErrServerNotFound)

			servers, err = store.List(ctx)
			require.NoError(t, err)
			assert.Len(t, servers, 1)

			require.ErrorIs(t, store.Delete(ctx, "prod"), constants.ErrServerNotFound)
			require.NoError(t, store.Close())
		})
	}
}

func TestStore_PutRequiresName(t *testing.T) {
	t.Parallel()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := store.Put(context.Background(), &mas.Server{Host: "mas.example.com"})
			require.ErrorIs(t, err, constants.ErrServerNameRequired)
		})
	}
}

func TestFileStore_Permissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "servers.yml")
	store := profile.NewFileStore(path)

	require.NoError(t, store.Put(context.Background(), &mas.Server{Name: "prod", Host: "mas.example.com", Password: "secret"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "host: mas.example.com")
}

func TestNewStoreFromConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store, err := profile.NewStoreFromConfig(ctx, nil)
	require.NoError(t, err)
	assert.IsType(t, &profile.BucketStore{}, store)

	store, err = profile.NewStoreFromConfig(ctx, profile.DefaultStoreConfig(t.TempDir()))
	require.NoError(t, err)
	assert.IsType(t, &profile.FileStore{}, store)

	_, err = profile.NewStoreFromConfig(ctx, &profile.StoreConfig{Type: profile.StoreTypeFile})
	require.ErrorIs(t, err, constants.ErrStorePathRequired)

	_, err = profile.NewStoreFromConfig(ctx, &profile.StoreConfig{Type: profile.StoreTypeNATS})
	require.ErrorIs(t, err, constants.ErrNATSURLRequired)

	_, err = profile.NewStoreFromConfig(ctx, &profile.StoreConfig{Type: "etcd"})
	require.ErrorIs(t, err, constants.ErrUnknownStoreType)
}
