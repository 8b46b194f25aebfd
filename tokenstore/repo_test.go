package tokenstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
	"github.com/jrsteele09/voc-portal/tokenstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupRedisRepo(t *testing.T) *tokenstore.RedisRepo {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return tokenstore.NewRedisRepo(client)
}

func setupSQLiteRepo(t *testing.T) *tokenstore.SQLiteRepo {
	t.Helper()
	repo, err := tokenstore.NewSQLiteRepo(context.Background(), filepath.Join(t.TempDir(), "nested", "tokens.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func repos(t *testing.T) map[string]tokenstore.Repo {
	return map[string]tokenstore.Repo{
		"memory": tokenstore.NewInMemoryRepo(),
		"redis":  setupRedisRepo(t),
		"sqlite": setupSQLiteRepo(t),
	}
}

func TestRepo_Contract(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Get(ctx, "browser-a", "token")
			require.ErrorIs(t, err, vocerrors.ErrNotFound)

			require.NoError(t, repo.Upsert(ctx, "browser-a", "token", "first"))
			require.NoError(t, repo.Upsert(ctx, "browser-a", "token", "second"))

			value, err := repo.Get(ctx, "browser-a", "token")
			require.NoError(t, err)
			require.Equal(t, "second", value)

			_, err = repo.Get(ctx, "browser-b", "token")
			require.ErrorIs(t, err, vocerrors.ErrNotFound, "scopes must be isolated")

			require.NoError(t, repo.Delete(ctx, "browser-a", "token"))
			require.NoError(t, repo.Delete(ctx, "browser-a", "token"))
			_, err = repo.Get(ctx, "browser-a", "token")
			require.ErrorIs(t, err, vocerrors.ErrNotFound)

			require.Error(t, repo.Upsert(ctx, "", "token", "value"))
		})
	}
}

func TestSQLiteRepo_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.db")

	repo, err := tokenstore.NewSQLiteRepo(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, "browser-a", "token", "kept"))
	require.NoError(t, repo.Close())

	reopened, err := tokenstore.NewSQLiteRepo(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get(ctx, "browser-a", "token")
	require.NoError(t, err)
	require.Equal(t, "kept", value)
}

type storeConfig struct {
	kind string
	addr string
	path string
}

func (c storeConfig) GetTokenStore() string    { return c.kind }
func (c storeConfig) GetRedisAddr() string     { return c.addr }
func (c storeConfig) GetRedisPassword() string { return "" }
func (c storeConfig) GetRedisDB() int          { return 0 }
func (c storeConfig) GetSQLitePath() string    { return c.path }

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		repo, closeFn, err := tokenstore.Open(ctx, storeConfig{kind: "memory"})
		require.NoError(t, err)
		require.IsType(t, &tokenstore.InMemoryRepo{}, repo)
		require.NoError(t, closeFn())
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		repo, closeFn, err := tokenstore.Open(ctx, storeConfig{kind: "redis", addr: mr.Addr()})
		require.NoError(t, err)
		require.IsType(t, &tokenstore.RedisRepo{}, repo)
		require.NoError(t, closeFn())
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		_, _, err := tokenstore.Open(ctx, storeConfig{kind: "redis", addr: addr})
		require.Error(t, err)
	})

	t.Run("sqlite", func(t *testing.T) {
		repo, closeFn, err := tokenstore.Open(ctx, storeConfig{kind: "sqlite", path: filepath.Join(t.TempDir(), "t.db")})
		require.NoError(t, err)
		require.IsType(t, &tokenstore.SQLiteRepo{}, repo)
		require.NoError(t, closeFn())
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := tokenstore.Open(ctx, storeConfig{kind: "etcd"})
		require.ErrorIs(t, err, vocerrors.ErrUnknownStore)
	})
}
