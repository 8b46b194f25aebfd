package tokenstore

import (
	"context"
	"fmt"

	"github.com/jrsteele09/voc-portal/internal/config"
	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
)

// Open builds the Repo selected by cfg. The returned close function releases
// any connection held by the backend.
func Open(ctx context.Context, cfg config.StoreConfig) (Repo, func() error, error) {
	switch cfg.GetTokenStore() {
	case config.StoreMemory:
		return NewInMemoryRepo(), func() error { return nil }, nil
	case config.StoreRedis:
		client, err := DialRedis(ctx, cfg.GetRedisAddr(), cfg.GetRedisPassword(), cfg.GetRedisDB())
		if err != nil {
			return nil, nil, err
		}
		return NewRedisRepo(client), client.Close, nil
	case config.StoreSQLite:
		repo, err := NewSQLiteRepo(ctx, cfg.GetSQLitePath())
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("[tokenstore Open] %q: %w", cfg.GetTokenStore(), vocerrors.ErrUnknownStore)
	}
}
