package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
	"github.com/redis/go-redis/v9"
)

var _ Repo = (*RedisRepo)(nil)

// RedisRepo shares stored tokens between portal replicas. Entries carry no
// TTL, like browser local storage; expiry is judged from the token itself.
type RedisRepo struct {
	client *redis.Client
	prefix string
}

func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{
		client: client,
		prefix: "voc:store:",
	}
}

// DialRedis connects and pings the server before handing the client back.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("[tokenstore DialRedis] ping %s: %w", addr, err)
	}
	return client, nil
}

func (r *RedisRepo) key(scope, key string) string {
	return r.prefix + scope + ":" + key
}

func (r *RedisRepo) Upsert(ctx context.Context, scope, key, value string) error {
	if scope == "" {
		return fmt.Errorf("scope is required")
	}
	return r.client.Set(ctx, r.key(scope, key), value, 0).Err()
}

func (r *RedisRepo) Get(ctx context.Context, scope, key string) (string, error) {
	val, err := r.client.Get(ctx, r.key(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", vocerrors.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisRepo) Delete(ctx context.Context, scope, key string) error {
	return r.client.Del(ctx, r.key(scope, key)).Err()
}
