package cart

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// cartTTL bounds how long an idle session cart survives. Long enough to
// span a browsing session comfortably; abandoned carts age out.
const cartTTL = 30 * 24 * time.Hour

const keyPrefix = "timevault:cart:"

// RedisStore persists session carts in Redis, one key per session.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]Item, error) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeItems(raw)
}

func (r *RedisStore) Save(ctx context.Context, key string, items []Item) error {
	raw, err := encodeItems(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+key, raw, cartTTL).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}
