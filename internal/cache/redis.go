package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// RedisStore keeps cache entries in Redis; expiry is native to Redis
// RedisStore 使用 Redis 存储缓存，过期由 Redis 负责
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects and pings Redis
// NewRedisStore 连接 Redis 并检测可用性
func NewRedisStore(ctx context.Context, c RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "redis ping %s", c.Addr)
	}
	return NewRedisStoreWithClient(client, c.KeyPrefix), nil
}

// NewRedisStoreWithClient 使用已有客户端创建
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) key(k string) string {
	return r.prefix + k
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get")
	}
	return b, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.Wrap(r.client.Set(ctx, r.key(key), value, ttl).Err(), "redis set")
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return errors.Wrap(r.client.Del(ctx, r.key(key)).Err(), "redis del")
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

var _ Store = (*RedisStore)(nil)
