// Package cache provides the per-owner read cache for note lists
// Package cache 提供按所有者划分的笔记列表读缓存
package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Store is a byte-oriented key/value backend with per-key TTL
// Store 字节键值存储后端，支持按键过期
type Store interface {
	// Get returns the value and whether a live entry was found
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
	// Close releases backend resources
	Close() error
}

// Config 缓存配置
type Config struct {
	// Driver 缓存驱动: memory, redis
	Driver string `yaml:"driver" default:"memory"`
	// TTL 笔记列表缓存时间，例如 60s、5m
	TTL string `yaml:"ttl" default:"60s"`
	// JanitorInterval 内存缓存过期清理间隔
	JanitorInterval string `yaml:"janitor-interval" default:"1m"`
	// Redis 连接配置
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Addr     string `yaml:"addr" default:"127.0.0.1:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" default:"0"`
	// KeyPrefix 键前缀
	KeyPrefix string `yaml:"key-prefix"`
}

// NewStore builds the backend selected by c.Driver
// NewStore 根据驱动创建缓存后端
func NewStore(ctx context.Context, c Config) (Store, error) {
	switch c.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(ctx, c.Redis)
	}
	return nil, errors.Errorf("unsupported cache driver %q", c.Driver)
}
