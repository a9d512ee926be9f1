// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/fast-note-link-service/internal/cache"
	"github.com/haierkeys/fast-note-link-service/internal/dao"
	"github.com/haierkeys/fast-note-link-service/internal/summarizer"
	"github.com/haierkeys/fast-note-link-service/pkg/util"
	"github.com/haierkeys/fast-note-link-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// 环境变量，仅在配置文件对应字段为空时生效
const (
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvRedisPassword = "REDIS_PASSWORD"
	// EnvAuthTokenKey 也会替换内置默认配置中的占位密钥
	EnvAuthTokenKey = "NOTES_AUTH_TOKEN_KEY"
)

// DefaultAuthTokenKey 内置默认配置中的占位密钥
const DefaultAuthTokenKey = "fast-note-link-Auth-Token"

// AppConfig 应用配置
type AppConfig struct {
	File       string             `yaml:"-"` // 配置文件路径，不序列化
	Server     ServerConfig       `yaml:"server"`
	Log        LogConfig          `yaml:"log"`
	Database   dao.DatabaseConfig `yaml:"database"`
	Cache      cache.Config       `yaml:"cache"`
	Summarizer summarizer.Config  `yaml:"summarizer"`
	App        AppSettings        `yaml:"app"`
	User       UserConfig         `yaml:"user"`
	Security   SecurityConfig     `yaml:"security"`
	Tracer     TracerConfig       `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，为空时仅输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key"`
	// TokenExpiry Token 过期时间，支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenExpiry string `yaml:"token-expiry" default:"7d"`
}

// UserConfig 用户配置
type UserConfig struct {
	// RegisterIsEnable 注册是否启用
	RegisterIsEnable bool `yaml:"register-is-enable" default:"true"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// NewDefaultConfig 返回全部字段取默认值的配置
func NewDefaultConfig() (*AppConfig, error) {
	c := new(AppConfig)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}
	c.applyEnv()
	return c, nil
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	// .env 不存在时忽略
	_ = godotenv.Load()

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	c.applyEnv()

	return c, realpath, nil
}

// applyEnv 用环境变量填充空的敏感字段
func (c *AppConfig) applyEnv() {
	fill := func(dst *string, env string) {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
	}
	fill(&c.Summarizer.APIKey, EnvOpenAIAPIKey)
	fill(&c.Cache.Redis.Password, EnvRedisPassword)
	if c.Security.AuthTokenKey == DefaultAuthTokenKey {
		if v := os.Getenv(EnvAuthTokenKey); v != "" {
			c.Security.AuthTokenKey = v
		}
	}
	fill(&c.Security.AuthTokenKey, EnvAuthTokenKey)
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}
	if c.App.WriteQueueIdleTime != "" {
		if idleTime, err := util.ParseDuration(c.App.WriteQueueIdleTime); err == nil {
			cfg.IdleTimeout = idleTime
		}
	}

	return cfg
}

// GetTokenExpiry 获取 Token 过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	return util.MustParseDuration(c.Security.TokenExpiry, 7*24*time.Hour)
}

// GetCacheTTL 获取笔记列表缓存时间
func (c *AppConfig) GetCacheTTL() time.Duration {
	return util.MustParseDuration(c.Cache.TTL, cache.DefaultTTL)
}

// GetCacheJanitorInterval 获取内存缓存清理间隔
func (c *AppConfig) GetCacheJanitorInterval() time.Duration {
	return util.MustParseDuration(c.Cache.JanitorInterval, time.Minute)
}

// GetContextTimeout 获取请求上下文超时时间
func (c *AppConfig) GetContextTimeout() time.Duration {
	if c.App.DefaultContextTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}
