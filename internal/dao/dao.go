// Package dao implements the data access layer
// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/fast-note-link-service/internal/model"
	"github.com/haierkeys/fast-note-link-service/pkg/fileurl"
	"github.com/haierkeys/fast-note-link-service/pkg/util"
	"github.com/haierkeys/fast-note-link-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型: sqlite, mysql, postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径，":memory:" 为内存库
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Port 端口，仅 postgres 使用
	Port int `yaml:"port" default:"5432"`
	// Name 数据库名
	Name string `yaml:"name"`
	// SSLMode postgres sslmode
	SSLMode string `yaml:"ssl-mode" default:"disable"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，例如 30m、1h
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// IsMemory 是否为 SQLite 内存库
func (c DatabaseConfig) IsMemory() bool {
	return c.Type == "sqlite" && strings.Contains(c.Path, ":memory:")
}

// Dao 数据访问对象，持有连接与写队列
type Dao struct {
	db         *gorm.DB
	config     DatabaseConfig
	logger     *zap.Logger
	writeQueue *writequeue.Manager
	onceKeys   sync.Map
}

// Option configures a Dao
type Option func(*Dao)

// WithConfig 设置数据库配置
func WithConfig(c DatabaseConfig) Option {
	return func(d *Dao) { d.config = c }
}

// WithLogger 设置日志
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		if lg != nil {
			d.logger = lg
		}
	}
}

// WithWriteQueueManager routes writes through per-owner queues
// WithWriteQueueManager 设置写队列管理器
func WithWriteQueueManager(m *writequeue.Manager) Option {
	return func(d *Dao) { d.writeQueue = m }
}

// New 创建 Dao
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{db: db, config: DatabaseConfig{AutoMigrate: true}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB 返回底层 gorm 连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// keyer 为写操作提供队列键
type keyer interface {
	GetKey(ownerID string) string
}

// UseWithMigrate returns the connection after migrating modelKey once per process
// UseWithMigrate 返回连接，并确保指定模型只迁移一次
func (d *Dao) UseWithMigrate(modelKey string) *gorm.DB {
	if !d.config.AutoMigrate {
		return d.db
	}
	onceKey := modelKey + "#migrated"
	if _, loaded := d.onceKeys.LoadOrStore(onceKey, true); !loaded {
		if err := model.AutoMigrate(d.db, modelKey); err != nil {
			d.onceKeys.Delete(onceKey)
			d.logger.Error("auto migrate failed", zap.String("model", modelKey), zap.Error(err))
		}
	}
	return d.db
}

// ExecuteWrite runs fn on the owner's write queue, or inline when no queue is configured
// ExecuteWrite 在所有者写队列中执行写操作
func (d *Dao) ExecuteWrite(ctx context.Context, ownerID string, r keyer, fn func(db *gorm.DB) error) error {
	if d.writeQueue == nil {
		return fn(d.db)
	}
	return d.writeQueue.Execute(ctx, r.GetKey(ownerID), func() error {
		return fn(d.db)
	})
}

// NewDBEngine opens the configured database and applies pool settings
// NewDBEngine 根据配置打开数据库连接
func NewDBEngine(c DatabaseConfig, runMode string) (*gorm.DB, error) {
	dialector, err := useDialector(c)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀，`User` 的表名为 `t_user`
			SingularTable: true,          // 使用单数表名
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if runMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	if c.IsMemory() {
		// 每个连接都是独立的内存库
		sqlDB.SetMaxOpenConns(1)
	}
	sqlDB.SetConnMaxLifetime(util.MustParseDuration(c.ConnMaxLifetime, 30*time.Minute))
	sqlDB.SetConnMaxIdleTime(util.MustParseDuration(c.ConnMaxIdleTime, 10*time.Minute))

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	return db, nil
}

func useDialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		)), nil
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host,
			c.Port,
			c.UserName,
			c.Password,
			c.Name,
			c.SSLMode,
		)), nil
	case "sqlite", "":
		if !c.IsMemory() && !fileurl.IsExist(c.Path) {
			if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
				return nil, errors.Wrap(err, "create sqlite dir")
			}
		}
		return sqlite.Open(c.Path), nil
	}
	return nil, errors.Errorf("unsupported database type %q", c.Type)
}
