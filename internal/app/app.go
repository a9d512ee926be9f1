// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/fast-note-link-service/internal/cache"
	"github.com/haierkeys/fast-note-link-service/internal/dao"
	"github.com/haierkeys/fast-note-link-service/internal/domain"
	"github.com/haierkeys/fast-note-link-service/internal/service"
	"github.com/haierkeys/fast-note-link-service/internal/summarizer"
	pkgapp "github.com/haierkeys/fast-note-link-service/pkg/app"
	"github.com/haierkeys/fast-note-link-service/pkg/writequeue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// cacheConnectTimeout 连接缓存后端的超时时间
const cacheConnectTimeout = 5 * time.Second

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config    *AppConfig
	logger    *zap.Logger
	DB        *gorm.DB
	Dao       *dao.Dao
	StartTime time.Time

	// 并发控制组件
	writeQueueMgr *writequeue.Manager

	// 缓存与摘要
	CacheStore cache.Store
	NoteCache  *cache.NoteListCache
	Summarizer summarizer.Summarizer

	// Repository 层
	NoteRepo domain.NoteRepository
	UserRepo domain.UserRepository

	// Service 层
	NoteService      service.NoteService
	UserService      service.UserService
	SummarizeService service.SummarizeService

	// 基础设施组件
	TokenManager pkgapp.TokenManager

	// 关闭控制
	shutdownCh chan struct{}
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db,
		dao.WithConfig(cfg.Database),
		dao.WithLogger(logger),
		dao.WithWriteQueueManager(a.writeQueueMgr),
	)

	// 初始化缓存后端
	ctx, cancel := context.WithTimeout(context.Background(), cacheConnectTimeout)
	defer cancel()
	store, err := cache.NewStore(ctx, cfg.Cache)
	if err != nil {
		_ = a.writeQueueMgr.Shutdown(context.Background())
		return nil, fmt.Errorf("init cache store: %w", err)
	}
	a.CacheStore = store
	a.NoteCache = cache.NewNoteListCache(store, cfg.GetCacheTTL(), logger)

	// 初始化摘要提供方
	sum, err := summarizer.New(cfg.Summarizer, logger)
	if err != nil {
		_ = store.Close()
		_ = a.writeQueueMgr.Shutdown(context.Background())
		return nil, fmt.Errorf("init summarizer: %w", err)
	}
	a.Summarizer = sum

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化 Repository 层
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.UserRepo = dao.NewUserRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable: cfg.User.RegisterIsEnable,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.NoteService = service.NewNoteService(
		a.NoteRepo,
		service.NewStubMaterializer(a.NoteRepo, logger),
		service.NewLinkResolver(a.NoteRepo),
		a.NoteCache,
		logger,
	)
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger, svcConfig)
	a.SummarizeService = service.NewSummarizeService(a.NoteRepo, a.Summarizer, logger)

	logger.Info("App container initialized successfully",
		zap.String("cacheDriver", cfg.Cache.Driver),
		zap.Duration("cacheTTL", a.NoteCache.TTL()),
		zap.String("summarizer", a.Summarizer.Name()),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// Close 释放数据库连接
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// GetAuthTokenKey 获取 Token 密钥
func (a *App) GetAuthTokenKey() string {
	return a.config.Security.AuthTokenKey
}

// WriteQueueManager 获取 Write Queue Manager
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// MemoryStore 返回内存缓存后端，使用 Redis 时返回 nil
func (a *App) MemoryStore() *cache.MemoryStore {
	if m, ok := a.CacheStore.(*cache.MemoryStore); ok {
		return m
	}
	return nil
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Write Queue Manager -> Cache Store -> Database
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 1. 关闭 Write Queue Manager（排空所有队列）
	if a.writeQueueMgr != nil {
		a.logger.Info("Shutting down write queue manager...")
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		}
	}

	// 2. 关闭缓存后端
	if a.CacheStore != nil {
		if err := a.CacheStore.Close(); err != nil {
			a.logger.Warn("cache store close error", zap.Error(err))
			errs = append(errs, fmt.Errorf("cache store close: %w", err))
		}
	}

	// 3. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}
