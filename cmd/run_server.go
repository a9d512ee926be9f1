package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	internalApp "github.com/haierkeys/fast-note-link-service/internal/app"
	"github.com/haierkeys/fast-note-link-service/internal/dao"
	"github.com/haierkeys/fast-note-link-service/internal/routers"
	"github.com/haierkeys/fast-note-link-service/internal/task"
	"github.com/haierkeys/fast-note-link-service/internal/upgrade"
	"github.com/haierkeys/fast-note-link-service/pkg/logger"
	"github.com/haierkeys/fast-note-link-service/pkg/safe_close"
	"github.com/haierkeys/fast-note-link-service/pkg/validator"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultSecretKeys 定义需要检测的默认密钥列表
var defaultSecretKeys = []string{
	internalApp.DefaultAuthTokenKey,
	"",
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

type Server struct {
	logger            *zap.Logger             // 日志对象
	config            *internalApp.AppConfig  // 应用配置（注入的依赖）
	db                *gorm.DB                // 数据库连接
	ut                *ut.UniversalTranslator // 翻译器
	httpServer        *http.Server
	privateHttpServer *http.Server
	sc                *safe_close.SafeClose
	app               *internalApp.App // App Container
}

// checkSecurityConfigWithConfig 检查安全配置，如果使用默认密钥则输出警告
func checkSecurityConfigWithConfig(cfg *internalApp.AppConfig, lg *zap.Logger) {
	isDefault := false
	for _, key := range defaultSecretKeys {
		if cfg.Security.AuthTokenKey == key {
			isDefault = true
			break
		}
	}
	if !isDefault {
		return
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("⚠️  SECURITY WARNING: Using default secret key!")
	fmt.Println()
	fmt.Println("Please modify 'security.auth-token-key' in config.yaml")
	fmt.Printf("or set the %s environment variable.\n", internalApp.EnvAuthTokenKey)
	fmt.Println("Generate a secure key with:")
	fmt.Println("  openssl rand -base64 32")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	if lg != nil {
		lg.Warn("Using default secret key - please change security.auth-token-key in config.yaml")
	}
}

func NewServer(runEnv *runFlags) (*Server, error) {
	// 使用 LoadConfig 直接加载配置到 AppConfig
	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 命令行参数优先于配置文件
	if len(runEnv.runMode) > 0 {
		appConfig.Server.RunMode = runEnv.runMode
	}
	if len(runEnv.port) > 0 {
		port := runEnv.port
		if !strings.Contains(port, ":") {
			port = ":" + port
		}
		appConfig.Server.HttpPort = port
	}

	if len(appConfig.Server.RunMode) > 0 {
		gin.SetMode(appConfig.Server.RunMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: appConfig,
		sc:     safe_close.NewSafeClose(),
	}

	if err := initStorageWithConfig(appConfig); err != nil {
		return nil, fmt.Errorf("initStorage: %w", err)
	}

	if err := initLoggerWithConfig(s, appConfig); err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}

	checkSecurityConfigWithConfig(appConfig, s.logger)

	db, err := dao.NewDBEngine(appConfig.Database, appConfig.Server.RunMode)
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}
	s.db = db

	// 自动执行迁移任务
	if appConfig.Database.AutoMigrate {
		if err := upgrade.Execute(context.Background(), db, s.logger, internalApp.Version); err != nil {
			return nil, fmt.Errorf("upgrade.Execute: %w", err)
		}
	}

	app, err := internalApp.NewApp(appConfig, s.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	uni, err := validator.Init()
	if err != nil {
		return nil, fmt.Errorf("initValidator: %w", err)
	}
	s.ut = uni

	if err := initScheduler(s); err != nil {
		return nil, fmt.Errorf("initScheduler: %w", err)
	}

	banner := `
    ______           __     _   __      __          __    _       __
   / ____/___ ______/ /_   / | / /___  / /____     / /   (_)___  / /__
  / /_  / __ '/ ___/ __/  /  |/ / __ \/ __/ _ \   / /   / / __ \/ //_/
 / __/ / /_/ (__  ) /_   / /|  / /_/ / /_/  __/  / /___/ / / / / ,<
/_/    \__,_/____/\__/  /_/ |_/\____/\__/\___/  /_____/_/_/ /_/_/|_|   `
	s.logger.Warn(fmt.Sprintf("%s\n\n%s v%s\nGit: %s\nBuildTime: %s\n", banner, internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))

	s.logger.Warn("config loaded", zap.String("path", configRealpath))

	// 启动 HTTP API 服务器
	if httpAddr := appConfig.Server.HttpPort; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", httpAddr))
		s.httpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewRouter(s.app, s.ut),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.serve(s.httpServer, "api service")
	}

	if httpAddr := appConfig.Server.PrivateHttpListen; len(httpAddr) > 0 {
		s.logger.Info("api_router", zap.String("config.server.PrivateHttpListen", httpAddr))
		s.privateHttpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewPrivateRouterWithLogger(appConfig.Server.RunMode, s.logger),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.serve(s.privateHttpServer, "private api service")
	}

	// 注册 App Container 的优雅关闭
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()

		if err := s.app.Shutdown(ctx); err != nil {
			s.logger.Error("failed to shutdown app container", zap.Error(err))
		} else {
			s.logger.Info("App container shutdown gracefully")
		}
	})

	return s, nil
}

// serve 挂载 HTTP 服务，收到关闭信号时优雅停止
func (s *Server) serve(srv *http.Server, name string) {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		errChan := make(chan error, 1)
		go func() {
			errChan <- srv.ListenAndServe()
		}()
		select {
		case err := <-errChan:
			s.logger.Error(name+" err", zap.Error(err))
			s.sc.SendCloseSignal(err)
		case <-closeSignal:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// 停止 HTTP 服务器
			if err := srv.Shutdown(ctx); err != nil {
				s.logger.Error(name+" shutdown error", zap.Error(err))
			}
		}
	})
}

func initScheduler(s *Server) error {
	manager := task.NewManager(s.logger, s.sc, s.app)

	// 注册所有任务(业务层控制)
	if err := manager.RegisterTasks(); err != nil {
		return err
	}
	return manager.Start()
}

// initLoggerWithConfig 初始化日志器（使用注入的配置）
func initLoggerWithConfig(s *Server, cfg *internalApp.AppConfig) error {
	lg, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Production: cfg.Log.Production,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	s.logger = lg
	return nil
}

// initStorageWithConfig 初始化日志与数据库目录
func initStorageWithConfig(cfg *internalApp.AppConfig) error {
	dirs := []string{filepath.Dir(cfg.Log.File)}
	if cfg.Database.Type == "sqlite" && !cfg.Database.IsMemory() {
		dirs = append(dirs, filepath.Dir(cfg.Database.Path))
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0754); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetApp 获取 App Container
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

// GetConfig 获取应用配置
func (s *Server) GetConfig() *internalApp.AppConfig {
	return s.config
}
