package routers

import (
	"time"

	"github.com/haierkeys/fast-note-link-service/internal/app"
	"github.com/haierkeys/fast-note-link-service/internal/middleware"
	"github.com/haierkeys/fast-note-link-service/internal/routers/api_router"
	"github.com/haierkeys/fast-note-link-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// newAuthLimiter 登录与注册接口的令牌桶
func newAuthLimiter() limiter.Face {
	rule := func(key string) limiter.BucketRule {
		return limiter.BucketRule{
			Key:          key,
			FillInterval: time.Second,
			Capacity:     10,
			Quantum:      10,
		}
	}
	return limiter.NewMethodLimiter().AddBuckets(rule("/register"), rule("/login"), rule("/token"))
}

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()
	r.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
	r.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
	r.Use(middleware.RecoveryWithLogger(appContainer.Logger()))
	r.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
	r.Use(middleware.RateLimiter(newAuthLimiter()))
	r.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))
	r.Use(middleware.LangWithTranslator(uni))

	// 创建 Handlers（注入 App Container）
	healthHandler := api_router.NewHealthHandler(appContainer)
	userHandler := api_router.NewUserHandler(appContainer)
	noteHandler := api_router.NewNoteHandler(appContainer)
	summarizeHandler := api_router.NewSummarizeHandler(appContainer)

	r.GET("/", healthHandler.Welcome)
	r.GET("/health", healthHandler.Check)

	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.POST("/token", userHandler.Login)

	auth := r.Group("/", middleware.UserAuthTokenWithConfig(appContainer.GetAuthTokenKey()))
	{
		auth.GET("/notes", noteHandler.List)
		auth.POST("/notes", noteHandler.Create)
		auth.GET("/notes/:id", noteHandler.Get)
		auth.PUT("/notes/:id", noteHandler.Update)
		auth.DELETE("/notes/:id", noteHandler.Delete)
		auth.GET("/notes/:id/with_links", noteHandler.WithLinks)

		auth.POST("/summarize", summarizeHandler.Summarize)
	}

	r.NoRoute(middleware.NoFound())

	return r
}
