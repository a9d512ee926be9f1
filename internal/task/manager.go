package task

import (
	"github.com/haierkeys/fast-note-link-service/internal/app"
	"github.com/haierkeys/fast-note-link-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *app.App
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, appContainer *app.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
		app:       appContainer,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	// 仅内存缓存需要主动清理，Redis 自行过期
	if store := m.app.MemoryStore(); store != nil {
		m.scheduler.AddTask(NewCacheJanitorTask(store, m.app.Config().GetCacheJanitorInterval(), m.logger))
	} else {
		m.logger.Info("cache janitor is disabled (cache driver is not memory)")
	}
	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() error {
	return m.scheduler.Start()
}
