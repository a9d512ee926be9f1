package task

import (
	"context"
	"time"

	"github.com/haierkeys/fast-note-link-service/pkg/logger"

	"go.uber.org/zap"
)

// Purger 可清理过期条目的缓存
type Purger interface {
	Purge() int
}

// CacheJanitorTask 定期清理内存缓存中已过期的列表
type CacheJanitorTask struct {
	store    Purger
	interval time.Duration
	logger   *zap.Logger
}

// NewCacheJanitorTask 创建缓存清理任务
func NewCacheJanitorTask(store Purger, interval time.Duration, logger *zap.Logger) *CacheJanitorTask {
	return &CacheJanitorTask{store: store, interval: interval, logger: logger}
}

func (t *CacheJanitorTask) Name() string { return "CacheJanitor" }

func (t *CacheJanitorTask) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n := t.store.Purge(); n > 0 {
		t.logger.Debug("expired cache entries purged",
			zap.String(logger.FieldTask, t.Name()),
			zap.Int(logger.FieldCount, n))
	}
	return nil
}

func (t *CacheJanitorTask) LoopInterval() time.Duration { return t.interval }

func (t *CacheJanitorTask) IsStartupRun() bool { return false }
