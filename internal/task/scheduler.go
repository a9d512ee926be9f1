package task

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/fast-note-link-service/pkg/logger"
	"github.com/haierkeys/fast-note-link-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	LoopInterval() time.Duration   // 执行间隔
	IsStartupRun() bool            // 是否立即执行一次
}

// cronLogger 将 cron 内部日志转发到 zap
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Scheduler 任务调度器
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
	cron   *cron.Cron
}

// NewScheduler 创建任务调度器
func NewScheduler(lg *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	cl := cronLogger{sugar: lg.Sugar()}
	return &Scheduler{
		logger: lg,
		tasks:  make([]Task, 0),
		sc:     sc,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 启动所有任务，收到关闭信号后等待运行中的任务结束
func (s *Scheduler) Start() error {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return nil
	}

	for _, task := range s.tasks {
		if task.LoopInterval() <= 0 {
			continue
		}
		spec := fmt.Sprintf("@every %s", task.LoopInterval())
		if _, err := s.cron.AddFunc(spec, s.wrap(task, "loopRun")); err != nil {
			return fmt.Errorf("schedule task %s: %w", task.Name(), err)
		}
	}

	s.logger.Info("tasks starting", zap.Int(logger.FieldCount, len(s.tasks)))

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		for _, task := range s.tasks {
			if task.IsStartupRun() {
				go s.wrap(task, "startupRun")()
			}
		}

		s.cron.Start()
		<-closeSignal

		// 等待运行中的任务结束
		<-s.cron.Stop().Done()
		s.logger.Info("tasks stopped")
	})
	return nil
}

// wrap 包装单次执行：恢复 panic 并记录错误
func (s *Scheduler) wrap(task Task, mode string) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("task panic",
					zap.String(logger.FieldTask, task.Name()),
					zap.String("mode", mode),
					zap.Any("panic", r),
					zap.Stack("stack"))
			}
		}()
		s.logger.Debug("task running", zap.String(logger.FieldTask, task.Name()), zap.String("mode", mode))
		if err := task.Run(context.Background()); err != nil {
			s.logger.Error("task running error",
				zap.String(logger.FieldTask, task.Name()),
				zap.String("mode", mode),
				zap.Error(err))
		}
	}
}
