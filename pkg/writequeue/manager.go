// Package writequeue serializes database writes per owner
// Package writequeue 按所有者串行化数据库写操作
//
// SQLite allows a single writer; funnelling one owner's writes through one goroutine
// avoids "database is locked" under concurrent requests. Different owners never
// wait on each other.
package writequeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrWriteQueueFull 当所有者写队列已满时返回
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed 当写队列管理器已关闭时返回
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout 当写操作超时时返回
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config 写队列配置
type Config struct {
	// QueueCapacity 每个所有者的队列容量
	QueueCapacity int
	// WriteTimeout 单次写操作的最长等待时间
	WriteTimeout time.Duration
	// IdleTimeout 空闲队列回收时间
	IdleTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   10 * time.Minute,
	}
}

// op states
const (
	opPending int32 = iota
	opRunning
	opAbandoned
)

type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
	state  atomic.Int32
}

type ownerQueue struct {
	key      string
	ch       chan *writeOp
	lastUsed atomic.Int64
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func (q *ownerQueue) stop() {
	q.stopOnce.Do(func() { close(q.stopCh) })
}

// Manager 管理所有所有者的写队列
type Manager struct {
	config Config
	logger *zap.Logger

	mu     sync.Mutex
	queues map[string]*ownerQueue
	closed bool

	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

// New creates a write queue manager; nil cfg and logger fall back to defaults
// New 创建写队列管理器
func New(cfg *Config, logger *zap.Logger) *Manager {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.QueueCapacity > 0 {
			c.QueueCapacity = cfg.QueueCapacity
		}
		if cfg.WriteTimeout > 0 {
			c.WriteTimeout = cfg.WriteTimeout
		}
		if cfg.IdleTimeout > 0 {
			c.IdleTimeout = cfg.IdleTimeout
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		config:      c,
		logger:      logger,
		queues:      make(map[string]*ownerQueue),
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
	go m.cleanupIdleQueues()

	m.logger.Info("write queue manager started",
		zap.Int("queueCapacity", c.QueueCapacity),
		zap.Duration("writeTimeout", c.WriteTimeout),
		zap.Duration("idleTimeout", c.IdleTimeout))

	return m
}

// Execute runs fn on the owner's queue and waits for its result.
// Writes of one owner run one at a time in FIFO order.
// A timeout or cancelled ctx only abandons an op that has not started;
// once fn is running Execute waits for it and returns its real result.
// Execute 在所有者的队列上执行 fn 并等待结果，同一所有者按 FIFO 顺序逐个执行
func (m *Manager) Execute(ctx context.Context, key string, fn func() error) error {
	queue, err := m.getOrCreateQueue(key)
	if err != nil {
		return err
	}

	op := &writeOp{ctx: ctx, fn: fn, result: make(chan error, 1)}

	select {
	case queue.ch <- op:
	default:
		return ErrWriteQueueFull
	}

	timer := time.NewTimer(m.config.WriteTimeout)
	defer timer.Stop()

	var abandonErr error
	select {
	case err := <-op.result:
		return err
	case <-ctx.Done():
		abandonErr = ctx.Err()
	case <-timer.C:
		abandonErr = ErrWriteTimeout
	}

	if op.state.CompareAndSwap(opPending, opAbandoned) {
		return abandonErr
	}
	// 已开始执行，等待真实结果
	m.logger.Warn("write outlived its deadline, waiting for completion",
		zap.String("key", key), zap.NamedError("deadline", abandonErr))
	return <-op.result
}

func (m *Manager) getOrCreateQueue(key string) (*ownerQueue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrWriteQueueClosed
	}

	if q, ok := m.queues[key]; ok {
		q.lastUsed.Store(time.Now().UnixNano())
		return q, nil
	}

	q := &ownerQueue{
		key:    key,
		ch:     make(chan *writeOp, m.config.QueueCapacity),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	q.lastUsed.Store(time.Now().UnixNano())
	m.queues[key] = q

	go m.worker(q)

	m.logger.Debug("created write queue", zap.String("key", key))
	return q, nil
}

func (m *Manager) worker(q *ownerQueue) {
	defer close(q.done)
	for {
		select {
		case op := <-q.ch:
			m.executeOp(q, op)
		case <-q.stopCh:
			// 排空剩余操作
			for {
				select {
				case op := <-q.ch:
					m.executeOp(q, op)
				default:
					return
				}
			}
		}
	}
}

func (m *Manager) executeOp(q *ownerQueue, op *writeOp) {
	q.lastUsed.Store(time.Now().UnixNano())

	if err := op.ctx.Err(); err != nil {
		if op.state.CompareAndSwap(opPending, opAbandoned) {
			op.result <- err
		}
		return
	}
	if !op.state.CompareAndSwap(opPending, opRunning) {
		return
	}
	op.result <- op.fn()
}

func (m *Manager) cleanupIdleQueues() {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(m.config.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCleanup:
			return
		case <-ticker.C:
			m.doCleanup()
		}
	}
}

// doCleanup stops queues that have been idle longer than IdleTimeout
// doCleanup 回收空闲超时的队列
func (m *Manager) doCleanup() {
	threshold := time.Now().Add(-m.config.IdleTimeout).UnixNano()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, q := range m.queues {
		if q.lastUsed.Load() < threshold && len(q.ch) == 0 {
			m.logger.Debug("cleaning up idle write queue", zap.String("key", key))
			q.stop()
			delete(m.queues, key)
		}
	}
}

// Shutdown stops accepting writes and drains every queue
// Shutdown 停止接收写操作并排空所有队列
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	queues := make([]*ownerQueue, 0, len(m.queues))
	for _, q := range m.queues {
		queues = append(queues, q)
		q.stop()
	}
	m.queues = make(map[string]*ownerQueue)
	m.mu.Unlock()

	close(m.stopCleanup)

	done := make(chan struct{})
	go func() {
		for _, q := range queues {
			<-q.done
		}
		<-m.cleanupDone
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("write queue manager shutdown completed")
		return nil
	case <-ctx.Done():
		m.logger.Warn("write queue manager shutdown timeout")
		return ctx.Err()
	}
}

// QueueCount 返回当前活跃队列数量
func (m *Manager) QueueCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues)
}

// IsClosed 返回管理器是否已关闭
func (m *Manager) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
