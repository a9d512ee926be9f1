// Package safe_close coordinates graceful shutdown of long-running goroutines
// Package safe_close 协调常驻 goroutine 的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose broadcasts one close signal to every attached worker and waits for all of them
// SafeClose 向所有挂载的 worker 广播关闭信号，并等待它们全部退出
type SafeClose struct {
	closeOnce   sync.Once
	closeSignal chan struct{}

	wg sync.WaitGroup

	mu  sync.Mutex
	err error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach runs fn in its own goroutine. fn must call done when it returns.
// Attach 在独立 goroutine 中运行 fn，fn 退出时必须调用 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go fn(s.wg.Done, s.closeSignal)
}

// SendCloseSignal closes the signal channel once; the first non-nil err is kept
// SendCloseSignal 只关闭一次信号通道，保留第一个非空错误
func (s *SafeClose) SendCloseSignal(err error) {
	if err != nil {
		s.mu.Lock()
		if s.err == nil {
			s.err = err
		}
		s.mu.Unlock()
	}
	s.closeOnce.Do(func() {
		close(s.closeSignal)
	})
}

// CloseSignal 返回关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached worker has called done
// WaitClosed 阻塞直到所有 worker 调用 done
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
