package ratelimit

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter 进程内固定窗口限流器
// 读-增-比较序列在互斥锁内完成，避免并发请求丢失计数
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	stopCh  chan struct{}
	stopped sync.Once

	// 测试用时钟
	now func() time.Time
}

var _ Limiter = (*MemoryLimiter)(nil)

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Check(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || !now.Before(e.resetAt) {
		// 窗口不存在或已过期：开新窗口
		e = &entry{count: 0, resetAt: now.Add(window)}
		l.entries[key] = e
	}
	e.count++

	remaining := limit - e.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   e.count <= limit,
		Remaining: remaining,
		ResetAt:   e.resetAt,
	}, nil
}

func (l *MemoryLimiter) Remaining(_ context.Context, key string, limit int) (int, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || !now.Before(e.resetAt) {
		return limit, nil
	}
	remaining := limit - e.count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// StartJanitor 启动后台清扫，定期删除过期窗口（只影响内存占用，不影响语义）
func (l *MemoryLimiter) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.sweep()
			case <-l.stopCh:
				return
			}
		}
	}()
}

// Stop 停止后台清扫
func (l *MemoryLimiter) Stop() {
	l.stopped.Do(func() { close(l.stopCh) })
}

func (l *MemoryLimiter) sweep() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if !now.Before(e.resetAt) {
			delete(l.entries, key)
		}
	}
}
