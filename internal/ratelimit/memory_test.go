package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter 使用可控时钟的限流器
func newTestLimiter(start time.Time) (*MemoryLimiter, *time.Time) {
	clock := start
	l := NewMemoryLimiter()
	l.now = func() time.Time { return clock }
	return l, &clock
}

func TestMemoryLimiter_AllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(time.Unix(1000, 0))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res, err := l.Check(ctx, "key-a", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "call %d should be allowed", i+1)
		assert.Equal(t, 5-(i+1), res.Remaining)
	}

	// 第 limit+1 次被拒绝
	res, err := l.Check(ctx, "key-a", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestMemoryLimiter_KeysIndependent(t *testing.T) {
	l, _ := newTestLimiter(time.Unix(1000, 0))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := l.Check(ctx, "key-a", 2, time.Minute)
		require.NoError(t, err)
	}

	res, err := l.Check(ctx, "key-b", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}

func TestMemoryLimiter_WindowReset(t *testing.T) {
	l, clock := newTestLimiter(time.Unix(1000, 0))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := l.Check(ctx, "key-a", 2, time.Minute)
		require.NoError(t, err)
	}
	res, err := l.Check(ctx, "key-a", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	// 窗口到期后重新放行
	*clock = clock.Add(61 * time.Second)
	res, err = l.Check(ctx, "key-a", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}

func TestMemoryLimiter_Remaining(t *testing.T) {
	l, _ := newTestLimiter(time.Unix(1000, 0))
	ctx := context.Background()

	remaining, err := l.Remaining(ctx, "fresh-key", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, remaining)

	_, err = l.Check(ctx, "fresh-key", 10, time.Minute)
	require.NoError(t, err)

	remaining, err = l.Remaining(ctx, "fresh-key", 10)
	require.NoError(t, err)
	assert.Equal(t, 9, remaining)
}

func TestMemoryLimiter_ConcurrentNoLostUpdates(t *testing.T) {
	l, _ := newTestLimiter(time.Unix(1000, 0))
	ctx := context.Background()

	const calls = 100
	allowed := make(chan bool, calls)

	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _ := l.Check(ctx, "hot-key", 30, time.Minute)
			allowed <- res.Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	allowedCount := 0
	for ok := range allowed {
		if ok {
			allowedCount++
		}
	}
	// 恰好放行 limit 次，其余全部拒绝
	assert.Equal(t, 30, allowedCount)
}

func TestMemoryLimiter_SweepEvictsExpiredOnly(t *testing.T) {
	l, clock := newTestLimiter(time.Unix(1000, 0))
	ctx := context.Background()

	_, err := l.Check(ctx, "old-key", 5, time.Minute)
	require.NoError(t, err)

	*clock = clock.Add(2 * time.Minute)
	_, err = l.Check(ctx, "new-key", 5, time.Minute)
	require.NoError(t, err)

	l.sweep()

	l.mu.Lock()
	_, oldExists := l.entries["old-key"]
	_, newExists := l.entries["new-key"]
	l.mu.Unlock()

	assert.False(t, oldExists)
	assert.True(t, newExists)
}
