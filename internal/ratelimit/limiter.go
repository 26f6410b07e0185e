package ratelimit

import (
	"context"
	"time"
)

// Result 单次限流判定结果
// Remaining 为本窗口剩余额度（被拒绝时为 0），ResetAt 为窗口到期时刻
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter 固定窗口限流器
// 语义：窗口内第一次调用计数置 1 并记录到期时间 now+window，之后每次调用
// 计数 +1；计数 <= limit 放行。到期后整个窗口作废重新开始。不同 key 互不影响。
//
// 注入接口而非引用全局单例：MemoryLimiter 进程内生效（多实例不共享，已知
// 局限），RedisLimiter 跨实例共享。
type Limiter interface {
	Check(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
	Remaining(ctx context.Context, key string, limit int) (int, error)
}
