package service

import (
	"errors"
	"fmt"
	"time"
)

// ErrPepperMissing token pepper 未配置：公开提交接口整体不可用（配置错误，
// 映射 500 并在日志里高调报告，绝不能静默放行未校验的 token）
var ErrPepperMissing = errors.New("token pepper is not configured")

// ValidationError 请求体校验失败，Fields 为字段级错误明细
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("payload validation failed (%d fields)", len(e.Fields))
}

// RateLimitError 限流拒绝，带剩余额度与窗口重置时间提示
type RateLimitError struct {
	Scope     string // "ip" 或 "token"
	Limit     int
	Remaining int
	ResetAt   time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s (limit %d/window)", e.Scope, e.Limit)
}
