package repository

import (
	"context"
	"time"

	"fleetlink-report/internal/domain"
)

// LinksRepo 一次性提交链接仓储
type LinksRepo interface {
	// GetByTokenHash 按 token 摘要查链接，不存在返回 domain.ErrLinkNotFound
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.ReportLink, error)
	// MarkUsed 设置 used_at（只在当前为 NULL 时生效，至多写一次）
	MarkUsed(ctx context.Context, linkID string, at time.Time) error
}
