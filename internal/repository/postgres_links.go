package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetlink-report/internal/domain"
)

// PostgresLinksRepo 提交链接Repository实现
type PostgresLinksRepo struct {
	db *sql.DB
}

// NewPostgresLinksRepo 创建提交链接Repository
func NewPostgresLinksRepo(db *sql.DB) *PostgresLinksRepo {
	return &PostgresLinksRepo{db: db}
}

// 确保实现了接口
var _ LinksRepo = (*PostgresLinksRepo)(nil)

// GetByTokenHash 按 token 摘要查链接
func (r *PostgresLinksRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.ReportLink, error) {
	if tokenHash == "" {
		return nil, domain.ErrLinkNotFound
	}

	query := `
		SELECT
			link_id::text,
			driver_id::text,
			company_id::text,
			token_hash,
			expires_at,
			used_at,
			created_at
		FROM report_links
		WHERE token_hash = $1
	`

	var link domain.ReportLink
	var usedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&link.LinkID,
		&link.DriverID,
		&link.CompanyID,
		&link.TokenHash,
		&link.ExpiresAt,
		&usedAt,
		&link.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get report link: %w", err)
	}

	if usedAt.Valid {
		t := usedAt.Time
		link.UsedAt = &t
	}

	return &link, nil
}

// MarkUsed 标记链接已用
// WHERE used_at IS NULL 保证至多写一次；重复调用是无害的空更新
func (r *PostgresLinksRepo) MarkUsed(ctx context.Context, linkID string, at time.Time) error {
	if linkID == "" {
		return fmt.Errorf("link_id is required")
	}

	query := `
		UPDATE report_links
		SET used_at = $2
		WHERE link_id = $1 AND used_at IS NULL
	`

	if _, err := r.db.ExecContext(ctx, query, linkID, at); err != nil {
		return fmt.Errorf("failed to mark report link used: %w", err)
	}
	return nil
}
