package domain

import (
	"errors"
	"time"
)

// 链接状态错误（公开提交接口按此映射 404/410/409）
var (
	ErrLinkNotFound = errors.New("report link not found")
	ErrLinkExpired  = errors.New("report link expired")
	ErrLinkUsed     = errors.New("report link already used")
)

// ReportLink 一次性提交邀请（对应 report_links 表）
// token_hash 只存摘要，原始 token 不落库
type ReportLink struct {
	LinkID    string     `db:"link_id"`
	DriverID  string     `db:"driver_id"`
	CompanyID string     `db:"company_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// CheckConsumable 链接在给定时刻能否接受提交
// 过期先于已用检查（已用且已过期的链接报 ErrLinkExpired）
func (l *ReportLink) CheckConsumable(now time.Time) error {
	if !l.ExpiresAt.After(now) {
		return ErrLinkExpired
	}
	if l.UsedAt != nil {
		return ErrLinkUsed
	}
	return nil
}
