package repository

import (
	"context"

	"fleetlink-report/internal/domain"
)

// ReportsRepo 每日报告仓储
type ReportsRepo interface {
	// Create 写入报告，(driver_id, report_date) 冲突时返回
	// *domain.DuplicateReportError（尽力带上已存在报告的 id）
	Create(ctx context.Context, rpt *domain.Report) (string, error)
	// FindIDByDriverAndDate 查某司机某日的报告 id，没有返回空串
	FindIDByDriverAndDate(ctx context.Context, driverID, reportDate string) (string, error)
	// UpdateRiskAssessment 回填分类结果（创建后异步/同步均可调用）
	UpdateRiskAssessment(ctx context.Context, reportID, riskLevel string, tags []string, summary string) error
}
