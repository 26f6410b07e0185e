package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fleetlink-report/internal/domain"

	"github.com/lib/pq"
)

// PostgresReportsRepo 每日报告Repository实现
type PostgresReportsRepo struct {
	db *sql.DB
}

// NewPostgresReportsRepo 创建每日报告Repository
func NewPostgresReportsRepo(db *sql.DB) *PostgresReportsRepo {
	return &PostgresReportsRepo{db: db}
}

// 确保实现了接口
var _ ReportsRepo = (*PostgresReportsRepo)(nil)

// Create 写入报告
// risk_level 初始为 NULL，分类结果由 UpdateRiskAssessment 回填
func (r *PostgresReportsRepo) Create(ctx context.Context, rpt *domain.Report) (string, error) {
	if rpt.DriverID == "" || rpt.CompanyID == "" {
		return "", fmt.Errorf("driver_id and company_id are required")
	}
	if rpt.ReportDate == "" {
		return "", fmt.Errorf("report_date is required")
	}

	query := `
		INSERT INTO driver_reports (
			driver_id,
			company_id,
			report_date,
			timezone,
			occurred_at,
			route_status,
			delay_minutes,
			delay_reason,
			cargo_damage_description,
			vehicle_damage_description,
			next_day_blockers,
			is_problem
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING report_id::text
	`

	var reportID string
	err := r.db.QueryRowContext(ctx, query,
		rpt.DriverID,
		rpt.CompanyID,
		rpt.ReportDate,
		rpt.Timezone,
		rpt.OccurredAt,
		rpt.RouteStatus,
		rpt.DelayMinutes,
		emptyToNull(rpt.DelayReason),
		emptyToNull(rpt.CargoDamageDescription),
		emptyToNull(rpt.VehicleDamageDescription),
		emptyToNull(rpt.NextDayBlockers),
		rpt.IsProblem,
	).Scan(&reportID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			dup := &domain.DuplicateReportError{
				DriverID:   rpt.DriverID,
				ReportDate: rpt.ReportDate,
			}
			// 尽力回查已存在报告的 id；查不到也照样返回冲突错误
			if existingID, lookupErr := r.FindIDByDriverAndDate(ctx, rpt.DriverID, rpt.ReportDate); lookupErr == nil {
				dup.ExistingReportID = existingID
			}
			return "", dup
		}
		return "", fmt.Errorf("failed to create report: %w", err)
	}

	return reportID, nil
}

// FindIDByDriverAndDate 查某司机某日的报告 id
func (r *PostgresReportsRepo) FindIDByDriverAndDate(ctx context.Context, driverID, reportDate string) (string, error) {
	query := `
		SELECT report_id::text
		FROM driver_reports
		WHERE driver_id = $1 AND report_date = $2
	`

	var reportID string
	err := r.db.QueryRowContext(ctx, query, driverID, reportDate).Scan(&reportID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to find report by driver and date: %w", err)
	}
	return reportID, nil
}

// UpdateRiskAssessment 回填分类结果
func (r *PostgresReportsRepo) UpdateRiskAssessment(ctx context.Context, reportID, riskLevel string, tags []string, summary string) error {
	if reportID == "" {
		return fmt.Errorf("report_id is required")
	}

	query := `
		UPDATE driver_reports
		SET risk_level = $2,
		    risk_tags = $3,
		    risk_summary = $4
		WHERE report_id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, reportID, riskLevel, pq.StringArray(tags), summary); err != nil {
		return fmt.Errorf("failed to update risk assessment: %w", err)
	}
	return nil
}

// emptyToNull 空串落库为 NULL
func emptyToNull(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
