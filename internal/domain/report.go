package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// 路线完成状态（与前端提交表单的枚举保持一致）
const (
	RouteStatusCompleted          = "COMPLETED"
	RouteStatusPartiallyCompleted = "PARTIALLY_COMPLETED"
	RouteStatusCancelled          = "CANCELLED"
)

// ErrInvalidTimezone 时区标识无法解析
var ErrInvalidTimezone = errors.New("invalid timezone identifier")

// ValidRouteStatus 检查路线状态枚举值
func ValidRouteStatus(s string) bool {
	switch s {
	case RouteStatusCompleted, RouteStatusPartiallyCompleted, RouteStatusCancelled:
		return true
	}
	return false
}

// Report 司机每日状态报告（对应 driver_reports 表）
// (driver_id, report_date) 唯一，由 DB 约束保证
type Report struct {
	ReportID                 string         `db:"report_id"`
	DriverID                 string         `db:"driver_id"`
	CompanyID                string         `db:"company_id"`
	ReportDate               string         `db:"report_date"` // YYYY-MM-DD，司机本地日历日
	Timezone                 string         `db:"timezone"`
	OccurredAt               time.Time      `db:"occurred_at"`
	RouteStatus              string         `db:"route_status"`
	DelayMinutes             int            `db:"delay_minutes"`
	DelayReason              string         `db:"delay_reason"`
	CargoDamageDescription   string         `db:"cargo_damage_description"`
	VehicleDamageDescription string         `db:"vehicle_damage_description"`
	NextDayBlockers          string         `db:"next_day_blockers"`
	IsProblem                bool           `db:"is_problem"`
	RiskLevel                string         `db:"risk_level"` // 空串 = 未分类
	RiskTags                 pq.StringArray `db:"risk_tags"`
	RiskSummary              string         `db:"risk_summary"`
	CreatedAt                time.Time      `db:"created_at"`
}

// ComputeIsProblem 派生 is_problem：任一问题字段非空即为 true
// 空字符串按"无"处理（与 null 等价）
func ComputeIsProblem(delayMinutes int, cargoDamage, vehicleDamage, blockers string) bool {
	return delayMinutes > 0 || cargoDamage != "" || vehicleDamage != "" || blockers != ""
}

// DuplicateReportError 当日报告已存在（唯一约束冲突）
// ExistingReportID 尽力回查，查不到则为空串
type DuplicateReportError struct {
	DriverID         string
	ReportDate       string
	ExistingReportID string
}

func (e *DuplicateReportError) Error() string {
	return fmt.Sprintf("report already exists for driver %s on %s", e.DriverID, e.ReportDate)
}
