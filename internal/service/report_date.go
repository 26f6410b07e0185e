package service

import (
	"time"

	"fleetlink-report/internal/domain"
)

// DeriveReportDate 把 UTC 时刻换算成司机时区的日历日（YYYY-MM-DD）
// 这个日期是 (driver_id, report_date) 唯一键的日期部分：临近本地午夜的
// 提交必须落在正确的一侧，所以用 IANA 时区而不是提交时刻的 UTC 日期。
// 无法解析的时区返回 domain.ErrInvalidTimezone。
func DeriveReportDate(instant time.Time, timezone string) (string, error) {
	if timezone == "" {
		return "", domain.ErrInvalidTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", domain.ErrInvalidTimezone
	}
	return instant.In(loc).Format("2006-01-02"), nil
}
