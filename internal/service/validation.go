package service

import (
	"fmt"
	"time"
	"unicode/utf8"

	"fleetlink-report/internal/domain"
)

// maxTextFieldLen 文本字段长度上限（与 DB 列宽一致）
const maxTextFieldLen = 2000

// SubmitPayload 公开提交请求体
type SubmitPayload struct {
	RouteStatus              string `json:"routeStatus"`
	DelayMinutes             int    `json:"delayMinutes"`
	DelayReason              string `json:"delayReason"`
	CargoDamageDescription   string `json:"cargoDamageDescription"`
	VehicleDamageDescription string `json:"vehicleDamageDescription"`
	NextDayBlockers          string `json:"nextDayBlockers"`
	Timezone                 string `json:"timezone"`
}

// ValidatePayload 校验提交内容，返回 nil 或带字段明细的 *ValidationError
// 校验是编排器的前置条件：任何失败都不触及持久化状态
func ValidatePayload(p *SubmitPayload) *ValidationError {
	fields := map[string]string{}

	if !domain.ValidRouteStatus(p.RouteStatus) {
		fields["routeStatus"] = "must be one of COMPLETED, PARTIALLY_COMPLETED, CANCELLED"
	}

	if p.DelayMinutes < 0 {
		fields["delayMinutes"] = "must be a non-negative integer"
	}

	for name, value := range map[string]string{
		"delayReason":              p.DelayReason,
		"cargoDamageDescription":   p.CargoDamageDescription,
		"vehicleDamageDescription": p.VehicleDamageDescription,
		"nextDayBlockers":          p.NextDayBlockers,
	} {
		// 字符数而非字节数：波兰语等多字节文本按字符计
		if utf8.RuneCountInString(value) > maxTextFieldLen {
			fields[name] = fmt.Sprintf("must not exceed %d characters", maxTextFieldLen)
		}
	}

	// 有延误必须说明原因
	if p.DelayMinutes > 0 && p.DelayReason == "" {
		fields["delayReason"] = "is required when delayMinutes > 0"
	}

	// 部分完成必须至少填一项说明
	if p.RouteStatus == domain.RouteStatusPartiallyCompleted &&
		p.NextDayBlockers == "" && p.CargoDamageDescription == "" &&
		p.VehicleDamageDescription == "" && p.DelayReason == "" {
		fields["routeStatus"] = "PARTIALLY_COMPLETED requires at least one of nextDayBlockers, cargoDamageDescription, vehicleDamageDescription, delayReason"
	}

	if p.Timezone == "" {
		fields["timezone"] = "is required"
	} else if _, err := time.LoadLocation(p.Timezone); err != nil {
		fields["timezone"] = "must be a valid IANA timezone identifier"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
