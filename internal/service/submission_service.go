package service

import (
	"context"
	"fmt"
	"time"

	"fleetlink-report/internal/config"
	"fleetlink-report/internal/domain"
	"fleetlink-report/internal/ratelimit"
	"fleetlink-report/internal/repository"
	"fleetlink-report/internal/risk"
	"fleetlink-report/internal/token"

	"go.uber.org/zap"
)

// editableWindow 报告创建后可在前端编辑的时长
const editableWindow = 10 * time.Minute

// SubmissionService 公开提交编排器
// 两个操作：ValidateLink（只读）和 SubmitReport（写入）
// 执行顺序固定：限流 → token 解析 → 链接状态机 → （校验/落库/标记/分类）
type SubmissionService struct {
	links      repository.LinksRepo
	reports    repository.ReportsRepo
	drivers    repository.DriversRepo
	vehicles   repository.VehiclesRepo
	limiter    ratelimit.Limiter
	classifier risk.Classifier
	notifier   Notifier // 可为 nil（未配置回调地址）
	pepper     string
	rlCfg      config.RateLimitConfig
	logger     *zap.Logger

	// 测试用时钟
	now func() time.Time
}

func NewSubmissionService(
	links repository.LinksRepo,
	reports repository.ReportsRepo,
	drivers repository.DriversRepo,
	vehicles repository.VehiclesRepo,
	limiter ratelimit.Limiter,
	classifier risk.Classifier,
	notifier Notifier,
	pepper string,
	rlCfg config.RateLimitConfig,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		links:      links,
		reports:    reports,
		drivers:    drivers,
		vehicles:   vehicles,
		limiter:    limiter,
		classifier: classifier,
		notifier:   notifier,
		pepper:     pepper,
		rlCfg:      rlCfg,
		logger:     logger,
		now:        time.Now,
	}
}

// LinkValidation ValidateLink 的结果
type LinkValidation struct {
	DriverName          string
	VehicleRegistration string
	HasVehicle          bool
	ExpiresAt           time.Time
}

// SubmitResult SubmitReport 的结果
type SubmitResult struct {
	ReportID      string
	OccurredAt    time.Time
	EditableUntil time.Time
}

// ValidateLink 校验链接有效性（只读，不消费链接）
func (s *SubmissionService) ValidateLink(ctx context.Context, rawToken, clientIP string) (*LinkValidation, error) {
	if err := s.checkRateLimits(ctx, clientIP, rawToken); err != nil {
		return nil, err
	}

	link, err := s.resolveLink(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	driver, err := s.drivers.GetDriver(ctx, link.DriverID)
	if err != nil {
		return nil, fmt.Errorf("failed to load driver for link: %w", err)
	}

	out := &LinkValidation{
		DriverName: driver.DisplayName,
		ExpiresAt:  link.ExpiresAt,
	}

	registration, ok, err := s.vehicles.GetActiveRegistration(ctx, link.DriverID, s.now())
	if err != nil {
		// 车辆信息缺失不阻断校验，只是响应里没有牌照
		s.logger.Warn("Failed to load vehicle assignment for link",
			zap.String("link_id", link.LinkID),
			zap.Error(err),
		)
	} else if ok {
		out.VehicleRegistration = registration
		out.HasVehicle = true
	}

	return out, nil
}

// SubmitReport 提交每日报告（消费链接）
// 报告创建成功是不可回退点：之后 mark-used / 分类 / 告警的失败只记日志，
// 不改变已经对调用方承诺的成功结果
func (s *SubmissionService) SubmitReport(ctx context.Context, rawToken, clientIP string, payload *SubmitPayload) (*SubmitResult, error) {
	if err := s.checkRateLimits(ctx, clientIP, rawToken); err != nil {
		return nil, err
	}

	link, err := s.resolveLink(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if verr := ValidatePayload(payload); verr != nil {
		return nil, verr
	}

	occurredAt := s.now()
	reportDate, err := DeriveReportDate(occurredAt, payload.Timezone)
	if err != nil {
		// ValidatePayload 已查过时区，这里理论上到不了；防御性兜底
		return nil, &ValidationError{Fields: map[string]string{"timezone": "must be a valid IANA timezone identifier"}}
	}

	rpt := &domain.Report{
		DriverID:                 link.DriverID,
		CompanyID:                link.CompanyID,
		ReportDate:               reportDate,
		Timezone:                 payload.Timezone,
		OccurredAt:               occurredAt,
		RouteStatus:              payload.RouteStatus,
		DelayMinutes:             payload.DelayMinutes,
		DelayReason:              payload.DelayReason,
		CargoDamageDescription:   payload.CargoDamageDescription,
		VehicleDamageDescription: payload.VehicleDamageDescription,
		NextDayBlockers:          payload.NextDayBlockers,
		IsProblem: domain.ComputeIsProblem(payload.DelayMinutes,
			payload.CargoDamageDescription, payload.VehicleDamageDescription, payload.NextDayBlockers),
	}

	reportID, err := s.reports.Create(ctx, rpt)
	if err != nil {
		return nil, err
	}

	// ---- 不可回退点：报告已落库，以下全部尽力而为 ----

	if err := s.links.MarkUsed(ctx, link.LinkID, occurredAt); err != nil {
		// 报告本身是事实来源；未标记的链接是可恢复的有界不一致
		s.logger.Error("Failed to mark report link used after report creation",
			zap.String("link_id", link.LinkID),
			zap.String("report_id", reportID),
			zap.Error(err),
		)
	}

	s.classifyAndStore(ctx, reportID, rpt)

	return &SubmitResult{
		ReportID:      reportID,
		OccurredAt:    occurredAt,
		EditableUntil: occurredAt.Add(editableWindow),
	}, nil
}

// resolveLink token → 摘要 → 链接状态机
// 检查顺序：NotFound → Expired（先于 used 检查）→ AlreadyUsed
func (s *SubmissionService) resolveLink(ctx context.Context, rawToken string) (*domain.ReportLink, error) {
	if s.pepper == "" {
		return nil, ErrPepperMissing
	}

	link, err := s.links.GetByTokenHash(ctx, token.Hash(rawToken, s.pepper))
	if err != nil {
		return nil, err
	}

	if err := link.CheckConsumable(s.now()); err != nil {
		return nil, err
	}
	return link, nil
}

// checkRateLimits IP 优先、token 其次；任一超限立即拒绝，不触及任何状态
func (s *SubmissionService) checkRateLimits(ctx context.Context, clientIP, rawToken string) error {
	res, err := s.limiter.Check(ctx, "ip:"+clientIP, s.rlCfg.IPLimit, s.rlCfg.Window)
	if err != nil {
		return fmt.Errorf("failed to check ip rate limit: %w", err)
	}
	if !res.Allowed {
		return &RateLimitError{Scope: "ip", Limit: s.rlCfg.IPLimit, Remaining: res.Remaining, ResetAt: res.ResetAt}
	}

	res, err = s.limiter.Check(ctx, "token:"+rawToken, s.rlCfg.TokenLimit, s.rlCfg.Window)
	if err != nil {
		return fmt.Errorf("failed to check token rate limit: %w", err)
	}
	if !res.Allowed {
		return &RateLimitError{Scope: "token", Limit: s.rlCfg.TokenLimit, Remaining: res.Remaining, ResetAt: res.ResetAt}
	}
	return nil
}

// classifyAndStore 同步分类并回填；任何失败只记日志
func (s *SubmissionService) classifyAndStore(ctx context.Context, reportID string, rpt *domain.Report) {
	assessment := s.classifier.Classify(risk.Input{
		RouteStatus:              rpt.RouteStatus,
		DelayMinutes:             rpt.DelayMinutes,
		DelayReason:              rpt.DelayReason,
		CargoDamageDescription:   rpt.CargoDamageDescription,
		VehicleDamageDescription: rpt.VehicleDamageDescription,
		NextDayBlockers:          rpt.NextDayBlockers,
		IsProblem:                rpt.IsProblem,
	})

	if err := s.reports.UpdateRiskAssessment(ctx, reportID, assessment.Level.String(), assessment.Tags, assessment.Summary); err != nil {
		s.logger.Error("Failed to store risk assessment",
			zap.String("report_id", reportID),
			zap.String("risk_level", assessment.Level.String()),
			zap.Error(err),
		)
		return
	}

	if assessment.Level == risk.LevelHigh && s.notifier != nil {
		if err := s.notifier.NotifyHighRisk(ctx, ReportAlert{
			ReportID:  reportID,
			DriverID:  rpt.DriverID,
			CompanyID: rpt.CompanyID,
			RiskLevel: assessment.Level.String(),
			Tags:      assessment.Tags,
			Summary:   assessment.Summary,
		}); err != nil {
			s.logger.Error("Failed to deliver high risk alert",
				zap.String("report_id", reportID),
				zap.Error(err),
			)
		}
	}
}
