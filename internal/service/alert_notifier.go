package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ReportAlert HIGH 风险报告的告警载荷
type ReportAlert struct {
	ReportID  string   `json:"reportUuid"`
	DriverID  string   `json:"driverId"`
	CompanyID string   `json:"companyId"`
	RiskLevel string   `json:"riskLevel"`
	Tags      []string `json:"tags"`
	Summary   string   `json:"summary"`
}

// Notifier 告警下发通道
// 只在分类结果为 HIGH 时调用；失败不影响已提交的报告（尽力而为）
type Notifier interface {
	NotifyHighRisk(ctx context.Context, alert ReportAlert) error
}

// WebhookNotifier 通过 HTTP 回调下发告警
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

var _ Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier 创建告警回调客户端
func NewWebhookNotifier(url string, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &WebhookNotifier{
		httpClient: client,
		url:        url,
		logger:     logger,
	}
}

// NotifyHighRisk 推送告警
func (n *WebhookNotifier) NotifyHighRisk(ctx context.Context, alert ReportAlert) error {
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("failed to call alert webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode())
	}

	n.logger.Info("High risk alert delivered",
		zap.String("report_id", alert.ReportID),
		zap.String("risk_level", alert.RiskLevel),
	)
	return nil
}
