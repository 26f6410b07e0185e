package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleetlink-report/internal/domain"
	"fleetlink-report/internal/service"
	"fleetlink-report/internal/token"

	"go.uber.org/zap"
)

const maxSubmitBodyBytes = 64 * 1024

// SubmissionService 编排器接口（便于 handler 单测替换）
type SubmissionService interface {
	ValidateLink(ctx context.Context, rawToken, clientIP string) (*service.LinkValidation, error)
	SubmitReport(ctx context.Context, rawToken, clientIP string, payload *service.SubmitPayload) (*service.SubmitResult, error)
}

// PublicReportHandler 公开提交接口
// GET  /api/public/report-links/{token}          校验链接（只读）
// POST /api/public/report-links/{token}/reports  提交当日报告
type PublicReportHandler struct {
	svc    SubmissionService
	logger *zap.Logger
}

func NewPublicReportHandler(svc SubmissionService, logger *zap.Logger) *PublicReportHandler {
	return &PublicReportHandler{svc: svc, logger: logger}
}

// ServeReportLinks 按路径分发两个操作
func (h *PublicReportHandler) ServeReportLinks(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/public/report-links/")

	// {token}
	if !strings.Contains(rest, "/") {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.validateLink(w, r, rest)
		return
	}

	// {token}/reports
	if rawToken, ok := strings.CutSuffix(rest, "/reports"); ok && !strings.Contains(rawToken, "/") {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.submitReport(w, r, rawToken)
		return
	}

	w.WriteHeader(http.StatusNotFound)
}

func (h *PublicReportHandler) validateLink(w http.ResponseWriter, r *http.Request, rawToken string) {
	rawToken = token.Normalize(rawToken)
	if rawToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_token",
			"message": "token path parameter is required",
		})
		return
	}

	out, err := h.svc.ValidateLink(r.Context(), rawToken, clientIP(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	var registration *string
	if out.HasVehicle {
		registration = &out.VehicleRegistration
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":               true,
		"driverName":          out.DriverName,
		"vehicleRegistration": registration,
		"expiresAt":           out.ExpiresAt.UTC().Format(time.RFC3339),
		"editableUntil":       nil,
	})
}

func (h *PublicReportHandler) submitReport(w http.ResponseWriter, r *http.Request, rawToken string) {
	rawToken = token.Normalize(rawToken)
	if rawToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_token",
			"message": "token path parameter is required",
		})
		return
	}

	var payload service.SubmitPayload
	if err := readBodyJSON(r, maxSubmitBodyBytes, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_json",
			"message": "request body is not valid JSON",
		})
		return
	}

	out, err := h.svc.SubmitReport(r.Context(), rawToken, clientIP(r), &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"reportUuid":    out.ReportID,
		"editableUntil": out.EditableUntil.UTC().Format(time.RFC3339),
	})
}

// writeServiceError 服务层错误 → HTTP 状态码
// 链接状态错误映射 404/410/409；限流 429 带 X-RateLimit-* 头；
// 配置错误和未知错误统一 500，不向调用方暴露内部细节
func (h *PublicReportHandler) writeServiceError(w http.ResponseWriter, err error) {
	var rle *service.RateLimitError
	if errors.As(err, &rle) {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rle.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(rle.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(rle.ResetAt.Unix(), 10))
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":   "rate_limited",
			"message": "too many requests, retry later",
		})
		return
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "validation_failed",
			"message": "payload validation failed",
			"details": verr.Fields,
		})
		return
	}

	var dup *domain.DuplicateReportError
	if errors.As(err, &dup) {
		body := map[string]any{
			"error":   "duplicate_report",
			"message": "a report for this driver and date already exists",
		}
		if dup.ExistingReportID != "" {
			body["existingReportUuid"] = dup.ExistingReportID
		}
		writeJSON(w, http.StatusConflict, body)
		return
	}

	switch {
	case errors.Is(err, domain.ErrLinkNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "not_found",
			"message": "report link not found",
		})
	case errors.Is(err, domain.ErrLinkExpired):
		writeJSON(w, http.StatusGone, map[string]any{
			"error":   "expired",
			"message": "report link has expired",
		})
	case errors.Is(err, domain.ErrLinkUsed):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":   "already_used",
			"message": "report link has already been used",
		})
	case errors.Is(err, service.ErrPepperMissing):
		// 配置错误：所有公开提交都被阻断，日志必须醒目
		h.logger.Error("Public submission blocked: token pepper is not configured")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "server_error",
			"message": "server configuration error",
		})
	default:
		h.logger.Error("Public submission request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "server_error",
			"message": "unexpected server error",
		})
	}
}
