package connectors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/avast/retry-go/v5"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/engine"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/infra"
	"go.uber.org/zap"
)

// Эндпоинты статистики HR-бэкенда
const (
	PathEmployeeStats     = "/api/v1/stats/employees"
	PathLeaveStats        = "/api/v1/stats/leaves"
	PathRecruitmentStats  = "/api/v1/stats/recruitment"
	PathAttendanceStats   = "/api/v1/stats/attendance"
	PathComplianceStats   = "/api/v1/stats/compliance"
	PathExpenseStats      = "/api/v1/stats/expenses"
	PathTrainingStats     = "/api/v1/stats/training"
	PathNotificationStats = "/api/v1/stats/notifications"
	PathRecentActivities  = "/api/v1/activities/recent"
	PathHealth            = "/health"
)

// HRAPIClient - HTTP-реализация engine.StatsFetcher.
// Каждый метод делает ровно один GET без ретраев; таймаут задает вызывающий через ctx.
type HRAPIClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHRAPIClient создает клиент. client == nil означает http.DefaultClient.
func NewHRAPIClient(baseURL string, client *http.Client, logger *zap.Logger) *HRAPIClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HRAPIClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  client,
		logger:  logger.Named("hr-api"),
	}
}

func (c *HRAPIClient) EmployeeStats(ctx context.Context) (domain.EmployeeStats, error) {
	var out domain.EmployeeStats
	err := c.getJSON(ctx, PathEmployeeStats, nil, &out)
	return out, err
}

func (c *HRAPIClient) LeaveStats(ctx context.Context, year int) (domain.LeaveStats, error) {
	var query url.Values
	if year > 0 {
		query = url.Values{"year": {strconv.Itoa(year)}}
	}
	var out domain.LeaveStats
	err := c.getJSON(ctx, PathLeaveStats, query, &out)
	return out, err
}

func (c *HRAPIClient) RecruitmentReport(ctx context.Context) (domain.RecruitmentReport, error) {
	var out domain.RecruitmentReport
	err := c.getJSON(ctx, PathRecruitmentStats, nil, &out)
	return out, err
}

func (c *HRAPIClient) AttendanceStats(ctx context.Context) (domain.AttendanceStats, error) {
	var out domain.AttendanceStats
	err := c.getJSON(ctx, PathAttendanceStats, nil, &out)
	return out, err
}

func (c *HRAPIClient) ComplianceStats(ctx context.Context) (domain.ComplianceStats, error) {
	var out domain.ComplianceStats
	err := c.getJSON(ctx, PathComplianceStats, nil, &out)
	return out, err
}

func (c *HRAPIClient) ExpenseStats(ctx context.Context) (domain.ExpenseStats, error) {
	var out domain.ExpenseStats
	err := c.getJSON(ctx, PathExpenseStats, nil, &out)
	return out, err
}

func (c *HRAPIClient) TrainingStats(ctx context.Context) (domain.TrainingStats, error) {
	var out domain.TrainingStats
	err := c.getJSON(ctx, PathTrainingStats, nil, &out)
	return out, err
}

func (c *HRAPIClient) NotificationStats(ctx context.Context) (domain.NotificationStats, error) {
	var out domain.NotificationStats
	err := c.getJSON(ctx, PathNotificationStats, nil, &out)
	return out, err
}

func (c *HRAPIClient) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	var out []domain.Activity
	if err := c.getJSON(ctx, PathRecentActivities, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WaitReady проверяет доступность HR-бэкенда при старте сервиса.
// Это единственное место с ретраями: вызовы статистики их не делают.
func (c *HRAPIClient) WaitReady(ctx context.Context, attempts uint) error {
	if attempts == 0 {
		attempts = 1
	}
	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.DelayType(retry.BackOffDelay),
	)
	return r.Do(func() error {
		err := c.get(ctx, PathHealth, nil, nil)
		if err != nil {
			c.logger.Debug("hr api not ready yet", zap.Error(err))
		}
		return err
	})
}

func (c *HRAPIClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	err := c.get(ctx, path, query, out)
	if err != nil {
		// Причину подробно логирует агрегатор, здесь - только для отладки
		c.logger.Debug("hr api call failed",
			zap.String("path", path),
			zap.String("trace_id", infra.TraceID(ctx)),
			zap.Error(err))
	}
	return err
}

func (c *HRAPIClient) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if traceID := infra.TraceID(ctx); traceID != infra.EmptyTraceID {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if token := infra.BearerToken(ctx); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("hr api %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(rb))}
	}

	if out == nil {
		return nil
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	// null на верхнем уровне - не данные, а пустой ответ
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("%w: %s: null body", ErrDecode, path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return nil
}

var _ engine.StatsFetcher = (*HRAPIClient)(nil)
