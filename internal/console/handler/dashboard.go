package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/infra"
	"go.uber.org/zap"
)

// MaxActivityLimit - верхняя граница ?limit= для ленты активности.
const MaxActivityLimit = 100

// DashboardService Описываем, что нам нужно от сервиса.
// Оба метода не возвращают ошибок: деградацию они отрабатывают сами.
type DashboardService interface {
	Snapshot(ctx context.Context) domain.Snapshot
	RecentActivities(ctx context.Context, limit int) []domain.Activity
}

type DashboardHandler struct {
	service       DashboardService
	activityLimit int
	logger        *zap.Logger
}

func NewDashboardHandler(s DashboardService, activityLimit int, logger *zap.Logger) *DashboardHandler {
	if activityLimit <= 0 || activityLimit > MaxActivityLimit {
		activityLimit = 10
	}
	return &DashboardHandler{
		service:       s,
		activityLimit: activityLimit,
		logger:        logger.Named("dashboard-api"),
	}
}

// GetStats отдает сводку. Всегда 200: упавшие источники уже заменены fallback-ами.
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot(r.Context())
	if len(snap.Degraded) > 0 {
		h.logger.Debug("serving degraded snapshot",
			zap.String("trace_id", infra.TraceID(r.Context())),
			zap.Stringers("degraded", snap.Degraded))
	}
	h.writeJSON(w, r, snap)
}

type activitiesResponse struct {
	Activities []domain.Activity `json:"activities"`
}

// GetActivities отдает ленту последних событий, best-effort.
func (h *DashboardHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	limit := h.activityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		// Кривой limit не повод отказывать дашборду
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, MaxActivityLimit)
		}
	}

	h.writeJSON(w, r, activitiesResponse{Activities: h.service.RecentActivities(r.Context(), limit)})
}

func (h *DashboardHandler) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Заголовок уже ушел, остается только лог
		h.logger.Warn("failed to write response",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
}
