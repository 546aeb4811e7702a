package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
	"go.uber.org/zap"
)

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) Snapshot(ctx context.Context) domain.Snapshot {
	args := m.Called(ctx)
	return args.Get(0).(domain.Snapshot)
}

func (m *mockDashboardService) RecentActivities(ctx context.Context, limit int) []domain.Activity {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Activity)
}

func TestDashboardHandler_GetStats(t *testing.T) {
	svc := new(mockDashboardService)
	snap := domain.Snapshot{
		Employee:         domain.EmployeeStats{Total: 142, Active: 128, Terminated: 14, FullTime: 110, PartTime: 18},
		Attendance:       domain.AttendanceStats{TotalEmployees: 128, Present: 115, Absent: 5, Late: 8, OnLeave: 3, AttendanceRate: 96},
		RecentActivities: []domain.Activity{},
		Degraded:         []domain.StatsSource{domain.SourceAttendance},
		GeneratedAt:      time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
	}
	svc.On("Snapshot", mock.Anything).Return(snap).Once()

	h := NewDashboardHandler(svc, 10, zap.NewNop())
	rec := httptest.NewRecorder()
	h.GetStats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []any{"attendance"}, body["degraded"])
	assert.Equal(t, []any{}, body["recent_activities"])
	assert.Contains(t, body, "employee")

	var decoded domain.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, snap.Degraded, decoded.Degraded)
	assert.Equal(t, snap.Attendance, decoded.Attendance)

	svc.AssertExpectations(t)
}

func TestDashboardHandler_GetActivities(t *testing.T) {
	activities := []domain.Activity{{ID: "a1", Type: "new_hire", Title: "Welcome"}}

	cases := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{name: "default limit", query: "", wantLimit: 7},
		{name: "explicit limit", query: "?limit=3", wantLimit: 3},
		{name: "garbage falls back to default", query: "?limit=abc", wantLimit: 7},
		{name: "negative falls back to default", query: "?limit=-2", wantLimit: 7},
		{name: "capped", query: "?limit=5000", wantLimit: MaxActivityLimit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockDashboardService)
			svc.On("RecentActivities", mock.Anything, tc.wantLimit).Return(activities).Once()

			h := NewDashboardHandler(svc, 7, zap.NewNop())
			rec := httptest.NewRecorder()
			h.GetActivities(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/activities"+tc.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var body activitiesResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "a1", body.Activities[0].ID)
			svc.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_GetActivitiesEmpty(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("RecentActivities", mock.Anything, 10).Return([]domain.Activity{}).Once()

	h := NewDashboardHandler(svc, 0, zap.NewNop())
	rec := httptest.NewRecorder()
	h.GetActivities(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/activities", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"activities": []}`, rec.Body.String())
}
