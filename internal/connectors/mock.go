package connectors

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/engine"
)

// ErrMockUnavailable - имитация отказа источника в mock-режиме.
var ErrMockUnavailable = errors.New("mock source unavailable")

// MockStatsConnector - генератор статистики в памяти для режима без HR-бэкенда.
// Имитирует сетевую задержку и, при FailureRate > 0, случайные отказы.
type MockStatsConnector struct {
	FailureRate float64
	MinLatency  time.Duration
	MaxLatency  time.Duration
}

func NewMockStatsConnector(failureRate float64) *MockStatsConnector {
	return &MockStatsConnector{
		FailureRate: failureRate,
		MinLatency:  50 * time.Millisecond,
		MaxLatency:  300 * time.Millisecond,
	}
}

// simulate ждет случайную задержку и решает, отказать ли вызову.
func (c *MockStatsConnector) simulate(ctx context.Context, what string) error {
	latency := c.MinLatency
	if spread := c.MaxLatency - c.MinLatency; spread > 0 {
		latency += rand.N(spread)
	}

	select {
	case <-time.After(latency):
	case <-ctx.Done():
		return ctx.Err()
	}

	if c.FailureRate > 0 && rand.Float64() < c.FailureRate {
		return fmt.Errorf("%w: %s", ErrMockUnavailable, what)
	}
	return nil
}

func between(lo, hi int) int {
	return lo + rand.IntN(hi-lo+1)
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part*1000/total) / 10
}

func (c *MockStatsConnector) EmployeeStats(ctx context.Context) (domain.EmployeeStats, error) {
	if err := c.simulate(ctx, "employee"); err != nil {
		return domain.EmployeeStats{}, err
	}
	active := between(100, 160)
	fullTime := between(active/2, active)
	terminated := between(0, 25)
	return domain.EmployeeStats{
		Total:      active + terminated,
		Active:     active,
		Terminated: terminated,
		FullTime:   fullTime,
		PartTime:   active - fullTime,
	}, nil
}

func (c *MockStatsConnector) LeaveStats(ctx context.Context, year int) (domain.LeaveStats, error) {
	if err := c.simulate(ctx, "leave"); err != nil {
		return domain.LeaveStats{}, err
	}
	if year <= 0 {
		year = time.Now().Year()
	}
	approved, pending, rejected := between(5, 40), between(0, 10), between(0, 5)
	return domain.LeaveStats{
		Year:     year,
		Total:    approved + pending + rejected,
		Approved: approved,
		Pending:  pending,
		Rejected: rejected,
	}, nil
}

func (c *MockStatsConnector) RecruitmentReport(ctx context.Context) (domain.RecruitmentReport, error) {
	if err := c.simulate(ctx, "recruitment"); err != nil {
		return domain.RecruitmentReport{}, err
	}
	open, applications := between(1, 12), between(20, 120)
	interviews, shortlisted := between(0, applications/4), between(0, applications/2)
	return domain.RecruitmentReport{
		OpenPositions:       &open,
		TotalApplications:   &applications,
		InterviewsScheduled: &interviews,
		Shortlisted:         &shortlisted,
	}, nil
}

func (c *MockStatsConnector) AttendanceStats(ctx context.Context) (domain.AttendanceStats, error) {
	if err := c.simulate(ctx, "attendance"); err != nil {
		return domain.AttendanceStats{}, err
	}
	total := between(100, 160)
	absent, late, onLeave := between(0, 8), between(0, 10), between(0, 6)
	present := total - absent - onLeave
	return domain.AttendanceStats{
		TotalEmployees: total,
		Present:        present,
		Absent:         absent,
		Late:           late,
		OnLeave:        onLeave,
		AttendanceRate: percent(present, total),
	}, nil
}

func (c *MockStatsConnector) ComplianceStats(ctx context.Context) (domain.ComplianceStats, error) {
	if err := c.simulate(ctx, "compliance"); err != nil {
		return domain.ComplianceStats{}, err
	}
	total := between(30, 60)
	nonCompliant := between(0, 4)
	return domain.ComplianceStats{
		TotalPolicies:  total,
		Compliant:      total - nonCompliant,
		NonCompliant:   nonCompliant,
		PendingReviews: between(0, 3),
		CriticalIssues: between(0, 1),
	}, nil
}

func (c *MockStatsConnector) ExpenseStats(ctx context.Context) (domain.ExpenseStats, error) {
	if err := c.simulate(ctx, "expense"); err != nil {
		return domain.ExpenseStats{}, err
	}
	pending, approved := between(0, 8), between(5, 25)
	pendingAmount := float64(pending * between(100, 600))
	return domain.ExpenseStats{
		TotalClaims:    pending + approved,
		PendingClaims:  pending,
		ApprovedClaims: approved,
		TotalAmount:    pendingAmount + float64(approved*between(150, 500)),
		PendingAmount:  pendingAmount,
	}, nil
}

func (c *MockStatsConnector) TrainingStats(ctx context.Context) (domain.TrainingStats, error) {
	if err := c.simulate(ctx, "training"); err != nil {
		return domain.TrainingStats{}, err
	}
	return domain.TrainingStats{
		ActivePrograms:    between(3, 12),
		EnrolledEmployees: between(10, 60),
		CompletedSessions: between(80, 250),
		UpcomingSessions:  between(0, 6),
		CompletionRate:    float64(between(60, 98)),
	}, nil
}

func (c *MockStatsConnector) NotificationStats(ctx context.Context) (domain.NotificationStats, error) {
	if err := c.simulate(ctx, "notification"); err != nil {
		return domain.NotificationStats{}, err
	}
	total := between(0, 30)
	return domain.NotificationStats{
		Total:          total,
		Unread:         between(0, total),
		Urgent:         between(0, 2),
		ActionRequired: between(0, 3),
	}, nil
}

var mockActivityKinds = []struct{ kind, title string }{
	{"leave_request", "Leave request submitted"},
	{"new_hire", "New employee onboarded"},
	{"expense_claim", "Expense claim filed"},
	{"training_completed", "Training session completed"},
	{"compliance_review", "Compliance review opened"},
}

func (c *MockStatsConnector) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	if err := c.simulate(ctx, "recent_activity"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	now := time.Now()
	out := make([]domain.Activity, 0, limit)
	for i := range limit {
		k := mockActivityKinds[rand.IntN(len(mockActivityKinds))]
		out = append(out, domain.Activity{
			ID:          fmt.Sprintf("act-%d", i+1),
			Type:        k.kind,
			Title:       k.title,
			Description: fmt.Sprintf("%s (generated)", k.title),
			Actor:       fmt.Sprintf("employee-%03d", between(1, 150)),
			OccurredAt:  now.Add(-time.Duration(i*between(5, 90)) * time.Minute),
		})
	}
	return out, nil
}

var _ engine.StatsFetcher = (*MockStatsConnector)(nil)
