package engine

import (
	"context"
	"errors"

	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
)

// StatsFetcher - один удаленный read-only вызов на источник, без ретраев.
// Реализации: connectors.HRAPIClient (HTTP), connectors.MockStatsConnector (генератор в памяти)
// и BreakerFetcher поверх любой из них.
type StatsFetcher interface {
	EmployeeStats(ctx context.Context) (domain.EmployeeStats, error)
	// LeaveStats принимает год; 0 означает текущий год.
	LeaveStats(ctx context.Context, year int) (domain.LeaveStats, error)
	RecruitmentReport(ctx context.Context) (domain.RecruitmentReport, error)
	AttendanceStats(ctx context.Context) (domain.AttendanceStats, error)
	ComplianceStats(ctx context.Context) (domain.ComplianceStats, error)
	ExpenseStats(ctx context.Context) (domain.ExpenseStats, error)
	TrainingStats(ctx context.Context) (domain.TrainingStats, error)
	NotificationStats(ctx context.Context) (domain.NotificationStats, error)

	// RecentActivities не входит в основной fan-out.
	RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error)
}

var (
	// ErrNotSettled - источник не ответил до истечения таймаута или дедлайна сводки.
	ErrNotSettled = errors.New("stats source did not settle in time")
	// ErrFetchPanic - реализация фетчера запаниковала, паника перехвачена.
	ErrFetchPanic = errors.New("stats fetcher panicked")
	// ErrSnapshotDeadline - причина отмены контекста по Options.SnapshotDeadline.
	// Источник, не успевший к общему дедлайну, не считается сломанным для Circuit Breaker.
	ErrSnapshotDeadline = errors.New("snapshot deadline exceeded")
)

// Outcome - результат одного вызова фетчера.
// Err != nil означает Failure, иначе в Value лежит значение формы источника.
type Outcome struct {
	Source domain.StatsSource
	Value  any
	Err    error
}

func (o Outcome) OK() bool { return o.Err == nil }
