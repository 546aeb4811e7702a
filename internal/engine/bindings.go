package engine

import (
	"context"
	"fmt"

	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
)

// sourceBinding связывает источник с фетчером, fallback-ом и полем снимка.
type sourceBinding interface {
	fetch(ctx context.Context, f StatsFetcher) (any, error)
	fallbackFor(fb FallbackProvider) any
	accepts(v any) bool
	assign(s *domain.Snapshot, v any)
	field(s *domain.Snapshot) any
}

type binding[T any] struct {
	get      func(ctx context.Context, f StatsFetcher) (T, error)
	fallback func(fb FallbackProvider) T
	set      func(s *domain.Snapshot, v T)
	read     func(s *domain.Snapshot) T
}

func (b binding[T]) fetch(ctx context.Context, f StatsFetcher) (any, error) {
	v, err := b.get(ctx, f)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (b binding[T]) fallbackFor(fb FallbackProvider) any { return b.fallback(fb) }

func (b binding[T]) accepts(v any) bool {
	_, ok := v.(T)
	return ok
}

func (b binding[T]) assign(s *domain.Snapshot, v any) { b.set(s, v.(T)) }

func (b binding[T]) field(s *domain.Snapshot) any { return b.read(s) }

// bindings индексируется источником: порядок полей снимка не зависит от порядка ответов.
var bindings = [domain.SourceCount]sourceBinding{
	domain.SourceEmployee: binding[domain.EmployeeStats]{
		get:      func(ctx context.Context, f StatsFetcher) (domain.EmployeeStats, error) { return f.EmployeeStats(ctx) },
		fallback: FallbackProvider.EmployeeStats,
		set:      func(s *domain.Snapshot, v domain.EmployeeStats) { s.Employee = v },
		read:     func(s *domain.Snapshot) domain.EmployeeStats { return s.Employee },
	},
	domain.SourceLeave: binding[domain.LeaveStats]{
		get:      func(ctx context.Context, f StatsFetcher) (domain.LeaveStats, error) { return f.LeaveStats(ctx, 0) },
		fallback: FallbackProvider.LeaveStats,
		set:      func(s *domain.Snapshot, v domain.LeaveStats) { s.Leave = v },
		read:     func(s *domain.Snapshot) domain.LeaveStats { return s.Leave },
	},
	domain.SourceRecruitment: binding[domain.RecruitmentStats]{
		get: func(ctx context.Context, f StatsFetcher) (domain.RecruitmentStats, error) {
			report, err := f.RecruitmentReport(ctx)
			if err != nil {
				return domain.RecruitmentStats{}, err
			}
			// Отсутствующий счетчик - не ошибка, а 0
			return report.Normalize(), nil
		},
		fallback: FallbackProvider.RecruitmentStats,
		set:      func(s *domain.Snapshot, v domain.RecruitmentStats) { s.Recruitment = v },
		read:     func(s *domain.Snapshot) domain.RecruitmentStats { return s.Recruitment },
	},
	domain.SourceAttendance: binding[domain.AttendanceStats]{
		get:      func(ctx context.Context, f StatsFetcher) (domain.AttendanceStats, error) { return f.AttendanceStats(ctx) },
		fallback: FallbackProvider.AttendanceStats,
		set:      func(s *domain.Snapshot, v domain.AttendanceStats) { s.Attendance = v },
		read:     func(s *domain.Snapshot) domain.AttendanceStats { return s.Attendance },
	},
	domain.SourceCompliance: binding[domain.ComplianceStats]{
		get:      func(ctx context.Context, f StatsFetcher) (domain.ComplianceStats, error) { return f.ComplianceStats(ctx) },
		fallback: FallbackProvider.ComplianceStats,
		set:      func(s *domain.Snapshot, v domain.ComplianceStats) { s.Compliance = v },
		read:     func(s *domain.Snapshot) domain.ComplianceStats { return s.Compliance },
	},
	domain.SourceExpense: binding[domain.ExpenseStats]{
		get:      func(ctx context.Context, f StatsFetcher) (domain.ExpenseStats, error) { return f.ExpenseStats(ctx) },
		fallback: FallbackProvider.ExpenseStats,
		set:      func(s *domain.Snapshot, v domain.ExpenseStats) { s.Expense = v },
		read:     func(s *domain.Snapshot) domain.ExpenseStats { return s.Expense },
	},
	domain.SourceTraining: binding[domain.TrainingStats]{
		get:      func(ctx context.Context, f StatsFetcher) (domain.TrainingStats, error) { return f.TrainingStats(ctx) },
		fallback: FallbackProvider.TrainingStats,
		set:      func(s *domain.Snapshot, v domain.TrainingStats) { s.Training = v },
		read:     func(s *domain.Snapshot) domain.TrainingStats { return s.Training },
	},
	domain.SourceNotification: binding[domain.NotificationStats]{
		get:      func(ctx context.Context, f StatsFetcher) (domain.NotificationStats, error) { return f.NotificationStats(ctx) },
		fallback: FallbackProvider.NotificationStats,
		set:      func(s *domain.Snapshot, v domain.NotificationStats) { s.Notification = v },
		read:     func(s *domain.Snapshot) domain.NotificationStats { return s.Notification },
	},
}

// Источник без фетчера или fallback-а - дефект сборки, а не ошибка времени выполнения.
func init() {
	if err := checkBindings(bindings[:]); err != nil {
		panic(err)
	}
}

func checkBindings(table []sourceBinding) error {
	if len(table) != int(domain.SourceCount) {
		return fmt.Errorf("engine: %d bindings for %d sources", len(table), domain.SourceCount)
	}
	for _, src := range domain.Sources {
		if table[src] == nil {
			return fmt.Errorf("engine: no binding registered for source %s", src)
		}
	}
	return nil
}

// FallbackFor возвращает fallback-значение источника в виде его типа (domain.*Stats).
func FallbackFor(fb FallbackProvider, src domain.StatsSource) any {
	return bindings[src].fallbackFor(fb)
}

// SnapshotField возвращает значение поля снимка, соответствующего источнику.
func SnapshotField(s *domain.Snapshot, src domain.StatsSource) any {
	return bindings[src].field(s)
}
