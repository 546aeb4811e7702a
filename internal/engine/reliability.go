package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/infra"
	"go.uber.org/zap"
)

// BreakerFetcher оборачивает фетчер в Circuit Breaker на каждый источник.
// Ретраев нет: открытый предохранитель просто отказывает сразу, без сетевого вызова,
// и агрегатор отдает fallback, не дожидаясь таймаута.
type BreakerFetcher struct {
	next     StatsFetcher
	breakers [domain.SourceCount]*gobreaker.CircuitBreaker
	activity *gobreaker.CircuitBreaker
}

func NewBreakerFetcher(next StatsFetcher, cfg infra.BreakerConfig, metrics *Metrics, logger *zap.Logger) *BreakerFetcher {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	logger = logger.Named("breaker")

	newBreaker := func(name string) *gobreaker.CircuitBreaker {
		metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
		return gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout, // Время, через которое CB попробует "закрыться"
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
			},
			// Отмена клиентом и общий дедлайн снимка - не вина источника
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrSnapshotDeadline)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
				logger.Warn("circuit breaker state changed",
					zap.String("source", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		})
	}

	f := &BreakerFetcher{next: next}
	for _, src := range domain.Sources {
		f.breakers[src] = newBreaker(src.String())
	}
	f.activity = newBreaker("recent_activity")
	return f
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 0.5
	default:
		return 0
	}
}

// State отдает текущее состояние предохранителя источника.
// abandonedBySnapshot: вызов оборвал дедлайн всего снимка, а не собственный таймаут источника.
func abandonedBySnapshot(ctx context.Context, err error) bool {
	if !errors.Is(context.Cause(ctx), ErrSnapshotDeadline) {
		return false
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

func (f *BreakerFetcher) State(src domain.StatsSource) gobreaker.State {
	return f.breakers[src].State()
}

func guard[T any](ctx context.Context, cb *gobreaker.CircuitBreaker, call func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (interface{}, error) {
		v, err := call()
		if err != nil && abandonedBySnapshot(ctx, err) {
			err = fmt.Errorf("%w: %w", ErrSnapshotDeadline, err)
		}
		return v, err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

func (f *BreakerFetcher) EmployeeStats(ctx context.Context) (domain.EmployeeStats, error) {
	return guard(ctx, f.breakers[domain.SourceEmployee], func() (domain.EmployeeStats, error) {
		return f.next.EmployeeStats(ctx)
	})
}

func (f *BreakerFetcher) LeaveStats(ctx context.Context, year int) (domain.LeaveStats, error) {
	return guard(ctx, f.breakers[domain.SourceLeave], func() (domain.LeaveStats, error) {
		return f.next.LeaveStats(ctx, year)
	})
}

func (f *BreakerFetcher) RecruitmentReport(ctx context.Context) (domain.RecruitmentReport, error) {
	return guard(ctx, f.breakers[domain.SourceRecruitment], func() (domain.RecruitmentReport, error) {
		return f.next.RecruitmentReport(ctx)
	})
}

func (f *BreakerFetcher) AttendanceStats(ctx context.Context) (domain.AttendanceStats, error) {
	return guard(ctx, f.breakers[domain.SourceAttendance], func() (domain.AttendanceStats, error) {
		return f.next.AttendanceStats(ctx)
	})
}

func (f *BreakerFetcher) ComplianceStats(ctx context.Context) (domain.ComplianceStats, error) {
	return guard(ctx, f.breakers[domain.SourceCompliance], func() (domain.ComplianceStats, error) {
		return f.next.ComplianceStats(ctx)
	})
}

func (f *BreakerFetcher) ExpenseStats(ctx context.Context) (domain.ExpenseStats, error) {
	return guard(ctx, f.breakers[domain.SourceExpense], func() (domain.ExpenseStats, error) {
		return f.next.ExpenseStats(ctx)
	})
}

func (f *BreakerFetcher) TrainingStats(ctx context.Context) (domain.TrainingStats, error) {
	return guard(ctx, f.breakers[domain.SourceTraining], func() (domain.TrainingStats, error) {
		return f.next.TrainingStats(ctx)
	})
}

func (f *BreakerFetcher) NotificationStats(ctx context.Context) (domain.NotificationStats, error) {
	return guard(ctx, f.breakers[domain.SourceNotification], func() (domain.NotificationStats, error) {
		return f.next.NotificationStats(ctx)
	})
}

func (f *BreakerFetcher) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	return guard(ctx, f.activity, func() ([]domain.Activity, error) {
		return f.next.RecentActivities(ctx, limit)
	})
}

var _ StatsFetcher = (*BreakerFetcher)(nil)
