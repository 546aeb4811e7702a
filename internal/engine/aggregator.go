package engine

/*
Aggregator собирает сводку дашборда из восьми независимых подсистем HR-бэкенда.

- Fan-out: все источники запускаются одновременно, каждый в своей горутине.
- Settle-all: ждем все источники, первая ошибка ничего не прерывает.
- Arena + index: каждая горутина пишет только в свою ячейку массива outcomes,
  поэтому блокировки не нужны, а порядок полей не зависит от порядка ответов.
- Fallback: упавший источник заменяется статическим значением, причина пишется в лог.

Snapshot не возвращает ошибку: вызывающий всегда получает полный снимок.
*/

import (
	"context"
	"fmt"
	"time"

	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options - эксплуатационные ограничения. Нулевые значения отключают ограничение.
type Options struct {
	// FetchTimeout ограничивает каждый вызов источника
	FetchTimeout time.Duration
	// SnapshotDeadline ограничивает ожидание всех источников сразу
	SnapshotDeadline time.Duration
}

type Aggregator struct {
	fetcher   StatsFetcher
	fallbacks FallbackProvider
	metrics   *Metrics
	logger    *zap.Logger
	opts      Options
	now       func() time.Time
}

func NewAggregator(fetcher StatsFetcher, fallbacks FallbackProvider, metrics *Metrics, logger *zap.Logger, opts Options) *Aggregator {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Aggregator{
		fetcher:   fetcher,
		fallbacks: fallbacks,
		metrics:   metrics,
		logger:    logger.Named("aggregator"),
		opts:      opts,
		now:       time.Now,
	}
}

// Snapshot опрашивает все источники и собирает полный снимок.
func (a *Aggregator) Snapshot(ctx context.Context) domain.Snapshot {
	start := time.Now()
	defer func() {
		a.metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	}()

	if a.opts.SnapshotDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, a.opts.SnapshotDeadline, ErrSnapshotDeadline)
		defer cancel()
	}

	// 1. Fan-out. Ошибки в группу не возвращаем, иначе получим short-circuit.
	var outcomes [domain.SourceCount]Outcome
	var g errgroup.Group
	for _, src := range domain.Sources {
		g.Go(func() error {
			outcomes[src] = a.settle(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	// 2. Сборка строго в порядке источников
	snap := domain.Snapshot{
		RecentActivities: []domain.Activity{},
		Degraded:         []domain.StatsSource{},
		GeneratedAt:      a.now(),
	}
	for _, src := range domain.Sources {
		b := bindings[src]
		o := outcomes[src]

		if o.OK() && !b.accepts(o.Value) {
			o.Err = fmt.Errorf("unexpected value type %T for source %s", o.Value, src)
		}

		if o.OK() {
			b.assign(&snap, o.Value)
			continue
		}

		a.logger.Warn("stats source failed, serving fallback",
			zap.String("source", src.String()),
			zap.Error(o.Err))
		a.metrics.FallbackTotal.WithLabelValues(src.String()).Inc()

		b.assign(&snap, b.fallbackFor(a.fallbacks))
		snap.Degraded = append(snap.Degraded, src)
	}

	a.metrics.DegradedSources.Set(float64(len(snap.Degraded)))
	if len(snap.Degraded) > 0 {
		a.logger.Info("snapshot assembled with fallbacks",
			zap.Int("degraded", len(snap.Degraded)),
			zap.Duration("took", time.Since(start)))
	}
	return snap
}

// settle выполняет один вызов и гарантирует, что он завершится Outcome-ом:
// паника и зависание превращаются в Failure.
func (a *Aggregator) settle(ctx context.Context, src domain.StatsSource) Outcome {
	start := time.Now()

	fctx := ctx
	if a.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, a.opts.FetchTimeout)
		defer cancel()
	}

	res := make(chan Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				res <- Outcome{Source: src, Err: fmt.Errorf("%w: %v", ErrFetchPanic, r)}
			}
		}()
		v, err := bindings[src].fetch(fctx, a.fetcher)
		res <- Outcome{Source: src, Value: v, Err: err}
	}()

	var o Outcome
	select {
	case o = <-res:
	case <-fctx.Done():
		// Ответ мог прийти одновременно с таймаутом
		select {
		case o = <-res:
		default:
			o = Outcome{Source: src, Err: fmt.Errorf("%w: %w", ErrNotSettled, context.Cause(fctx))}
		}
	}

	status := "success"
	if !o.OK() {
		status = "failure"
	}
	a.metrics.FetchDuration.WithLabelValues(src.String(), status).Observe(time.Since(start).Seconds())
	return o
}

// RecentActivities - отдельный best-effort вызов вне основного fan-out.
// При любой ошибке возвращает пустой список.
func (a *Aggregator) RecentActivities(ctx context.Context, limit int) []domain.Activity {
	if a.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.FetchTimeout)
		defer cancel()
	}

	activities, err := a.fetchActivities(ctx, limit)
	if err != nil {
		a.metrics.ActivityFailures.Inc()
		a.logger.Warn("recent activities unavailable", zap.Int("limit", limit), zap.Error(err))
		return []domain.Activity{}
	}
	if activities == nil {
		return []domain.Activity{}
	}
	return activities
}

func (a *Aggregator) fetchActivities(ctx context.Context, limit int) (activities []domain.Activity, err error) {
	defer func() {
		if r := recover(); r != nil {
			activities, err = nil, fmt.Errorf("%w: %v", ErrFetchPanic, r)
		}
	}()
	return a.fetcher.RecentActivities(ctx, limit)
}
