package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Latency: время ответа каждого источника
	FetchDuration *prometheus.HistogramVec

	// Fallbacks: сколько раз поле снимка было подменено
	FallbackTotal *prometheus.CounterVec

	// Сборка снимка целиком (fan-out + join)
	SnapshotDuration prometheus.Histogram

	// Сколько источников деградировало в последнем снимке
	DegradedSources prometheus.Gauge

	// Saturation: состояние Circuit Breaker (0 - closed, 0.5 - half-open, 1 - open)
	CircuitBreakerState *prometheus.GaugeVec

	// Лента активности - best-effort, считаем отдельно
	ActivityFailures prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Null Object Pattern - Если рег не передан, используем локальный, который никуда не подключен
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		FetchDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_source_fetch_duration_seconds",
			Help:    "Histogram of stats source fetch latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"source", "status"}),

		FallbackTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_source_fallback_total",
			Help: "Total number of snapshot fields served from fallback values.",
		}, []string{"source"}),

		SnapshotDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_snapshot_duration_seconds",
			Help:    "Histogram of full snapshot assembly latencies.",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),

		DegradedSources: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_snapshot_degraded_sources",
			Help: "Number of sources served from fallback in the latest snapshot.",
		}),

		CircuitBreakerState: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "dashboard_circuit_breaker_state",
			Help: "Current state of the per-source circuit breaker (0=closed, 0.5=half-open, 1=open).",
		}, []string{"source"}),

		ActivityFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "dashboard_recent_activity_failures_total",
			Help: "Total number of failed recent activity fetches.",
		}),
	}
}
