package engine

import (
	"context"
	"time"

	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
	"go.uber.org/zap"
)

// Warmup собирает один снимок при старте сервиса.
// Заодно прогревает соединения и Circuit Breaker-ы и показывает в логе,
// какие подсистемы HR-бэкенда недоступны еще до первого запроса фронтенда.
func Warmup(ctx context.Context, a *Aggregator, logger *zap.Logger) []domain.StatsSource {
	start := time.Now()
	snap := a.Snapshot(ctx)

	if len(snap.Degraded) == 0 {
		logger.Info("warm-up snapshot is complete", zap.Duration("took", time.Since(start)))
		return snap.Degraded
	}

	logger.Warn("warm-up snapshot is degraded, fallbacks will be served",
		zap.Stringers("sources", snap.Degraded),
		zap.Duration("took", time.Since(start)))
	return snap.Degraded
}
