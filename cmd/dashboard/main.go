package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/xela07ax/hr-dashboard-aggregator/internal/connectors"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/console/handler"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/console/server"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/engine"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/infra"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/infra/auth"
)

func main() {
	// 1. Конфиг и логгер
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// Метрики
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := engine.NewMetrics(reg)

	// 2. Источник статистики: HR-бэкенд или генератор в памяти
	var fetcher engine.StatsFetcher
	if cfg.Upstream.MockMode {
		logger.Warn("mock mode enabled, HR backend is not called",
			zap.Float64("failure_rate", cfg.Upstream.MockFailureRate))
		fetcher = connectors.NewMockStatsConnector(cfg.Upstream.MockFailureRate)
	} else {
		client := connectors.NewHRAPIClient(cfg.Upstream.BaseURL, &http.Client{}, logger)

		// Недоступный бэкенд на старте не фатален: дашборд покажет fallback-и
		probeCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := client.WaitReady(probeCtx, cfg.Upstream.ProbeAttempts); err != nil {
			logger.Warn("hr api is not reachable at startup",
				zap.String("base_url", cfg.Upstream.BaseURL),
				zap.Error(err))
		}
		cancel()
		fetcher = client
	}

	// 3. Надежность: Circuit Breaker на каждый источник
	fetcher = engine.NewBreakerFetcher(fetcher, cfg.Breaker, metrics, logger)

	// 4. Core
	aggregator := engine.NewAggregator(
		fetcher,
		engine.NewStaticFallbacks(time.Now()),
		metrics,
		logger,
		engine.Options{
			FetchTimeout:     cfg.Upstream.FetchTimeout,
			SnapshotDeadline: cfg.Upstream.SnapshotDeadline,
		},
	)

	// Прогрев: снимок до первого запроса, результат только в лог
	warmupCtx, warmupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	engine.Warmup(warmupCtx, aggregator, logger)
	warmupCancel()

	// 5. HTTP
	var validator auth.TokenValidator
	if len(cfg.Auth.PublicKey) > 0 {
		pub, err := auth.ParseRSAPublicKey(cfg.Auth.PublicKey)
		if err != nil {
			logger.Fatal("invalid auth public key", zap.Error(err))
		}
		validator = auth.NewBaseValidator(pub, cfg.Auth)
	}

	dashHandler := handler.NewDashboardHandler(aggregator, cfg.Upstream.ActivityLimit, logger)
	router := server.NewDashboardServer(cfg.Server, logger, validator, reg, dashHandler)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("dashboard aggregator started",
			zap.String("addr", srv.Addr),
			zap.Bool("mock_mode", cfg.Upstream.MockMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-stop
	logger.Info("dashboard aggregator stopping...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
		return
	}
	logger.Info("dashboard aggregator exited properly")
}
