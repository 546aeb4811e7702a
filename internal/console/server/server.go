package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/console/handler"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/engine"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/infra"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/infra/auth"
	"go.uber.org/zap"
)

type DashboardServer struct {
	router *chi.Mux
	logger *zap.Logger
	cfg    infra.ServerConfig

	// Проверка RS256 токенов фронтенда. nil - дашборд открыт (локальная разработка)
	authValidator auth.TokenValidator

	// Источник /metrics
	gatherer prometheus.Gatherer

	dashHandler *handler.DashboardHandler // /api/v1/dashboard
}

// NewDashboardServer собирает роутер BFF дашборда
func NewDashboardServer(
	cfg infra.ServerConfig,
	logger *zap.Logger,
	validator auth.TokenValidator,
	gatherer prometheus.Gatherer,
	dashH *handler.DashboardHandler,
) *DashboardServer {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s := &DashboardServer{
		router:        chi.NewRouter(),
		logger:        logger.Named("dashboard-api"),
		cfg:           cfg,
		authValidator: validator,
		gatherer:      gatherer,
		dashHandler:   dashH,
	}

	s.routes()
	return s
}

func (s *DashboardServer) routes() {
	r := s.router

	// --- 1. Глобальные инфраструктурные Middleware (для всех) ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(engine.TracingMiddleware)

	if len(s.cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
			ExposedHeaders:   []string{"X-Trace-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// --- 2. ПУБЛИЧНЫЕ РОУТЫ ---
	r.Group(func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	})

	// --- 3. ДАШБОРД (RS256, если настроен ключ) ---
	r.Group(func(r chi.Router) {
		if s.authValidator != nil {
			r.Use(auth.NewMiddleware(s.authValidator, s.logger))
		} else {
			s.logger.Warn("auth public key is not configured, dashboard routes are open")
		}

		r.Route("/api/v1/dashboard", func(r chi.Router) {
			r.Get("/stats", s.dashHandler.GetStats)
			r.Get("/activities", s.dashHandler.GetActivities)
		})
	})
}

// ServeHTTP позволяет использовать DashboardServer как стандартный http.Handler
func (s *DashboardServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
