package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/barberledger/internal/adapter/http/handler"
	"github.com/iho/barberledger/internal/adapter/http/middleware"
	"github.com/iho/barberledger/internal/infrastructure/metrics"
	"github.com/iho/barberledger/internal/usecase"
)

// RouterConfig holds dependencies for the router. Metrics, Gatherer,
// RateLimiter and IdempotencyStore are optional.
type RouterConfig struct {
	Logger           zerolog.Logger
	RegisterHandler  *handler.RegisterHandler
	ServiceHandler   *handler.ServiceHandler
	ReportHandler    *handler.ReportHandler
	HealthHandler    *handler.HealthHandler
	Metrics          *metrics.Metrics
	Gatherer         prometheus.Gatherer
	RateLimiter      *middleware.RateLimiter
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			if cfg.Metrics != nil {
				idempotency.WithReplayCounter(cfg.Metrics.IdempotentReplay)
			}
			r.Use(idempotency.Wrap)
		}

		r.Post("/register", cfg.RegisterHandler.Create)
		r.Put("/register", cfg.RegisterHandler.Update)
	})

	r.Delete("/register/delete/{id}", cfg.RegisterHandler.Delete)
	r.Get("/register/", cfg.RegisterHandler.ListByDescription)
	r.Get("/register/{substring}", cfg.RegisterHandler.ListByDescription)
	r.Get("/register/id/{id}", cfg.RegisterHandler.Get)
	r.Get("/register/{start}/{end}", cfg.RegisterHandler.ListByDateRange)

	r.Get("/service", cfg.ServiceHandler.List)

	r.Route("/report", func(r chi.Router) {
		r.Get("/register/{start}/{end}", cfg.ReportHandler.Register)
		r.Get("/service", cfg.ReportHandler.Service)
	})

	return r
}
