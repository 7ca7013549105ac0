package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/iho/barberledger/internal/adapter/exchangerate"
	httpAdapter "github.com/iho/barberledger/internal/adapter/http"
	"github.com/iho/barberledger/internal/adapter/http/handler"
	"github.com/iho/barberledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/barberledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/barberledger/internal/adapter/repository/redis"
	"github.com/iho/barberledger/internal/infrastructure/amqp"
	"github.com/iho/barberledger/internal/infrastructure/config"
	"github.com/iho/barberledger/internal/infrastructure/eventpublisher"
	applogger "github.com/iho/barberledger/internal/infrastructure/logger"
	"github.com/iho/barberledger/internal/infrastructure/metrics"
	"github.com/iho/barberledger/internal/infrastructure/postgres"
	"github.com/iho/barberledger/internal/infrastructure/redis"
	"github.com/iho/barberledger/internal/usecase"
)

const (
	limiterCleanupInterval = time.Minute
	limiterIdleTTL         = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	logger := applogger.New(applogger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		stop()
		os.Exit(1)
	}

	logger.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Migrate and connect to PostgreSQL
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return err
	}

	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancelConnect()

	pool, err := postgres.NewPoolWithConfig(connectCtx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	logger.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(connectCtx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	logger.Info().Msg("connected to redis")

	m := metrics.New(prometheus.DefaultRegisterer)

	// Events
	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	dispatcher := eventpublisher.NewDispatcher(eventpublisher.Config{
		Publisher: publisher,
		Recorder:  m,
		Logger:    logger,
	})
	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	dispatchDone := make(chan struct{})
	go func() {
		defer close(dispatchDone)
		_ = dispatcher.Start(dispatchCtx)
	}()
	defer func() {
		cancelDispatch()
		<-dispatchDone
	}()

	// Initialize repositories
	registerRepo := postgresRepo.NewRegisterRepository(pool)
	serviceRepo := postgresRepo.NewServiceRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	rates := exchangerate.NewClient(cfg.FXURL,
		exchangerate.WithTimeout(cfg.FXTimeout),
		exchangerate.WithMaxRetries(cfg.FXMaxRetries),
		exchangerate.WithObserver(m),
	)

	// Initialize use cases
	registerUC := usecase.NewRegisterUseCase(registerRepo, postgresRepo.NewULIDGenerator(), dispatcher, postgresRepo.NewRetrier(), m)
	serviceUC := usecase.NewServiceUseCase(serviceRepo)
	reportUC := usecase.NewReportUseCase(registerUC, serviceUC, rates, m)

	limiter := newRateLimiter(cfg, m)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Logger:          logger,
		RegisterHandler: handler.NewRegisterHandler(registerUC, loc),
		ServiceHandler:  handler.NewServiceHandler(serviceUC, loc),
		ReportHandler:   handler.NewReportHandler(reportUC, loc),
		HealthHandler: handler.NewHealthHandler(
			handler.Check{Name: "postgres", Ping: pool.Ping},
			handler.Check{Name: "redis", Ping: redis.Ping(redisClient)},
		),
		Metrics:          m,
		Gatherer:         prometheus.DefaultGatherer,
		RateLimiter:      limiter,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("port", cfg.HTTPPort).Str("timezone", loc.String()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if limiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(limiterCleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if n := limiter.CleanupLimiters(limiterIdleTTL); n > 0 {
						logger.Debug().Int("removed", n).Msg("rate limiter cleanup")
					}
				}
			}
		})
	}

	return g.Wait()
}

// newPublisher returns the AMQP publisher when AMQP_URL is set and a
// logging publisher otherwise.
func newPublisher(cfg *config.Config, logger zerolog.Logger) (eventpublisher.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info().Msg("AMQP_URL not set, register events are logged only")
		return eventpublisher.NewLogPublisher(logger), func() {}, nil
	}

	p, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to AMQP: %w", err)
	}
	logger.Info().Str("exchange", cfg.AMQPExchange).Msg("connected to AMQP")

	return p, func() {
		if err := p.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close AMQP publisher")
		}
	}, nil
}

// newRateLimiter returns nil when RATE_LIMIT_RPS is not positive.
func newRateLimiter(cfg *config.Config, m *metrics.Metrics) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	if m != nil {
		limiter.WithRejectedCounter(m.RateLimitHits)
	}
	return limiter
}
