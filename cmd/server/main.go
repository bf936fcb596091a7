package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/facilities-pm/backend/internal/cache"
	"github.com/facilities-pm/backend/internal/config"
	"github.com/facilities-pm/backend/internal/db"
	"github.com/facilities-pm/backend/internal/forecast"
	httpapi "github.com/facilities-pm/backend/internal/http"
	"github.com/facilities-pm/backend/internal/service"
	"github.com/facilities-pm/backend/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.Level(level).With().Str("service", "pm-insights").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()
	store.Table = cfg.WorkOrdersTable
	store.OrderBy = cfg.WorkOrdersOrder
	store.PageSize = cfg.FetchPageSize

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := store.RegisterMetrics(reg, cfg.MetricsNS); err != nil {
		logger.Fatal().Err(err).Msg("failed to register pool metrics")
	}

	var model forecast.Model = forecast.SeasonalRegression{}
	if cfg.ForecastURL != "" {
		model = forecast.HTTPModel{BaseURL: cfg.ForecastURL}
		logger.Info().Str("url", cfg.ForecastURL).Msg("using remote forecast model")
	}

	engine := &service.Engine{
		Fetcher:       store,
		Forecaster:    forecast.New(model, logger),
		Logger:        logger,
		Metrics:       telemetry.NewMetrics(reg, cfg.MetricsNS),
		Tracer:        telemetry.NewTracer(),
		LookAheadDays: cfg.LookAheadDays,
		Periods:       cfg.ForecastPeriods,
	}

	deps := httpapi.Deps{Engine: engine, Store: store, Gatherer: reg}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid redis url")
		}
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, responses will not be cached")
		} else {
			deps.Cache = rc
		}
	}

	router := httpapi.Router(cfg, deps, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
