package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartcity/aqi-forecast/internal/config"
	"github.com/smartcity/aqi-forecast/internal/delivery/http"
	"github.com/smartcity/aqi-forecast/internal/domain"
	"github.com/smartcity/aqi-forecast/internal/events/kafka"
	"github.com/smartcity/aqi-forecast/internal/observability"
	"github.com/smartcity/aqi-forecast/internal/repository/postgres"
	"github.com/smartcity/aqi-forecast/internal/repository/sqlite"
	"github.com/smartcity/aqi-forecast/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run wires and serves the API. Deferred closes run on every return path.
func run() error {
	// Load environment variables
	foundEnv := config.LoadDotEnv()

	// Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	if !foundEnv {
		log.Info("no .env file found, using system environment")
	}

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Dependency Injection: Repositories
	repo, closeRepo := openRepository(ctx, cfg, log)
	defer closeRepo()

	checks := map[string]http.HealthChecker{"database": repo}

	// Dependency Injection: Events
	var publisher service.ForecastPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error("failed to close kafka publisher", "error", err)
			}
		}()
		publisher = kp
		log.Info("publishing forecasts to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	// Dependency Injection: Models
	var models domain.ModelSet
	if cfg.MLServiceURL != "" {
		mlBridge := service.NewMLBridge(cfg.MLServiceURL, cfg.ModelTimeout)
		models = mlBridge.Models()
		checks["models"] = mlBridge
		log.Info("using model service", "url", cfg.MLServiceURL)
	} else {
		models = service.NewSeasonalModels()
		log.Warn("ML_SERVICE_URL not set, running with seasonal baseline models")
	}

	// Dependency Injection: Services
	forecastSvc := service.NewForecastService(models, service.Options{
		City:         cfg.City,
		DateLayout:   cfg.DateLayout,
		Policy:       cfg.OutOfRangePolicy,
		ModelTimeout: cfg.ModelTimeout,
		CacheSize:    cfg.CacheSize,
		MaxRangeDays: cfg.MaxRangeDays,
		Repository:   repo,
		Publisher:    publisher,
		Logger:       log,
		Metrics:      observability.NewMetrics(),
	})

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "AQI Forecast API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, forecastSvc, checks)

	// Graceful shutdown
	listenErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "city", cfg.City)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	if err := awaitStop(listenErr, quit); err != nil {
		forecastSvc.WaitBackground()
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	forecastSvc.WaitBackground()
	log.Info("server exited gracefully")
	return nil
}

// awaitStop blocks until a shutdown signal arrives or the listener returns.
// A listener that returns before any signal is reported as an error.
func awaitStop(listenErr <-chan error, quit <-chan os.Signal) error {
	select {
	case <-quit:
		return nil
	case err := <-listenErr:
		if err == nil {
			err = errors.New("listener closed unexpectedly")
		}
		return err
	}
}

// openRepository selects the audit log backend. An unreachable database falls
// back to the in-memory repository so forecasts are still served.
func openRepository(ctx context.Context, cfg *config.Config, log *slog.Logger) (service.ForecastRepository, func()) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
		}
		if err != nil {
			log.Warn("could not connect to database, running with in-memory audit log", "error", err)
			if pool != nil {
				pool.Close()
			}
			break
		}
		repo := postgres.NewPostgresRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Warn("could not prepare forecast_logs table", "error", err)
		}
		log.Info("connected to PostgreSQL")
		return repo, pool.Close

	case config.DriverSQLite:
		repo, err := sqlite.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("could not open sqlite database, running with in-memory audit log", "error", err)
			break
		}
		log.Info("opened SQLite audit log")
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Error("failed to close sqlite database", "error", err)
			}
		}
	}

	return postgres.NewMockRepository(1000), func() {}
}
