package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/mini_bank_api/internal/adapters/database/pgsql"
	"github.com/SscSPs/mini_bank_api/internal/adapters/eventlog"
	"github.com/SscSPs/mini_bank_api/internal/core/ports"
	"github.com/SscSPs/mini_bank_api/internal/core/services"
	"github.com/SscSPs/mini_bank_api/internal/handlers"
	"github.com/SscSPs/mini_bank_api/internal/middleware"
	"github.com/SscSPs/mini_bank_api/internal/platform/config"
	"github.com/SscSPs/mini_bank_api/internal/utils"
	"github.com/SscSPs/mini_bank_api/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Mini Bank API
// @version 1.0
// @description Account management API with role based access and audit events.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		return err
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	eventLogger, closeSinks := buildEventLogger(ctx, cfg, logger)
	defer closeSinks()

	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), eventLogger)

	if cfg.SeedAdminUsername != "" {
		seedCtx := middleware.WithLogger(ctx, logger)
		if err := container.Auth.SeedAdmin(seedCtx, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.ErrorHandler(eventLogger),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildEventLogger assembles the audit sinks. The structured log sink is always
// present; Redis and PostHog are added when configured and skipped with a
// warning when unreachable.
func buildEventLogger(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.EventLogger, func()) {
	sinks := []ports.EventLogger{eventlog.NewSlogLogger(logger)}
	var closers []func()

	if cfg.RedisAddr != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("Audit stream disabled", slog.String("error", err.Error()))
		} else {
			sinks = append(sinks, eventlog.NewStreamLogger(rdb, cfg.AuditStream, eventlog.WithMaxLen(cfg.AuditStreamMaxLen)))
			closers = append(closers, func() { _ = rdb.Close() })
			logger.Info("Audit stream enabled", slog.String("stream", cfg.AuditStream))
		}
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	if posthogClient.IsInitialized() {
		sinks = append(sinks, eventlog.NewPosthogLogger(posthogClient))
		closers = append(closers, posthogClient.Close)
	}

	return eventlog.NewFanout(sinks...), func() {
		for _, c := range closers {
			c()
		}
	}
}
