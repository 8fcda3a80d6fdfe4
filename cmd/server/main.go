package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"
	"github.com/voxlink-ai/voxlink/internal/api"
	"github.com/voxlink-ai/voxlink/internal/config"
	"github.com/voxlink-ai/voxlink/internal/database"
	"github.com/voxlink-ai/voxlink/internal/domain"
	"github.com/voxlink-ai/voxlink/internal/remote"
	"github.com/voxlink-ai/voxlink/internal/service"
	"github.com/voxlink-ai/voxlink/internal/store"
	"go.uber.org/zap"
)

func main() {
	_ = config.Load()

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	app := &cli.App{
		Name:  "voxlink",
		Usage: "Voice-agent catalog with remote platform sync",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the API server",
				Action: func(c *cli.Context) error {
					return runServe(c.Context, logger)
				},
			},
			{
				Name:  "sync",
				Usage: "Run a full account sync for one tenant",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tenant",
						Usage:    "Tenant ID to sync",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return runSync(c.Context, logger, c.String("tenant"))
				},
			},
		},
		Action: func(c *cli.Context) error {
			return runServe(c.Context, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal("application error", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}

func connect(ctx context.Context, logger *zap.Logger) (*pgxpool.Pool, error) {
	dbURL := config.DatabaseURL()
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	pool, err := database.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return pool, nil
}

func runServe(ctx context.Context, logger *zap.Logger) error {
	pool, err := connect(ctx, logger)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("connected to database")

	gateway, err := remote.NewFactory(config.RemoteProvider(), config.RemoteAPIBaseURL())
	if err != nil {
		return fmt.Errorf("create remote gateway factory: %w", err)
	}
	logger.Info("remote gateway initialized", zap.String("provider", config.RemoteProvider()))

	app := api.NewApp(pool, gateway, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func runSync(ctx context.Context, logger *zap.Logger, tenantFlag string) error {
	tenantID, err := uuid.Parse(tenantFlag)
	if err != nil {
		return fmt.Errorf("invalid tenant id: %w", err)
	}

	pool, err := connect(ctx, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	gateway, err := remote.NewFactory(config.RemoteProvider(), config.RemoteAPIBaseURL())
	if err != nil {
		return fmt.Errorf("create remote gateway factory: %w", err)
	}

	tenantStore := store.NewTenantStore(pool)
	tenant, err := tenantStore.GetByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("load tenant: %w", err)
	}

	syncSvc := service.NewSyncService(store.NewAgentStore(pool), logger)
	gw := gateway.ForTenant(tenant.RemoteAPIKey)

	report, err := syncSvc.SyncAll(ctx, gw, tenant.ID)
	if err != nil {
		return fmt.Errorf("sync account: %w", err)
	}

	logger.Info("sync finished",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("errors", report.Errors))

	for _, item := range report.Details {
		if item.Action == domain.SyncActionFailed {
			logger.Warn("item failed", zap.String("remote_id", item.RemoteID), zap.String("error", item.Error))
		}
	}

	return nil
}
