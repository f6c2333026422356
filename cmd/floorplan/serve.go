package main

import (
	"context"
	"fmt"
	"time"

	"floorplan-service/internal/common/logging"
	"floorplan-service/internal/common/middleware"
	"floorplan-service/internal/floorplan/handlers"
	"floorplan-service/internal/floorplan/repository"
	"floorplan-service/internal/floorplan/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the floor plan HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
}

func serve(ctx context.Context, opts *options) error {
	cfg := opts.cfg
	logger := logging.FromContext(ctx)

	// ============================================================
	// Storage
	// ============================================================

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(ctx, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("init repository: %w", err)
	}

	deps := map[string]handlers.Pinger{"store": repo}

	var notifier service.Notifier = service.NopNotifier{}
	if cfg.RedisAddr != "" {
		broker := service.NewRedisNotifier(cfg.RedisAddr, cfg.RedisChannel)
		if err := broker.Ping(ctx); err != nil {
			logger.Warn("redis not reachable, position events may be dropped", "addr", cfg.RedisAddr, "err", err)
		}
		notifier = broker
		deps["broker"] = broker
	}
	defer notifier.Close()

	// ============================================================
	// Editor
	// ============================================================

	editor := service.NewEditor(repo, notifier, cfg.Engine, logger.WithPrefix("editor"))
	if err := editor.Refresh(ctx); err != nil {
		return err
	}
	go editor.Run(ctx, cfg.RefreshInterval)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Floor Plan Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(logger.WithPrefix("http")))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Routes
	// ============================================================

	health := handlers.NewHealth(deps)
	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe)

	api := app.Group("/api/v1")
	handlers.NewFloorplanHandler(editor, logger).Register(api)

	// ============================================================
	// Server Start
	// ============================================================

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting floor plan service", "addr", addr, "env", cfg.Environment, "refresh", cfg.RefreshInterval)
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
