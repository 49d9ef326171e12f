package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthtrack/internal/api"
	"github.com/terraincognita07/healthtrack/internal/config"
	"github.com/terraincognita07/healthtrack/internal/logging"
	"github.com/terraincognita07/healthtrack/internal/storage"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return commandError("load config", err)
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func runServer(ctx context.Context, cfg config.Config) error {
	logger, err := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	secretKey, err := cfg.ResolveSecretKey()
	if err != nil {
		return commandError("invalid SECRET_KEY", err)
	}

	location := cfg.Location()
	time.Local = location

	repositories, closeStorage, err := storage.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			logger.Warn("storage close failed", zap.Error(err))
		}
	}()

	handler, err := api.NewHandler(repositories, api.Options{
		SecretKey:    secretKey,
		TokenTTL:     cfg.TokenTTL,
		CookieSecure: cfg.CookieSecure,
		Location:     location,
		Logger:       logger,
		BcryptCost:   cfg.BcryptCost,
	})
	if err != nil {
		return commandError("handler init failed", err)
	}

	app := newApp(cfg, handler, logger)

	if ctx == nil {
		ctx = context.Background()
	}
	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("healthtrack listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("storage", cfg.StorageBackend),
		zap.String("tz", location.String()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return commandError("server exited", err)
	}
	logger.Info("healthtrack stopped")
	return nil
}

func newApp(cfg config.Config, handler *api.Handler, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "healthtrack",
		DisableStartupMessage: true,
		ErrorHandler:          api.ErrorHandler,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDevelopment()}))
	app.Use(api.RequestID())
	app.Use(api.RequestLogger(logger))
	app.Use(compress.New())
	app.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	api.RegisterRoutes(app, handler)
	return app
}

func corsConfig(origin string) cors.Config {
	return cors.Config{
		AllowOrigins:     origin,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, Retry-After",
		AllowCredentials: origin != "*",
	}
}
