package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movie-store/config"
	"movie-store/config/setup"
)

func main() {
	config.Load()
	cfg := config.AppConfig

	logger := setup.NewLogger(cfg)
	slog.SetDefault(logger)

	store, err := setup.InitStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open movie store", "error", err)
		os.Exit(1)
	}

	application := setup.InitApp(store, logger)

	app := setup.NewFiberApp(cfg, logger)
	setup.ApplyMiddleware(app, cfg, logger)
	setup.RegisterRoutes(app, application)

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	setup.Shutdown(store, logger)
	logger.Info("server stopped")
}
