package setup

import (
	"log/slog"
	"os"

	"movie-store/app"
	"movie-store/config"
	"movie-store/database"
)

// InitStore opens the configured movie store, creating file and schema if needed
func InitStore(cfg *config.Config, logger *slog.Logger) (*database.Store, error) {
	opts := append(cfg.StoreOptions(), database.WithLogger(logger))

	store, err := database.OpenNamed(cfg.DataDir, cfg.StoreName, opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("movie store initialized", "path", store.Path())
	return store, nil
}

// InitApp initializes the application with all dependencies
func InitApp(store *database.Store, logger *slog.Logger) *app.App {
	application := app.New(store, logger)
	logger.Info("application initialized with dependency injection")
	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(store *database.Store, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("failed to close movie store", "error", err)
			return
		}
		logger.Info("movie store closed")
	}
}

// NewLogger builds the process logger: JSON in production, text otherwise
func NewLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     LogLevel(cfg.LogLevel),
		AddSource: cfg.Env == "development",
	}

	if cfg.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// LogLevel maps a LOG_LEVEL value to a slog level
func LogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
