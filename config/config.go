package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"movie-store/database"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	Env               string
	LogLevel          string
	DataDir           string
	StoreName         string
	BusyTimeout       time.Duration
	BusyRetryInterval time.Duration
	BusyRetryLimit    int
	CORSOrigins       string
	RateLimit         int
	SlowRequest       time.Duration
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = FromEnv()

	if AppConfig.DataDir == "" {
		dir, err := database.DefaultDataDir()
		if err != nil {
			log.Fatal("DATA_DIR is required: ", err)
		}
		AppConfig.DataDir = dir
	}
	if AppConfig.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT must be positive")
	}
	if AppConfig.BusyRetryLimit < 0 {
		log.Fatal("BUSY_RETRY_LIMIT must not be negative")
	}
}

// FromEnv reads the configuration from the environment without loading .env
// or applying fatal checks.
func FromEnv() *Config {
	defaults := database.DefaultOptions()

	return &Config{
		Port:              GetEnv("PORT", "3000"),
		Env:               GetEnv("ENV", "development"),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		DataDir:           GetEnv("DATA_DIR", ""),
		StoreName:         GetEnv("STORE_NAME", "movies"),
		BusyTimeout:       GetEnvDuration("BUSY_TIMEOUT", defaults.BusyTimeout),
		BusyRetryInterval: GetEnvDuration("BUSY_RETRY_INTERVAL", defaults.BusyRetryInterval),
		BusyRetryLimit:    GetEnvInt("BUSY_RETRY_LIMIT", defaults.BusyRetryLimit),
		CORSOrigins:       GetEnv("CORS_ORIGINS", "*"),
		RateLimit:         GetEnvInt("RATE_LIMIT", 200),
		SlowRequest:       GetEnvDuration("SLOW_REQUEST", 500*time.Millisecond),
	}
}

// StoreOptions turns the store settings into database options.
func (c *Config) StoreOptions() []database.Option {
	return []database.Option{
		database.WithBusyTimeout(c.BusyTimeout),
		database.WithBusyRetry(c.BusyRetryInterval, c.BusyRetryLimit),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[Config] Invalid integer for %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[Config] Invalid duration for %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
