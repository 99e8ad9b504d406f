package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Email index backends
const (
	EmailIndexMemory = "memory"
	EmailIndexRedis  = "redis"
)

// Record store drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Review   ReviewConfig
}

// ServerConfig holds the health/metrics server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds record store configuration
type DatabaseConfig struct {
	Driver string
	URL    string
}

// RedisConfig holds email index configuration
type RedisConfig struct {
	Backend  string
	URL      string
	PASSWORD string
	Prefix   string
}

// TelegramConfig holds chat transport configuration
type TelegramConfig struct {
	Token       string
	PollTimeout int
	Debug       bool
}

// ReviewConfig holds reviewer and workflow settings
type ReviewConfig struct {
	AdminID         int64
	BrandName       string
	BacklogInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			URL:    getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Backend:  strings.ToLower(getEnv("EMAIL_INDEX_BACKEND", EmailIndexMemory)),
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
			Prefix:   getEnv("EMAIL_INDEX_PREFIX", "kyc:email:"),
		},
		Telegram: TelegramConfig{
			Token:       getEnv("BOT_TOKEN", ""),
			PollTimeout: getEnvAsInt("TELEGRAM_POLL_TIMEOUT", 60),
			Debug:       getEnvAsBool("TELEGRAM_DEBUG", false),
		},
		Review: ReviewConfig{
			AdminID:         getEnvAsInt64("ADMIN_ID", 0),
			BrandName:       getEnv("BRAND_NAME", "ForexFlock"),
			BacklogInterval: getEnvAsDuration("BACKLOG_INTERVAL", 30*time.Second),
		},
	}
}

// Validate reports every missing or invalid required setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Telegram.Token == "" {
		errs = append(errs, errors.New("BOT_TOKEN is required"))
	}
	if c.Review.AdminID == 0 {
		errs = append(errs, errors.New("ADMIN_ID is required and must be a numeric user id"))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", c.Database.Driver))
	}
	switch c.Redis.Backend {
	case EmailIndexMemory:
	case EmailIndexRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis email index"))
		}
	default:
		errs = append(errs, fmt.Errorf("EMAIL_INDEX_BACKEND %q is not supported", c.Redis.Backend))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
