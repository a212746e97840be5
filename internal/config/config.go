package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/family-gazette-api/internal/render"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Batch generation configuration
	Import ImportConfig

	// Logging configuration
	Log LogConfig

	// Article cache configuration
	Redis RedisConfig

	// Page rendering configuration
	Render RenderConfig

	// Cross-origin configuration
	CORS CORSConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MigrationsPath  string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// ImportConfig holds batch generation job settings
type ImportConfig struct {
	BatchSize     int
	MaxUploadSize int64 // in bytes
	UploadDir     string
	PollInterval  time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string
	Format     string // "json" or "pretty"
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// RedisConfig holds article cache settings. An empty URL disables caching.
type RedisConfig struct {
	URL string
	TTL time.Duration
}

// RenderConfig holds page rendering settings
type RenderConfig struct {
	DefaultLayout string
	PublicBaseURL string
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables, after loading a
// .env file from the working directory when one exists
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "family_gazette"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Import: ImportConfig{
			BatchSize:     getIntEnv("IMPORT_BATCH_SIZE", 500),
			MaxUploadSize: getInt64Env("MAX_UPLOAD_SIZE", 20*1024*1024), // 20MB
			UploadDir:     getEnv("UPLOAD_DIR", "./data/uploads"),
			PollInterval:  getDurationEnv("IMPORT_POLL_INTERVAL", 2*time.Second),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getIntEnv("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getIntEnv("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getIntEnv("LOG_MAX_AGE_DAYS", 28),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
			TTL: getDurationEnv("REDIS_TTL", 24*time.Hour),
		},
		Render: RenderConfig{
			DefaultLayout: getEnv("RENDER_DEFAULT_LAYOUT", render.DefaultLayout),
			PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Import.BatchSize <= 0 {
		return fmt.Errorf("IMPORT_BATCH_SIZE must be positive")
	}
	if !render.IsValidLayout(c.Render.DefaultLayout) {
		return fmt.Errorf("RENDER_DEFAULT_LAYOUT %q is not a known layout", c.Render.DefaultLayout)
	}
	if c.Redis.URL != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("REDIS_TTL must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping empty entries
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
