package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Admin    AdminConfig
	Sync     SyncConfig
	Device   DeviceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AdminConfig holds the single operator credential for the ops API.
// The password is stored as a bcrypt hash, never plain text.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// SyncConfig holds defaults for the punch reconciliation pipeline.
type SyncConfig struct {
	Timezone           string
	DuplicateThreshold time.Duration
	AutoEnabled        bool
	AutoInterval       time.Duration
}

// DeviceConfig holds defaults for talking to ZKTeco terminals.
type DeviceConfig struct {
	DialTimeout time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine where env vars come from the runtime
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_sync"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	config.Admin = AdminConfig{
		Email:        getEnv("ADMIN_EMAIL", ""),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	// Sync configuration
	thresholdMin, err := strconv.Atoi(getEnv("SYNC_DUPLICATE_THRESHOLD_MIN", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_DUPLICATE_THRESHOLD_MIN: %w", err)
	}

	autoInterval, err := time.ParseDuration(getEnv("SYNC_AUTO_INTERVAL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_AUTO_INTERVAL: %w", err)
	}

	config.Sync = SyncConfig{
		Timezone:           getEnv("SYNC_TIMEZONE", "Asia/Ho_Chi_Minh"),
		DuplicateThreshold: time.Duration(thresholdMin) * time.Minute,
		AutoEnabled:        getEnv("SYNC_AUTO_ENABLED", "false") == "true",
		AutoInterval:       autoInterval,
	}

	// Device transport configuration
	dialTimeout, err := time.ParseDuration(getEnv("DEVICE_DIAL_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_DIAL_TIMEOUT: %w", err)
	}

	config.Device = DeviceConfig{
		DialTimeout: dialTimeout,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Admin.Email == "" {
		return fmt.Errorf("ADMIN_EMAIL is required")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if c.Sync.DuplicateThreshold <= 0 {
		return fmt.Errorf("SYNC_DUPLICATE_THRESHOLD_MIN must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
