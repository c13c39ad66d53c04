package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Logging    LoggingConfig
	Extraction ExtractionConfig
	Cache      CacheConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // Full connection string, takes precedence over the fields below
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	Enabled            bool
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or text
	FilePath   string // Empty logs to stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ExtractionConfig holds the defaults the query extractor falls back to
type ExtractionConfig struct {
	DefaultBudgetMin      int
	DefaultBudgetMax      int
	BudgetSlack           int // Added to a lone budget figure to form budget_max
	DefaultBedrooms       int
	MaxBedrooms           int
	DefaultCommuteMinutes int
	DefaultPriorities     []string
	DefaultTransportMode  string
}

// CacheConfig holds extraction cache configuration
type CacheConfig struct {
	Size int // 0 disables the cache
}

// DefaultExtraction returns the stock extraction defaults
func DefaultExtraction() ExtractionConfig {
	return ExtractionConfig{
		DefaultBudgetMin:      0,
		DefaultBudgetMax:      3000,
		BudgetSlack:           500,
		DefaultBedrooms:       1,
		MaxBedrooms:           10,
		DefaultCommuteMinutes: 45,
		DefaultPriorities:     []string{"short_commute", "low_price"},
		DefaultTransportMode:  "transit",
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	def := DefaultExtraction()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", ""),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "nestfinder"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			FilePath:   getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
		Extraction: ExtractionConfig{
			DefaultBudgetMin:      getEnvAsInt("EXTRACT_BUDGET_MIN", def.DefaultBudgetMin),
			DefaultBudgetMax:      getEnvAsInt("EXTRACT_BUDGET_MAX", def.DefaultBudgetMax),
			BudgetSlack:           getEnvAsInt("EXTRACT_BUDGET_SLACK", def.BudgetSlack),
			DefaultBedrooms:       getEnvAsInt("EXTRACT_BEDROOMS", def.DefaultBedrooms),
			MaxBedrooms:           getEnvAsInt("EXTRACT_MAX_BEDROOMS", def.MaxBedrooms),
			DefaultCommuteMinutes: getEnvAsInt("EXTRACT_COMMUTE_MINUTES", def.DefaultCommuteMinutes),
			DefaultPriorities:     getEnvAsList("EXTRACT_PRIORITIES", def.DefaultPriorities),
			DefaultTransportMode:  getEnv("EXTRACT_TRANSPORT_MODE", def.DefaultTransportMode),
		},
		Cache: CacheConfig{
			Size: getEnvAsInt("EXTRACT_CACHE_SIZE", 1024),
		},
	}
	cfg.PostgreSQL.Enabled = cfg.PostgreSQL.DSN != "" || cfg.PostgreSQL.Host != ""

	if cfg.Extraction.DefaultBudgetMax < cfg.Extraction.DefaultBudgetMin {
		return nil, fmt.Errorf("EXTRACT_BUDGET_MAX (%d) is below EXTRACT_BUDGET_MIN (%d)",
			cfg.Extraction.DefaultBudgetMax, cfg.Extraction.DefaultBudgetMin)
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer value, using default", "key", key, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
