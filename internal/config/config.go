package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ImportConfig holds settings for spreadsheet uploads and the import worker pool.
type ImportConfig struct {
	MaxUploadSize     int64    // Bytes
	AllowedExtensions []string // Lowercase, with leading dot
	Workers           int      // Concurrent imports
	QueueSize         int      // Pending imports before ImportFile blocks
}

type Config struct {
	// Server
	Port     string
	Env      string // "development", "production"
	LogLevel string // debug, info, warn, error; empty picks by Env

	// Database
	DatabaseURL    string
	MigrationsPath string

	// CORS
	AllowedOrigins []string

	// Currency used when rounding payouts for display
	Currency string

	// Imports
	Import ImportConfig

	// Stale upload sweeper
	SweeperEnabled   bool
	SweeperSchedule  string        // Cron expression with seconds field
	StaleUploadAfter time.Duration // Uploads processing longer than this are failed
}

// LoadDotEnv reads .env files into the process environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env", "../../.env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
			return
		}
	}
}

func Load() *Config {
	env := getEnv("ENV", "development")

	return &Config{
		// Server
		Port:     getEnv("PORT", "8080"),
		Env:      env,
		LogLevel: getEnv("LOG_LEVEL", ""),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/fdonboard?sslmode=disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", ""), // Empty uses the embedded migrations

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		Currency: getEnv("CURRENCY", "INR"),

		// Imports
		Import: ImportConfig{
			MaxUploadSize:     getInt64Env("MAX_UPLOAD_SIZE", 10*1024*1024),
			AllowedExtensions: splitExtensions(getEnv("ALLOWED_FILE_EXTENSIONS", ".xlsx,.xls,.csv")),
			Workers:           getIntEnv("IMPORT_WORKERS", 2),
			QueueSize:         getIntEnv("IMPORT_QUEUE_SIZE", 16),
		},

		// Sweeper
		SweeperEnabled:   getBoolEnv("SWEEPER_ENABLED", true),
		SweeperSchedule:  getEnv("SWEEPER_SCHEDULE", "0 */5 * * * *"), // Default: every 5 minutes
		StaleUploadAfter: getDurationEnv("STALE_UPLOAD_AFTER", 30*time.Minute),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// IsAllowedExtension reports whether filename ends with one of the configured extensions.
func (c *ImportConfig) IsAllowedExtension(filename string) bool {
	name := strings.ToLower(filename)
	for _, ext := range c.AllowedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func splitExtensions(s string) []string {
	parts := strings.Split(s, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		exts = append(exts, p)
	}
	return exts
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
