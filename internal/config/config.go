// Package config handles application configuration from environment variables and command-line flags.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Database backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Logging     LoggingConfig
	Import      ImportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	// Backend selects the storage engine, either "sqlite" or "postgres".
	Backend string
	// Path is the data directory for the SQLite database file.
	Path string
	// PostgresDSN is the connection string used when Backend is "postgres".
	PostgresDSN string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// ImportConfig holds import pipeline settings.
type ImportConfig struct {
	// MaxUploadSize caps the size of uploaded import files in bytes.
	MaxUploadSize int64
	// RemoteTimeout bounds requests to a remote Shaarli instance.
	RemoteTimeout time.Duration
}

// Load reads configuration from flags, environment variables, and an
// optional .env file, in that order of precedence.
func Load() (*Config, error) {
	loadDotEnv(".env")

	var (
		flagEnv      = flag.String("env", "", "environment (development|production)")
		flagHost     = flag.String("host", "", "server host")
		flagPort     = flag.Int("port", 0, "server port")
		flagBackend  = flag.String("db-backend", "", "database backend (sqlite|postgres)")
		flagDataPath = flag.String("data-path", "", "data directory for the SQLite database")
		flagPgDSN    = flag.String("postgres-dsn", "", "PostgreSQL connection string")
		flagLogLevel = flag.String("log-level", "", "log level (debug|info|warn|error)")
	)
	flag.Parse()

	cfg := &Config{
		Environment: getConfigValue(*flagEnv, "GONGYU_ENV", "development"),
		Server: ServerConfig{
			Host:            getConfigValue(*flagHost, "GONGYU_HOST", "0.0.0.0"),
			Port:            getConfigValueInt(*flagPort, "GONGYU_PORT", 8080),
			ReadTimeout:     getConfigValueDuration("", "GONGYU_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getConfigValueDuration("", "GONGYU_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getConfigValueDuration("", "GONGYU_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Backend:     getConfigValue(*flagBackend, "GONGYU_DB_BACKEND", BackendSQLite),
			Path:        getConfigValue(*flagDataPath, "GONGYU_DATA_PATH", "./data"),
			PostgresDSN: getConfigValue(*flagPgDSN, "GONGYU_POSTGRES_DSN", ""),
		},
		Logging: LoggingConfig{
			Level:  getConfigValue(*flagLogLevel, "GONGYU_LOG_LEVEL", "info"),
			Format: getConfigValue("", "GONGYU_LOG_FORMAT", ""),
		},
		Import: ImportConfig{
			MaxUploadSize: getConfigValueInt64(0, "GONGYU_MAX_UPLOAD_SIZE", 10<<20),
			RemoteTimeout: getConfigValueDuration("", "GONGYU_REMOTE_TIMEOUT", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	switch c.Database.Backend {
	case BackendSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("data path is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.Database.PostgresDSN == "" {
			return fmt.Errorf("postgres DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown database backend: %q", c.Database.Backend)
	}

	if c.Import.MaxUploadSize <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}

	return nil
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// SQLitePath returns the full path to the SQLite database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.Database.Path, "gongyu.db")
}

// loadDotEnv loads environment variables from a .env file if it exists.
// Values already set in the environment are not overridden.
func loadDotEnv(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)

		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

func getConfigValueInt(flagValue int, envKey string, defaultValue int) int {
	if flagValue != 0 {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		if parsed, err := strconv.Atoi(envValue); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getConfigValueInt64(flagValue int64, envKey string, defaultValue int64) int64 {
	if flagValue != 0 {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		if parsed, err := strconv.ParseInt(envValue, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getConfigValueDuration(flagValue, envKey string, defaultValue time.Duration) time.Duration {
	if flagValue != "" {
		if parsed, err := time.ParseDuration(flagValue); err == nil {
			return parsed
		}
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		if parsed, err := time.ParseDuration(envValue); err == nil {
			return parsed
		}
	}
	return defaultValue
}
