// Package config reads application settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Store    string
	Database DatabaseConfig
	Server   ServerConfig
	CORS     CORSConfig
	Logging  LoggingConfig

	AutoMigrate bool
	SeedDemo    bool
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver     string // pgx or postgres, used when Store is postgres
	URL        string // Full PostgreSQL URL
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads .env files when present and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env", "config/local.env")
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env files.
// Malformed values and failed checks are reported together in one error.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Store: strings.ToLower(getEnvOrDefault("STORE", StoreMemory)),
	}

	var problems []string
	report := func(err error) {
		if err != nil {
			problems = append(problems, err.Error())
		}
	}

	report(cfg.loadDatabase())
	report(cfg.loadServer())
	cfg.loadCORS()
	cfg.loadLogging()

	var err error
	cfg.AutoMigrate, err = getBool("AUTO_MIGRATE", true)
	report(err)
	cfg.SeedDemo, err = getBool("SEED_DEMO", false)
	report(err)

	if err := cfg.validate(problems); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadDatabase() error {
	c.Database.Driver = getEnvOrDefault("DB_DRIVER", "pgx")
	c.Database.SQLitePath = getEnvOrDefault("SQLITE_PATH", "musicstream.db")
	c.Database.URL = os.Getenv("DATABASE_URL")

	if c.Database.URL != "" {
		return nil
	}

	c.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
	c.Database.User = os.Getenv("DB_USER")
	c.Database.Password = os.Getenv("DB_PASSWORD")
	c.Database.Name = os.Getenv("DB_NAME")
	c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

	port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
	if err != nil {
		return fmt.Errorf("DB_PORT must be an integer, got %q", os.Getenv("DB_PORT"))
	}
	c.Database.Port = port

	if c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}
	return nil
}

func (c *Config) loadServer() error {
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("PORT must be an integer, got %q", os.Getenv("PORT"))
	}
	c.Server.Port = port
	return nil
}

func (c *Config) loadCORS() {
	raw := getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, origin)
		}
	}
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
}

// Validate checks that all required configuration is present and valid.
// Every problem is reported, not just the first.
func (c *Config) Validate() error {
	return c.validate(nil)
}

func (c *Config) validate(problems []string) error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.Database.URL == "" {
			problems = append(problems, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME) when STORE=postgres")
		}
		if c.Database.Driver != "pgx" && c.Database.Driver != "postgres" {
			problems = append(problems, "DB_DRIVER must be one of: pgx, postgres")
		}
	default:
		problems = append(problems, "STORE must be one of: memory, postgres, sqlite")
	}

	if c.Store == StoreSQLite && c.Database.SQLitePath == "" {
		problems = append(problems, "SQLITE_PATH must not be empty when STORE=sqlite")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DriverAndDSN returns the database/sql driver name and DSN for the configured SQL store.
func (c *Config) DriverAndDSN() (string, string) {
	if c.Store == StoreSQLite {
		return "sqlite3", c.Database.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000"
	}
	return c.Database.Driver, c.Database.URL
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return v, nil
}
