// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends selectable with STORE_BACKEND.
const (
	BackendDB     = "db"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Database drivers selectable with DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds the relational backend settings.
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
	Debug      bool
}

// RedisConfig holds the redis backend settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev     bool
	Seed    bool
	Backend string
	// ExchangeRate is the initial foreign-to-base conversion rate.
	ExchangeRate float64
	// CredentialScheme is "plain" or "bcrypt".
	CredentialScheme string
	Lang             string
	SessionSecret    string
	ProfileCacheTTL  time.Duration
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "costopro"),
			Password:   getEnv("DB_PASSWORD", "costopro"),
			DBName:     getEnv("DB_NAME", "costopro"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "costopro.db"),
			Debug:      getEnvBool("DB_DEBUG", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Dev:              getEnvBool("DEV", true),
			Seed:             getEnvBool("SEED", true),
			Backend:          strings.ToLower(getEnv("STORE_BACKEND", BackendDB)),
			ExchangeRate:     getEnvFloat("EXCHANGE_RATE", 3.75),
			CredentialScheme: strings.ToLower(getEnv("CREDENTIAL_SCHEME", "plain")),
			Lang:             getEnv("APP_LANG", "es"),
			SessionSecret:    getEnv("SESSION_SECRET", "devsessionsecret"),
			ProfileCacheTTL:  time.Duration(getEnvInt("PROFILE_CACHE_TTL", 300)) * time.Second,
		},
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.App.Backend {
	case BackendDB, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.App.Backend)
	}
	if c.App.Backend == BackendDB {
		switch c.Database.Driver {
		case DriverSQLite, DriverPostgres:
		default:
			return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
		}
	}
	if c.App.ExchangeRate <= 0 {
		return fmt.Errorf("EXCHANGE_RATE must be positive, got %v", c.App.ExchangeRate)
	}
	switch c.App.CredentialScheme {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("unknown CREDENTIAL_SCHEME %q", c.App.CredentialScheme)
	}
	if !c.App.Dev && c.App.SessionSecret == "devsessionsecret" {
		return fmt.Errorf("SESSION_SECRET must be set outside dev mode")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
