// Package db opens the relational backend and prepares its schema.
package db

import (
	"fmt"
	"time"

	"github.com/diewo77/costopro/internal/config"
	"github.com/diewo77/costopro/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectAttempts = 5

// Open connects to sqlite or postgres. Postgres connections are retried to
// give a freshly started container time to come up.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	var (
		d   *gorm.DB
		err error
	)
	for i := 0; i < connectAttempts; i++ {
		d, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("database connection failed, retrying")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := d.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	log.Info().Str("driver", cfg.Driver).Msg("database connected")
	return d, nil
}

// Migrate creates or updates the key-value table.
func Migrate(d *gorm.DB) error {
	if err := d.AutoMigrate(&models.KVEntry{}); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}
