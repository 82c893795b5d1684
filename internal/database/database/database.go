// Package database provides database connection management for PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appConfig "github.com/festy23/corpo_padel/internal/config"
	"github.com/festy23/corpo_padel/internal/database/config"
	"github.com/festy23/corpo_padel/internal/database/pool"
	"github.com/festy23/corpo_padel/pkg/retry"
)

// New creates a new database connection using environment variables.
func New(logger *zap.SugaredLogger) (*gorm.DB, error) {
	cfg := config.LoadConfigFromEnv()
	return NewWithConfig(cfg, logger)
}

// NewWithConfig creates a new database connection with custom configuration.
// Connection attempts are retried while the server is unreachable.
func NewWithConfig(cfg config.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	retryCfg := config.LoadRetryConfigFromEnv()
	retryCfg.OnRetry = func(attempt int, err error) {
		logger.Warnw("database connection failed, retrying",
			"attempt", attempt,
			"host", cfg.Host,
			"error", config.SanitizeError(err, cfg),
		)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := config.BuildDSN(cfg)
	gormCfg := GormConfigWithLogging(logger, appConfig.LoadLoggerConfigFromEnv())
	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), gormCfg)
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, pool.LoadPoolConfigFromEnv()); err != nil {
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	return db, nil
}

// GormConfig returns the gorm settings shared by every connection: driver
// errors are translated to gorm sentinels and SQL warnings go through zap.
func GormConfig(logger *zap.SugaredLogger) *gorm.Config {
	return GormConfigWithLogging(logger, appConfig.LoggerConfig{
		SQLLevel:  "warn",
		SlowQuery: 500 * time.Millisecond,
	})
}

// GormConfigWithLogging is GormConfig with SQL logging taken from cfg.
// Statements logged at the info SQL level are written at zap debug level.
func GormConfigWithLogging(logger *zap.SugaredLogger, cfg appConfig.LoggerConfig) *gorm.Config {
	level := sqlLogLevel(cfg.SQLLevel)
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zapWriter{logger: logger, verbose: level == gormlogger.Info}, gormlogger.Config{
			SlowThreshold:             cfg.SlowQuery,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func sqlLogLevel(name string) gormlogger.LogLevel {
	switch name {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// zapWriter adapts a SugaredLogger to gorm's logger.Writer.
type zapWriter struct {
	logger  *zap.SugaredLogger
	verbose bool
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	if w.logger == nil {
		return
	}
	if w.verbose {
		w.logger.Debugf(format, args...)
		return
	}
	w.logger.Warnf(format, args...)
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
