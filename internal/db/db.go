package db

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"onlinemaid-backend/config"
	"onlinemaid-backend/internal/migration"
	"onlinemaid-backend/internal/migration/history"
)

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, errors.Newf("unsupported database driver %q", cfg.Driver)
	}
}

// Open connects to the configured database and applies pool settings.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}
	return db, nil
}

// Migrate applies every pending step of the migration history.
func Migrate(ctx context.Context, db *gorm.DB, log *zap.Logger) ([]migration.Key, error) {
	runner, err := migration.NewRunner(db, log)
	if err != nil {
		return nil, err
	}
	applied, err := runner.Run(ctx, history.All())
	if err != nil {
		return applied, errors.Wrap(err, "migrate")
	}
	log.Info("database migrations complete", zap.Int("applied", len(applied)))
	return applied, nil
}

// Init opens the database and brings its schema up to date.
func Init(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := Migrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}
