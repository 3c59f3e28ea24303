// Package database opens the read-only dictionary database.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/at-ishikawa/vocadrill/internal/config"
)

const defaultRetryDelay = 500 * time.Millisecond

// Open opens the dictionary database for the configured driver and verifies
// the connection, retrying the ping up to cfg.ConnectAttempts times.
func Open(ctx context.Context, cfg config.DictionaryConfig, dbCfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver, dsn, err := DataSourceName(cfg, dbCfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(%s) > %w", driver, err)
	}
	if driver == config.DriverMySQL {
		configurePool(db, dbCfg)
	}

	if err := ping(ctx, db, cfg.ConnectAttempts, defaultRetryDelay); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// DataSourceName returns the driver name and DSN for the configuration.
func DataSourceName(cfg config.DictionaryConfig, dbCfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if cfg.Path == "" {
			return "", "", fmt.Errorf("dictionary path is empty")
		}
		// The dictionary is shipped with the app and never written to
		return config.DriverSQLite, fmt.Sprintf("file:%s?mode=ro", cfg.Path), nil
	case config.DriverMySQL:
		mysqlCfg := mysql.NewConfig()
		mysqlCfg.User = dbCfg.Username
		mysqlCfg.Passwd = dbCfg.Password
		mysqlCfg.Net = "tcp"
		mysqlCfg.Addr = fmt.Sprintf("%s:%d", dbCfg.Host, dbCfg.Port)
		mysqlCfg.DBName = dbCfg.Database
		mysqlCfg.ParseTime = true
		if dbCfg.TLS {
			mysqlCfg.TLSConfig = "true"
		}
		if len(dbCfg.Params) > 0 {
			mysqlCfg.Params = dbCfg.Params
		}
		return config.DriverMySQL, mysqlCfg.FormatDSN(), nil
	default:
		return "", "", fmt.Errorf("unsupported dictionary driver: %q", cfg.Driver)
	}
}

func configurePool(db *sqlx.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
}

func ping(ctx context.Context, db *sqlx.DB, attempts uint, delay time.Duration) error {
	if attempts == 0 {
		attempts = 1
	}
	err := retry.Do(
		func() error {
			return db.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Warn("failed to ping the dictionary database, retrying",
				slog.Int("attempt", int(n)+1),
				slog.Any("error", err),
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("db.PingContext() > %w", err)
	}
	return nil
}
