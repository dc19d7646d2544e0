package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"svd_ambalaj_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/schema"
	_ "modernc.org/sqlite"
)

// DB wraps the bun database with pool-aware execution helpers
type DB struct {
	*bun.DB
	logger      *gecho.Logger
	poolTimeout time.Duration
}

var instance *DB

// New wraps an already opened bun database. poolTimeout bounds how long Execute and
// RunInTransaction wait for a free connection; zero means wait for the caller's context.
func New(db *bun.DB, poolTimeout time.Duration, logger *gecho.Logger) *DB {
	return &DB{DB: db, logger: logger, poolTimeout: poolTimeout}
}

// Connect opens the configured store, applies pool limits and waits until it answers a ping
func Connect(ctx context.Context, dbCfg *structs.DatabaseConfig, logger *gecho.Logger) (*DB, error) {
	sqldb, dialect, err := openSQL(dbCfg)
	if err != nil {
		return nil, err
	}

	// Apply pool settings from configuration
	sqldb.SetMaxOpenConns(dbCfg.MaxConns)
	sqldb.SetMaxIdleConns(dbCfg.MinConns)
	sqldb.SetConnMaxLifetime(dbCfg.MaxLifetime)
	sqldb.SetConnMaxIdleTime(dbCfg.MaxIdleTime)

	bunDB := bun.NewDB(sqldb, dialect)
	bunDB.AddQueryHook(&queryLogHook{logger: logger, slowThreshold: dbCfg.SlowQuery})

	err = RetryWithBackoff(ctx, ConnectRetryConfig(), func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return bunDB.PingContext(pingCtx)
	})
	if err != nil {
		_ = bunDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully",
		gecho.Field("driver", dbCfg.Driver),
		gecho.Field("max_conns", dbCfg.MaxConns),
	)

	return New(bunDB, dbCfg.PoolTimeout, logger), nil
}

func openSQL(dbCfg *structs.DatabaseConfig) (*sql.DB, schema.Dialect, error) {
	switch strings.ToLower(dbCfg.Driver) {
	case "", "pgx", "postgres":
		sqldb, err := sql.Open("pgx", dbCfg.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open pgx connection: %w", err)
		}
		return sqldb, pgdialect.New(), nil
	case "pg", "pgdriver":
		return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dbCfg.URL))), pgdialect.New(), nil
	case "sqlite":
		sqldb, err := sql.Open("sqlite", sqliteDSN(dbCfg.URL))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return sqldb, sqlitedialect.New(), nil
	}
	return nil, nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off per connection.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Initialize sets up the global database instance using centralized configuration
func Initialize(ctx context.Context, cfg *structs.Config, logger *gecho.Logger) (*DB, error) {
	db, err := Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	instance = db
	return db, nil
}

// GetInstance returns the global database instance, nil before Initialize
func GetInstance() *DB {
	return instance
}

// CloseInstance closes the global database instance
func CloseInstance() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// Health checks the database connection health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// GetStats returns connection pool statistics for monitoring
func (db *DB) GetStats() sql.DBStats {
	return db.DB.DB.Stats()
}
