package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DanielPopoola/stripe-plus-gateway/db"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/config"
)

// Executor defines the common interface for pgxpool.Pool and pgx.Tx.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DB struct {
	Pool   *pgxpool.Pool
	logger *slog.Logger
}

// Connect establishes a connection to the PostgreSQL database using the provided configuration.
// It creates a connection pool with the specified settings and verifies connectivity by pinging the database.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	pgxCfg, err := cfg.PgxConfig(ctx)
	if err != nil {
		logger.Error("failed to build pgx config", "error", err)
		return nil, err
	}

	logger.Info("connecting to database",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Name,
	)

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		logger.Error("failed to create connection pool", "error", err)
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		pool.Close()
		return nil, err
	}

	logger.Info("successfully connected to database",
		"max_conns", pgxCfg.MaxConns,
		"min_conns", pgxCfg.MinConns,
	)

	return &DB{
		Pool:   pool,
		logger: logger,
	}, nil
}

func (d *DB) Close() {
	d.logger.Info("closing database connection pool")
	d.Pool.Close()
}

// Install creates the gateway tables. It is safe to run on every start.
func (d *DB) Install(ctx context.Context) error {
	return d.runMigration(ctx, "migrations/001_init.up.sql")
}

// Uninstall drops the gateway tables, but only when the last gateway instance is being removed.
func (d *DB) Uninstall(ctx context.Context, lastInstance bool) error {
	if !lastInstance {
		d.logger.Info("other gateway instances remain, keeping tables")
		return nil
	}
	return d.runMigration(ctx, "migrations/001_init.down.sql")
}

func (d *DB) runMigration(ctx context.Context, name string) error {
	migrationSQL, err := db.Migrations.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}

	if _, err := d.Pool.Exec(ctx, string(migrationSQL)); err != nil {
		return fmt.Errorf("execute migration %s: %w", name, err)
	}

	d.logger.Info("migration applied", "migration", name)
	return nil
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
