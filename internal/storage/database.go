package storage

import (
	"context"
	"database/sql"
	"fmt"
	"google-auth-service/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// NewDatabaseProvider opens the database handle described by cfg.Database. Neither backend dials
// until first use, so an unreachable database does not block startup.
func NewDatabaseProvider(ctx context.Context, cfg *config.Config) (StorageProvider, error) {
	switch cfg.Database.Driver {
	case config.DatabaseDriverPostgres, config.DatabaseDriverPostgreSQL:
		provider, err := newPostgresProvider(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case config.DatabaseDriverSQLite:
		provider, err := newSQLiteProvider(cfg.Database)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

type PostgresProvider struct {
	pool *pgxpool.Pool
}

func newPostgresProvider(ctx context.Context, cfg config.DatabaseConfig) (*PostgresProvider, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	return &PostgresProvider{pool: pool}, nil
}

func (p *PostgresProvider) Driver() string {
	return config.DatabaseDriverPostgres
}

func (p *PostgresProvider) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresProvider) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

type SQLiteProvider struct {
	db *sql.DB
}

func newSQLiteProvider(cfg config.DatabaseConfig) (*SQLiteProvider, error) {
	db, err := sql.Open(sqliteDriverName, sqliteDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteProvider{db: db}, nil
}

func (p *SQLiteProvider) Driver() string {
	return config.DatabaseDriverSQLite
}

func (p *SQLiteProvider) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}
