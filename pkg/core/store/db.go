// Package store persists businesses, financial statements and assessment
// results to Postgres. Connect builds a pgx connection pool from
// DATABASE_URL; repositories take the pool explicitly so tests can run
// without a live database.
package store

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a connection pool using the DATABASE_URL environment
// variable. The caller owns the pool and should Close it on shutdown.
func Connect(ctx context.Context) (*pgxpool.Pool, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	return pgxpool.NewWithConfig(ctx, config)
}
