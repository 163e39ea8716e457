package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib" // Import the driver
)

const schema = `
CREATE TABLE IF NOT EXISTS water_levels (
	id             BIGSERIAL PRIMARY KEY,
	station        TEXT NOT NULL,
	date_time      TEXT NOT NULL,
	type           TEXT NOT NULL,
	water_level    TEXT NOT NULL,
	forecast_lower TEXT NOT NULL,
	forecast_upper TEXT NOT NULL,
	crawled_at     TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS station_master_data (
	id         BIGSERIAL PRIMARY KEY,
	station    TEXT NOT NULL,
	fields     JSONB NOT NULL,
	crawled_at TIMESTAMPTZ NOT NULL
);`

// Storage wraps the optional Postgres database that mirrors the CSV output.
type Storage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Open connects to url, retrying while the database starts up, and creates
// the tables if needed.
func Open(ctx context.Context, url string, logger *slog.Logger) (*Storage, error) {
	db, err := waitForDB(ctx, url, logger)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return NewStorage(db), nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func waitForDB(ctx context.Context, url string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			logger.Info("Connected to database")
			return db, nil
		}
		logger.Warn("Waiting for database", "err", err)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	db.Close()
	return nil, fmt.Errorf("could not connect to database after retries: %w", err)
}
