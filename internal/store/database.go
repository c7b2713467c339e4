// Package store owns the PostgreSQL persistence for assembled play-by-play
// tables.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database is the PostgreSQL connection pool.
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase opens and verifies a connection pool.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the connection pool.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries
func (db *Database) DB() *sql.DB {
	return db.conn
}

// EnsureSchema creates the tables if they do not exist. The on-ice slots are
// stored as JSONB: their width is fixed in the flattened output but queries
// against them are always whole-row reads.
func (db *Database) EnsureSchema() error {
	log.Println("[store] ensuring schema...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS pbp_events (
			game_id        BIGINT      NOT NULL,
			sort_order     INTEGER     NOT NULL,
			period         INTEGER     NOT NULL,
			event_tc       INTEGER     NOT NULL,
			event          TEXT        NOT NULL,
			time_remaining TEXT        NOT NULL DEFAULT '',
			time_elapsed   TEXT        NOT NULL DEFAULT '',
			strength       TEXT        NOT NULL DEFAULT '',
			detail         TEXT        NOT NULL DEFAULT '',
			ev_team        TEXT        NOT NULL DEFAULT '',
			p1_id          BIGINT,
			p1_name        TEXT,
			p2_id          BIGINT,
			p2_name        TEXT,
			p3_id          BIGINT,
			p3_name        TEXT,
			x_coord        INTEGER,
			y_coord        INTEGER,
			home_skaters   INTEGER,
			away_skaters   INTEGER,
			home_score     INTEGER     NOT NULL DEFAULT 0,
			away_score     INTEGER     NOT NULL DEFAULT 0,
			home_team      TEXT        NOT NULL DEFAULT '',
			away_team      TEXT        NOT NULL DEFAULT '',
			away_on_ice    JSONB       NOT NULL DEFAULT '[]',
			home_on_ice    JSONB       NOT NULL DEFAULT '[]',
			away_goalie    JSONB,
			home_goalie    JSONB,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (game_id, sort_order)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pbp_events_game ON pbp_events (game_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pbp_events_kind ON pbp_events (event)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	log.Println("[store] schema ready")
	return nil
}

// HealthCheck pings the database with a short deadline.
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}
