// Package db stores players, games and play sessions in SQLite.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection with tabletop functionality.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates a SQLite database at the given path and migrates it.
func Open(ctx context.Context, path string) (*DB, error) {
	conn, err := otelsql.Open("sqlite", dsn(path),
		otelsql.WithAttributes(semconv.DBSystemSqlite))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps ":memory:" databases intact.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, path: path}
	if err := db.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// New wraps an existing connection without migrating it.
func New(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the path the database was opened from.
func (db *DB) Path() string {
	return db.path
}

// migrate runs database migrations up to the current schema version.
func (db *DB) migrate(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var version int
	err := db.conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	if version < 1 {
		if err := db.migrateV1(ctx); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := db.migrateV2(ctx); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (db *DB) migrateV1(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS players (
			player_id INTEGER PRIMARY KEY,
			player_name TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS games (
			game_id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id_bgg TEXT,
			game_name TEXT UNIQUE NOT NULL,
			game_description TEXT,
			game_image TEXT,
			has_characters BOOLEAN NOT NULL DEFAULT 0,
			characters TEXT,
			min_players INTEGER,
			max_players INTEGER,
			supports_cooperative BOOLEAN NOT NULL DEFAULT 0,
			supports_competitive BOOLEAN NOT NULL DEFAULT 1,
			supports_campaign BOOLEAN NOT NULL DEFAULT 0,
			default_mode TEXT NOT NULL DEFAULT 'competitive',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS game_sessions (
			sessions_id INTEGER PRIMARY KEY,
			sessions_game_id INTEGER NOT NULL,
			is_cooperative INTEGER NOT NULL DEFAULT 0,
			game_mode TEXT NOT NULL DEFAULT 'competitive',
			sessions_players TEXT NOT NULL,
			sessions_scores TEXT NOT NULL,
			sessions_winner INTEGER,
			win_condition TEXT,
			sessions_date TEXT,
			sessions_duration TEXT,
			sessions_completed INTEGER NOT NULL DEFAULT 0,
			sessions_coop_result TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (sessions_game_id) REFERENCES games(game_id) ON DELETE CASCADE,
			FOREIGN KEY (sessions_winner) REFERENCES players(player_id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_game_sessions_game_id ON game_sessions(sessions_game_id);

		INSERT INTO schema_version (version) VALUES (1);
	`

	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute v1 migration: %w", err)
	}

	return nil
}

// migrateV2 indexes games by their BoardGameGeek id for imports.
func (db *DB) migrateV2(ctx context.Context) error {
	schema := `
		CREATE INDEX IF NOT EXISTS idx_games_bgg_id ON games(game_id_bgg);

		INSERT INTO schema_version (version) VALUES (2);
	`

	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute v2 migration: %w", err)
	}

	return nil
}
