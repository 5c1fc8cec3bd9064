package database

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

type DB struct {
	conn *sql.DB
	path string
}

func New(path string) (*DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(2)

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func parseTime(s string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", s)
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// builder is the squirrel statement builder configured for sqlite
// question-mark placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func (db *DB) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT    PRIMARY KEY,
			email         TEXT    NOT NULL UNIQUE,
			username      TEXT    NOT NULL UNIQUE,
			password_hash TEXT    NOT NULL,
			is_active     INTEGER NOT NULL DEFAULT 1,
			created_at    TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at    TEXT    NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			token      TEXT    NOT NULL UNIQUE,
			user_id    TEXT    NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TEXT    NOT NULL,
			created_at TEXT    NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			id          TEXT    PRIMARY KEY,
			source      TEXT    NOT NULL,
			title       TEXT    NOT NULL,
			summary     TEXT    NOT NULL,
			link        TEXT    NOT NULL,
			image_url   TEXT    NOT NULL DEFAULT '',
			category    TEXT    NOT NULL DEFAULT 'general',
			user_id     TEXT    NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			is_public   INTEGER NOT NULL DEFAULT 0,
			status      TEXT    NOT NULL DEFAULT 'pending',
			is_favorite INTEGER NOT NULL DEFAULT 0,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			UNIQUE(link, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_user_id ON news(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_news_public ON news(is_public, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w\nstatement: %s", err, stmt)
		}
	}
	return nil
}
