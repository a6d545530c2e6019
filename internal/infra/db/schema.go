package db

import (
	"context"
	"database/sql"
	"fmt"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS news (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		title      TEXT NOT NULL,
		body       TEXT NOT NULL,
		created_at DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comment (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		body       TEXT NOT NULL,
		created_at DATE NOT NULL,
		news_id    INTEGER NOT NULL REFERENCES news(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comment_news_id ON comment(news_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS news (
		id         SERIAL PRIMARY KEY,
		title      TEXT NOT NULL,
		body       TEXT NOT NULL,
		created_at DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comment (
		id         SERIAL PRIMARY KEY,
		body       TEXT NOT NULL,
		created_at DATE NOT NULL,
		news_id    INTEGER NOT NULL REFERENCES news(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comment_news_id ON comment(news_id)`,
}

// EnsureSchema creates the news and comment tables if they are missing.
// The comment foreign key does not cascade; deleting a news row that still has
// comments fails, so repositories remove the comments first.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts := sqliteSchema
	if dialect == DialectPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
