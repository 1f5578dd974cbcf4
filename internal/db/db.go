// Package db stores a history of rendered forecasts in SQLite or
// PostgreSQL.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a database connection
type DB struct {
	*sql.DB
	driver string
}

// Render is one frame pushed to the panel.
type Render struct {
	RenderedAt  time.Time
	Timezone    string
	Summary     string
	Temperature float64
	Icon        string
	Category    string
}

const schema = `CREATE TABLE IF NOT EXISTS renders (
	rendered_at TIMESTAMP NOT NULL,
	timezone TEXT NOT NULL,
	summary TEXT NOT NULL,
	temperature DOUBLE PRECISION NOT NULL,
	icon TEXT NOT NULL,
	category TEXT NOT NULL
)`

const index = `CREATE INDEX IF NOT EXISTS renders_rendered_at ON renders (rendered_at)`

// NewDB opens the history store named by dsn and creates its table.
// postgres:// URLs and key=value strings use PostgreSQL; anything else is
// a SQLite file path.
func NewDB(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("db: empty DSN")
	}
	driver := driverFor(dsn)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{DB: db, driver: driver}, nil
}

func driverFor(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host="):
		return "postgres"
	default:
		return "sqlite3"
	}
}

func initSchema(db *sql.DB) error {
	for _, stmt := range []string{schema, index} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders as $n for PostgreSQL.
func (db *DB) rebind(query string) string {
	if db.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RecordRender appends r to the history. RenderedAt is stored in UTC.
func (db *DB) RecordRender(ctx context.Context, r Render) error {
	if db == nil || db.DB == nil {
		return errors.New("db: no database connection")
	}

	_, err := db.ExecContext(ctx, db.rebind(
		"INSERT INTO renders (rendered_at, timezone, summary, temperature, icon, category) VALUES (?, ?, ?, ?, ?, ?)"),
		r.RenderedAt.UTC(), r.Timezone, r.Summary, r.Temperature, r.Icon, r.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to record render: %w", err)
	}
	return nil
}

// RecentRenders returns up to limit renders, newest first.
func (db *DB) RecentRenders(ctx context.Context, limit int) ([]Render, error) {
	if db == nil || db.DB == nil {
		return nil, errors.New("db: no database connection")
	}

	rows, err := db.QueryContext(ctx, db.rebind(
		"SELECT rendered_at, timezone, summary, temperature, icon, category FROM renders ORDER BY rendered_at DESC LIMIT ?"),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query renders: %w", err)
	}
	defer rows.Close()

	var renders []Render
	for rows.Next() {
		var r Render
		if err := rows.Scan(&r.RenderedAt, &r.Timezone, &r.Summary, &r.Temperature, &r.Icon, &r.Category); err != nil {
			return nil, fmt.Errorf("failed to scan render: %w", err)
		}
		renders = append(renders, r)
	}
	return renders, rows.Err()
}
