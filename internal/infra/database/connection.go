package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// NewDBConnection opens the pool and pings it once.
func NewDBConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	// The site takes a handful of submissions a minute.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}

	return db, nil
}

const leadsSchema = `
CREATE TABLE IF NOT EXISTS leads (
	id               BIGSERIAL PRIMARY KEY,
	name             TEXT NOT NULL,
	phone            TEXT NOT NULL,
	email            TEXT,
	state            TEXT,
	district_pin     TEXT,
	investment_range TEXT,
	timeline         TEXT,
	experience_years TEXT,
	outlet_count     TEXT,
	current_business TEXT,
	business_type    TEXT,
	notes            TEXT,
	priority         TEXT NOT NULL,
	source_page      TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the leads table on first boot.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, leadsSchema); err != nil {
		return errors.Wrap(err, "create leads table")
	}
	return nil
}
