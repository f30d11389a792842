// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS medications (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			dosage TEXT NOT NULL,
			frequency TEXT NOT NULL,
			dose_time TEXT NOT NULL,
			taken BOOLEAN NOT NULL DEFAULT FALSE
		);`,
		`CREATE TABLE IF NOT EXISTS reminders (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			date_time TIMESTAMPTZ NOT NULL,
			notes TEXT,
			notified BOOLEAN NOT NULL DEFAULT FALSE
		);`,
		"CREATE INDEX IF NOT EXISTS idx_reminders_date_time ON reminders(date_time);",
		`CREATE TABLE IF NOT EXISTS vitals (
			id BIGSERIAL PRIMARY KEY,
			blood_pressure TEXT,
			heart_rate INTEGER,
			temperature DOUBLE PRECISION,
			blood_sugar DOUBLE PRECISION,
			recorded_date TIMESTAMPTZ NOT NULL,
			CHECK (blood_pressure IS NOT NULL OR heart_rate IS NOT NULL
				OR temperature IS NOT NULL OR blood_sugar IS NOT NULL)
		);`,
		"CREATE INDEX IF NOT EXISTS idx_vitals_recorded_date ON vitals(recorded_date);",
		`CREATE TABLE IF NOT EXISTS appointments (
			id BIGSERIAL PRIMARY KEY,
			doctor TEXT NOT NULL,
			type TEXT NOT NULL,
			date_time TIMESTAMPTZ NOT NULL,
			location TEXT
		);`,
		"CREATE INDEX IF NOT EXISTS idx_appointments_date_time ON appointments(date_time);",
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user_agent TEXT NOT NULL DEFAULT '',
			ip TEXT NOT NULL DEFAULT '',
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// localDayBounds returns the UTC instants bounding a local calendar day.
func localDayBounds(localDay string) (time.Time, time.Time, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", localDay, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return dayStart.UTC(), dayStart.Add(24 * time.Hour).UTC(), nil
}
