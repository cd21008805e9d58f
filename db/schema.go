// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database and verifies the connection.
// databaseType is "postgres" or "sqlite".
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	driver, err := driverName(databaseType)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func driverName(databaseType string) (string, error) {
	switch databaseType {
	case "postgres", "":
		return "postgres", nil
	case "sqlite":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database type %q", databaseType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Written for both PostgreSQL and SQLite: no server-side defaults for
// timestamps, nested member lists stored as JSON text.
const schema = `
-- Registrations, one table for every event
CREATE TABLE IF NOT EXISTS registration (
    id TEXT PRIMARY KEY,
    event TEXT NOT NULL,
    team_name TEXT NOT NULL,
    team_leader_name TEXT NOT NULL,
    team_leader_email TEXT NOT NULL,
    team_leader_phone TEXT NOT NULL,
    team_leader_scholar_id TEXT,
    college_type TEXT NOT NULL CHECK (college_type IN ('nit_silchar', 'other')),
    college_name TEXT,
    department TEXT NOT NULL DEFAULT '',
    study_year TEXT NOT NULL DEFAULT '',
    vice_captain_name TEXT,
    vice_captain_email TEXT,
    vice_captain_phone TEXT,
    vice_captain_scholar_id TEXT,
    team_members TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (event, team_leader_email)
);

CREATE INDEX IF NOT EXISTS idx_registration_event ON registration(event);
CREATE INDEX IF NOT EXISTS idx_registration_vice_captain ON registration(event, vice_captain_phone);

-- Member index, maintained by the registration service
CREATE TABLE IF NOT EXISTS member_record (
    id TEXT PRIMARY KEY,
    event TEXT NOT NULL,
    registration_id TEXT NOT NULL,
    member_name TEXT NOT NULL,
    member_email TEXT,
    member_phone TEXT,
    team_name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_member_record_phone ON member_record(event, member_phone);
CREATE INDEX IF NOT EXISTS idx_member_record_registration ON member_record(registration_id);

-- One-time codes, at most one live code per email
CREATE TABLE IF NOT EXISTS otp (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    otp TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_otp_email_unique ON otp(email);
`
