// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

PostgreSQL (lib/pq) is used in production; SQLite (modernc.org/sqlite) is
supported for local development and tests. SQLite connections are limited to
one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - registration: one row per team per event, members as JSON text
  - member_record: flat (event, person, team) index used for duplicate checks
  - otp: issued one-time codes

# Relationships

	registration 1──* member_record (registration_id)

There are no foreign keys. The registration service writes and deletes a
registration together with its member records in one transaction.

# Constraints and Indexes

  - registration.(event, team_leader_email) unique: the authoritative guard
    against concurrent duplicate submissions
  - registration.(event, vice_captain_phone)
  - member_record.(event, member_phone)
  - member_record.registration_id
  - otp.email unique: one live code per address
*/
package db
