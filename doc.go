// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the event registrations API server.

The server backs the registration forms of E-Cell NIT Silchar's events
(business hackathon, treasure hunt, bid-wise, adovation). It validates team
submissions, rejects duplicate leaders and members, stores each team with its
member index, mails a confirmation, and runs an email OTP flow.

# Starting the Server

	DATABASE_URL=postgres://... ADMIN_KEY_SALT=... go run .

Local development against SQLite, with emails logged:

	go run . -t sqlite -d "file:dev.db" -admin-salt dev -mock-email

Print the per-event admin keys for the delete routes:

	go run . -print-admin-keys

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string
  - ADMIN_KEY_SALT (-admin-salt): secret for admin key HMAC

Optional settings:

  - PORT (-p): server port (default: 3000)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - BREVO_API_KEY, BREVO_EMAIL, BREVO_SENDER_NAME: email delivery
  - MOCK_EMAIL (-mock-email): log emails instead of sending
  - OTP_TTL, STORE_TIMEOUT, NOTIFY_TIMEOUT: durations
  - -env-file: load a .env file first

# Architecture

  - registration: event configs, validation, the shared register algorithm
  - otp: one-time code issuance, expiry and verification
  - store: SQL record store with a transactional writer
  - notify: Brevo client, log notifier, email templates
  - handlers, router, middleware: the HTTP surface
  - models: request, response and domain types
  - auth: admin keys, IDs, OTP codes
  - db: driver selection and schema
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
