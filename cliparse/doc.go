// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type (postgres, sqlite)
	-env-file         Load this .env file first
	-admin-salt       Admin key salt
	-brevo-key        Brevo API key
	-mock-email       Log emails instead of sending them
	-print-admin-keys Print every event's admin key and exit

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p (default 3000)
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t (default postgres)
	ADMIN_KEY_SALT    → -admin-salt
	BREVO_API_KEY     → -brevo-key
	BREVO_EMAIL       sender address
	BREVO_SENDER_NAME sender name (default "ECELL NIT Silchar")
	MOCK_EMAIL        "true" → -mock-email
	OTP_TTL           code lifetime (default 5m)
	STORE_TIMEOUT     per store call (default 5s)
	NOTIFY_TIMEOUT    per email (default 10s)

CLI flags take precedence over environment variables, and the environment
takes precedence over the .env file. Without -env-file a missing ./.env is
ignored.

# Validation

ParseFlags returns an error when:

  - DATABASE_URL is missing
  - ADMIN_KEY_SALT is missing
  - DATABASE_TYPE is not postgres or sqlite
  - BREVO_API_KEY is set without BREVO_EMAIL outside mock mode
  - PORT or a duration does not parse
*/
package cliparse
