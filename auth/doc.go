// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin keys, one-time codes and record identities.

# Admin Keys

Destructive admin operations (deleting a registration) require a key bound
to the event:

	adminKey := auth.GenerateAdminKey("business", salt)
	err := auth.ValidateAdminKey("business", adminKey, salt)

Keys are HMAC-SHA256 of the event name, URL-safe base64 without padding.
Since they are deterministic, the server never stores them; run the server
with -print-admin-keys to list them.

# One-Time Codes

	code, err := auth.GenerateOTP()

Codes come from crypto/rand and are uniform over 100000-999999, so the
leading digit is never zero.

# IDs

	id := auth.NewID()

Random UUIDs for registrations, member records and OTP issuances.
*/
package auth
