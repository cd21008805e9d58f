// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package otp issues and verifies one-time email codes.

# Lifecycle

Per email address a code moves through

	NONE → ISSUED → VERIFIED | EXPIRED | SUPERSEDED → NONE

where every terminal state means no entry is stored.

	svc := otp.NewService(st, notifier, otp.Config{TTL: 5 * time.Minute})
	defer svc.Close()

	err := svc.Issue(ctx, "a@x.com")          // new code, old one removed
	err = svc.Verify(ctx, "a@x.com", "123456") // single use

# Expiry

Each Issue starts a fire-once timer for its own entry ID. When it fires the
entry is removed only if it still exists, so timers left over from earlier
issuances never touch a newer code. Expiry is not checked on read: a Verify
that arrives after the TTL but before the timer runs still succeeds.

# Errors

  - ErrInvalidEmail, ErrOTPRequired: bad input
  - ErrOTPNotFound: nothing live for the email
  - ErrOTPMismatch: wrong code; the live code is kept and may be retried

There is no attempt limit or rate limit on either operation.
*/
package otp
