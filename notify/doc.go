// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify sends transactional email.

# Notifiers

	var n notify.Notifier = notify.NewBrevo(apiKey, "events@example.org", "ECELL NIT Silchar")
	ok := n.SendEmail(ctx, notify.OTPEmail(to, code, 5*time.Minute))

SendEmail returns false on failure and logs the cause. Callers treat email
as best-effort and never fail a request because of it.

LogNotifier logs instead of sending; the server uses it when MOCK_EMAIL is
set or no Brevo key is configured.

# Messages

  - OTPEmail: one-time code, with the expiry rendered by go-humanize
  - ConfirmationEmail: registration accepted
  - DeletionEmail: registration removed by an admin

Each message has a plain-text part and an HTML part rendered from one
html/template layout.
*/
package notify
