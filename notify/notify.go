// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"
)

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string // optional
}

// Notifier delivers transactional email. SendEmail reports success and
// never returns an error; failures are logged by the implementation.
type Notifier interface {
	SendEmail(ctx context.Context, email Email) bool
}

// LogNotifier writes emails to the log instead of sending them.
type LogNotifier struct{}

func (LogNotifier) SendEmail(ctx context.Context, email Email) bool {
	slog.Info("email (mock)",
		"to", email.To,
		"subject", email.Subject,
		"text", email.Text,
		"has_html", email.HTML != "",
	)
	return true
}
