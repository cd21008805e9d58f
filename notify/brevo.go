// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	brevo "github.com/getbrevo/brevo-go/lib"
)

const BrevoBasePath = "https://api.brevo.com/v3"

// Brevo sends email through the Brevo transactional API.
type Brevo struct {
	cfg    *brevo.Configuration
	client *brevo.APIClient
	sender brevo.SendSmtpEmailSender
}

func NewBrevo(apiKey, senderEmail, senderName string) *Brevo {
	cfg := brevo.NewConfiguration()
	cfg.AddDefaultHeader("api-key", apiKey)
	cfg.BasePath = BrevoBasePath
	cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}

	return &Brevo{
		cfg:    cfg,
		client: brevo.NewAPIClient(cfg),
		sender: brevo.SendSmtpEmailSender{Name: senderName, Email: senderEmail},
	}
}

// WithBasePath points the client at another API base, used by tests.
func (b *Brevo) WithBasePath(basePath string) *Brevo {
	b.cfg.BasePath = basePath
	return b
}

func (b *Brevo) SendEmail(ctx context.Context, email Email) bool {
	messageID, err := b.send(ctx, email)
	if err != nil {
		slog.Error("failed to send email", "to", email.To, "subject", email.Subject, "error", err)
		return false
	}
	slog.Info("email sent", "to", email.To, "subject", email.Subject, "message_id", messageID)
	return true
}

func (b *Brevo) send(ctx context.Context, email Email) (string, error) {
	sender := b.sender
	created, resp, err := b.client.TransactionalEmailsApi.SendTransacEmail(ctx, brevo.SendSmtpEmail{
		Sender:      &sender,
		To:          []brevo.SendSmtpEmailTo{{Email: email.To}},
		Subject:     email.Subject,
		TextContent: email.Text,
		HtmlContent: email.HTML,
	})
	if err != nil {
		if resp != nil {
			return "", fmt.Errorf("brevo returned %d: %w", resp.StatusCode, err)
		}
		return "", fmt.Errorf("send transactional email: %w", err)
	}
	return created.MessageId, nil
}
