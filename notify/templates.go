// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

const Organization = "E-Cell NIT Silchar"

var layout = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="en">
  <body style="margin:0;padding:0;background-color:#f4f6f9;font-family:Arial,Helvetica,sans-serif;">
    <table align="center" width="100%" cellpadding="0" cellspacing="0" role="presentation"
      style="max-width:600px;margin:auto;background-color:#ffffff;border-radius:10px;">
      <tr>
        <td style="background-color:#224259;text-align:center;padding:24px 16px;">
          <h2 style="color:#ffffff;margin:0;font-size:20px;">{{.Organization}}</h2>
          <p style="color:#cfd8e3;margin:5px 0 0;font-size:14px;">{{.Heading}}</p>
        </td>
      </tr>
      <tr>
        <td style="padding:32px 40px;color:#1a1a1a;text-align:center;">
          {{range .Paragraphs}}<p style="line-height:1.6;color:#333;font-size:15px;">{{.}}</p>
          {{end}}{{if .Code}}<div style="margin:30px auto;width:max-content;background-color:#224259;color:#ffffff;font-size:28px;letter-spacing:4px;padding:12px 32px;border-radius:8px;font-weight:600;">{{.Code}}</div>
          {{end}}<p style="margin-top:30px;color:#333;"><strong>Regards,</strong><br/>Team {{.Organization}}</p>
        </td>
      </tr>
      <tr>
        <td style="background-color:#224259;padding:20px;text-align:center;color:#cfd8e3;font-size:13px;">
          &copy; {{.Year}} {{.Organization}}. All rights reserved.
        </td>
      </tr>
    </table>
  </body>
</html>
`))

type page struct {
	Organization string
	Heading      string
	Paragraphs   []string
	Code         string
	Year         int
}

func render(p page) string {
	p.Organization = Organization
	p.Year = time.Now().Year()

	var buf bytes.Buffer
	if err := layout.Execute(&buf, p); err != nil {
		// Text part still goes out
		slog.Error("failed to render email", "heading", p.Heading, "error", err)
		return ""
	}
	return buf.String()
}

// expiresIn renders a TTL as "5 minutes from now".
func expiresIn(ttl time.Duration) string {
	now := time.Now()
	return humanize.RelTime(now, now.Add(ttl), "from now", "ago")
}

// OTPEmail carries a one-time code valid for ttl.
func OTPEmail(to, code string, ttl time.Duration) Email {
	expiry := expiresIn(ttl)
	return Email{
		To:      to,
		Subject: "OTP for verification",
		Text:    fmt.Sprintf("Your OTP is %s. It expires %s.", code, expiry),
		HTML: render(page{
			Heading: "OTP Verification",
			Paragraphs: []string{
				"Use the following One-Time Password (OTP) to verify your email address.",
				fmt.Sprintf("This OTP expires %s. Please do not share it with anyone.", expiry),
			},
			Code: code,
		}),
	}
}

// ConfirmationEmail tells a team leader the registration went through.
func ConfirmationEmail(to, eventTitle, teamName string) Email {
	return Email{
		To:      to,
		Subject: eventTitle + " Registration Successful",
		Text: fmt.Sprintf("Your team %q has been registered for %s. We will contact you with updates soon.",
			teamName, eventTitle),
		HTML: render(page{
			Heading: eventTitle,
			Paragraphs: []string{
				fmt.Sprintf("Your team \"%s\" has been registered for %s.", teamName, eventTitle),
				"We have received your registration and will contact you with updates soon.",
				"Best of luck!",
			},
		}),
	}
}

// DeletionEmail tells a team leader their registration was removed.
func DeletionEmail(to, eventTitle string) Email {
	text := fmt.Sprintf("Your %s registration has been deleted. If this wasn't you, please contact us immediately.",
		eventTitle)
	return Email{
		To:      to,
		Subject: eventTitle + " Registration Deleted",
		Text:    text,
		HTML:    render(page{Heading: eventTitle, Paragraphs: []string{text}}),
	}
}
