// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/openvote/openvote/cliparse"
)

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer builds a mailer from the server configuration.
func NewSMTPMailer(cfg cliparse.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{mail.WithPort(m.port)}
	if m.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.username),
			mail.WithPassword(m.password),
		)
	}

	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// LogMailer writes messages to the log instead of delivering them. Used
// when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	slog.Info("mail (log only)", "to", to, "subject", subject, "bytes", len(body))
	return nil
}

// NewMailer picks the SMTP mailer when one is configured, and falls back
// to log-only delivery otherwise.
func NewMailer(cfg cliparse.Config) Mailer {
	if cfg.SMTPHost == "" {
		slog.Warn("SMTP_HOST not set, notification emails will only be logged")
		return LogMailer{}
	}
	return NewSMTPMailer(cfg)
}
