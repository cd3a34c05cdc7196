// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8642)
  - DatabaseURL: PostgreSQL connection string (required)
  - BaseURL: Public URL used in notification emails
  - SMTPHost, SMTPPort, SMTPUsername, SMTPPassword: Mail delivery
  - MailFrom: Sender address for notifications
  - SweepSchedule: Cron expression for the notification sweep

# CLI Flags

	-p            Server port
	-d            Database URL
	--base-url    Public base URL
	--smtp-host   SMTP server host
	--smtp-port   SMTP server port
	--smtp-user   SMTP username
	--smtp-pass   SMTP password
	--mail-from   Notification sender address
	--sweep       Sweep cron expression

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	BASE_URL       → --base-url
	SMTP_HOST      → --smtp-host
	SMTP_PORT      → --smtp-port
	SMTP_USERNAME  → --smtp-user
	SMTP_PASSWORD  → --smtp-pass
	MAIL_FROM      → --mail-from
	SWEEP_SCHEDULE → --sweep

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided

Without SMTP_HOST the server logs notification emails instead of
sending them, which is the intended mode for local development.
*/
package cliparse
