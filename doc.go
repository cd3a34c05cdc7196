// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the OpenVote API server.

OpenVote is an online voting service: staff set up elections with
candidates, registered voters cast one ballot each, and results are
visible to participants for 24 hours after the election ends.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 8642 -d "postgres://..."

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 8642)
  - BASE_URL: Public URL used in notification emails
  - SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD: Mail delivery;
    without SMTP_HOST emails are logged instead of sent
  - MAIL_FROM: Sender address for notifications
  - SWEEP_SCHEDULE: Cron expression for the notification sweep

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, elections, voting, results, exports, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - election: Time-based election phase rules
  - ledger: Ballot recording with one-vote-per-voter enforcement
  - results: Tally computation and viewing access rules
  - notify: Deduplicated results emails and the background sweep
  - export: PDF and Excel report rendering
  - auth: Password hashing and session tokens
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
