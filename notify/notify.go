// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify sends results emails at most once per election per kind.
// The email_log unique constraint is the dedup gate: the log row is
// claimed before any mail goes out, so overlapping sweeps cannot
// double-send.
package notify

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/openvote/openvote/election"
	"github.com/openvote/openvote/models"
)

const uniqueViolation = "23505"

// Mailer delivers a single message. One call per recipient; a failed call
// affects only that recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// recipient is a voter who cast a ballot in the election being notified.
type recipient struct {
	fullName string
	email    string
}

// NotifyOnce sends one notification batch of the given kind for e to every
// voter who cast a ballot in it, skipping voters without an email address.
// It returns the number of messages delivered.
//
// The dedup row is inserted first with ON CONFLICT DO NOTHING: if another
// sweep already claimed the (election, kind) pair, NotifyOnce is a no-op
// returning 0. Individual delivery failures are logged and counted but do
// not abort the batch; the recipient count is written back when the batch
// finishes.
func NotifyOnce(db *sql.DB, mailer Mailer, e models.Election, kind string, baseURL string) (int, error) {
	logID := uuid.NewString()
	res, err := db.Exec(`
		INSERT INTO email_log (id, election_id, email_type, sent_at, recipient_count)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (election_id, email_type) DO NOTHING
	`, logID, e.ID, kind, time.Now())
	if err != nil {
		// Older deployments without ON CONFLICT support surface the
		// constraint violation directly; treat it the same way.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to claim email log: %w", err)
	}
	claimed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read email log claim: %w", err)
	}
	if claimed == 0 {
		slog.Info("notification already sent", "election_id", e.ID, "kind", kind)
		return 0, nil
	}

	recipients, err := voterRecipients(db, e.ID)
	if err != nil {
		return 0, err
	}

	subject, body := composeEmail(e, kind, baseURL)

	sent := 0
	failed := 0
	for _, r := range recipients {
		if r.email == "" {
			continue
		}
		if err := mailer.Send(r.email, subject, body); err != nil {
			failed++
			slog.Warn("failed to send notification email",
				"election_id", e.ID, "kind", kind, "to", r.email, "error", err)
			continue
		}
		sent++
	}

	_, err = db.Exec(`
		UPDATE email_log SET recipient_count = $1 WHERE id = $2
	`, sent, logID)
	if err != nil {
		return sent, fmt.Errorf("failed to record recipient count: %w", err)
	}

	slog.Info("notification batch sent",
		"election_id", e.ID, "kind", kind, "sent", sent, "failed", failed)
	return sent, nil
}

// voterRecipients returns every voter who cast a ballot in the election.
func voterRecipients(db *sql.DB, electionID string) ([]recipient, error) {
	rows, err := db.Query(`
		SELECT vr.full_name, COALESCE(vr.email, '')
		FROM vote v
		JOIN voter vr ON vr.id = v.voter_id
		WHERE v.election_id = $1
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipients: %w", err)
	}
	defer rows.Close()

	var recipients []recipient
	for rows.Next() {
		var r recipient
		if err := rows.Scan(&r.fullName, &r.email); err != nil {
			return nil, fmt.Errorf("failed to scan recipient: %w", err)
		}
		recipients = append(recipients, r)
	}
	return recipients, rows.Err()
}

func composeEmail(e models.Election, kind string, baseURL string) (subject, body string) {
	expiry := election.ResultsExpiry(e)
	resultsURL := fmt.Sprintf("%s/elections/%s/results", baseURL, e.ID)

	switch kind {
	case models.EmailResultsExpiring:
		subject = "Last Chance: Results Expiring Soon - " + e.Title
		body = fmt.Sprintf(`Hello,

Reminder: results for "%s" will expire %s.

This is your last chance to view the final election results.

View results now:
%s

Results expire on: %s

---
OpenVote
Secure, transparent elections
`, e.Title, humanize.Time(expiry), resultsURL, expiry.Format("January 2, 2006 at 3:04 PM"))
	default: // models.EmailResultsAvailable
		subject = "Results Available: " + e.Title
		body = fmt.Sprintf(`Hello,

The election "%s" has ended and results are now available.

View results now:
%s

Important: results will be available for 24 hours only.
Results expire on: %s

Thank you for participating in this election.

---
OpenVote
Secure, transparent elections
`, e.Title, resultsURL, expiry.Format("January 2, 2006 at 3:04 PM"))
	}
	return subject, body
}
