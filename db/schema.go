// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Voters
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    full_name TEXT NOT NULL,
    email TEXT,
    voter_id TEXT NOT NULL UNIQUE,
    phone TEXT,
    address TEXT,
    date_of_birth DATE,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    is_staff BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_voter_username ON voter(username);

-- Sessions
CREATE TABLE IF NOT EXISTS session (
    token TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voter(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_voter_id ON session(voter_id);

-- Elections
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    CHECK (start_time < end_time)
);

CREATE INDEX IF NOT EXISTS idx_election_end_time ON election(end_time);
CREATE INDEX IF NOT EXISTS idx_election_is_active ON election(is_active);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    party TEXT NOT NULL,
    biography TEXT,
    manifesto TEXT,
    photo_url TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_candidate_election_id ON candidate(election_id);

-- Votes: the unique constraint is the one-ballot-per-voter enforcement
-- point, not application logic.
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voter(id) ON DELETE CASCADE,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL REFERENCES candidate(id) ON DELETE CASCADE,
    cast_at TIMESTAMP NOT NULL DEFAULT NOW(),
    CONSTRAINT vote_voter_election_key UNIQUE (voter_id, election_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_election_id ON vote(election_id);
CREATE INDEX IF NOT EXISTS idx_vote_candidate_id ON vote(candidate_id);

-- Email log: the unique constraint is the notification dedup gate.
CREATE TABLE IF NOT EXISTS email_log (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    email_type TEXT NOT NULL CHECK (email_type IN ('results_available', 'results_expiring')),
    sent_at TIMESTAMP NOT NULL DEFAULT NOW(),
    recipient_count INTEGER NOT NULL DEFAULT 0,
    CONSTRAINT email_log_election_type_key UNIQUE (election_id, email_type)
);

CREATE INDEX IF NOT EXISTS idx_email_log_election_id ON email_log(election_id);
`
