// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - voter: Accounts with credentials and registration details
  - session: Login sessions keyed by token
  - election: Election metadata and time bounds
  - candidate: Candidates per election
  - vote: One ballot per voter per election
  - email_log: Notification dedup records

# Relationships

	voter 1──* session
	voter 1──* vote
	election 1──* candidate
	election 1──* vote
	election 1──* email_log

All foreign keys use ON DELETE CASCADE.

# Constraints

Two unique constraints carry the core guarantees:

  - vote (voter_id, election_id): a voter casts at most one ballot per
    election, enforced even under concurrent requests
  - email_log (election_id, email_type): at most one notification batch
    per election per kind
*/
package db
