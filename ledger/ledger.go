// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ledger records ballots. A vote row is the sole source of truth
// for tallies; the voter's has_voted flag is a cache updated in the same
// transaction that inserts the vote, never independently.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/openvote/openvote/election"
	"github.com/openvote/openvote/models"
)

var (
	ErrElectionNotFound = errors.New("election not found")
	ErrElectionNotOpen  = errors.New("election is not open for voting")
	ErrInvalidCandidate = errors.New("candidate does not belong to this election")
	ErrAlreadyVoted     = errors.New("voter has already cast a ballot in this election")
)

const uniqueViolation = "23505"

// CastBallot records a vote for voterID in electionID. The vote insert and
// the voter's has_voted update commit together or not at all.
//
// Duplicate ballots are rejected by the vote table's unique constraint,
// not by a prior existence check: two concurrent casts for the same
// (voter, election) race past any read, but exactly one insert survives
// the constraint and the loser surfaces as ErrAlreadyVoted.
func CastBallot(db *sql.DB, voterID, electionID, candidateID string, now time.Time) (*models.Vote, error) {
	var e models.Election
	err := db.QueryRow(`
		SELECT id, title, description, start_time, end_time, is_active, created_at
		FROM election WHERE id = $1
	`, electionID).Scan(
		&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime, &e.IsActive, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrElectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query election: %w", err)
	}

	if !election.CanVote(e, now) {
		return nil, ErrElectionNotOpen
	}

	var belongs bool
	err = db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM candidate WHERE id = $1 AND election_id = $2)
	`, candidateID, electionID).Scan(&belongs)
	if err != nil {
		return nil, fmt.Errorf("failed to verify candidate: %w", err)
	}
	if !belongs {
		return nil, ErrInvalidCandidate
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	vote := &models.Vote{
		ID:          uuid.NewString(),
		VoterID:     voterID,
		ElectionID:  electionID,
		CandidateID: candidateID,
		CastAt:      now,
	}

	_, err = tx.Exec(`
		INSERT INTO vote (id, voter_id, election_id, candidate_id, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vote.ID, vote.VoterID, vote.ElectionID, vote.CandidateID, vote.CastAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}

	_, err = tx.Exec(`UPDATE voter SET has_voted = TRUE WHERE id = $1`, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to update voter flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}

	return vote, nil
}

// HasVoted reports whether a vote exists for (voterID, electionID).
func HasVoted(db *sql.DB, voterID, electionID string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM vote WHERE voter_id = $1 AND election_id = $2)
	`, voterID, electionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return exists, nil
}
