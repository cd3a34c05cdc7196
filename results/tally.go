// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package results computes election tallies and decides who may see them.
package results

import (
	"database/sql"
	"fmt"
	"math"
)

// Tally holds per-candidate counts for one election, ordered by rank.
type Tally struct {
	ElectionID string
	Candidates []Row
	TotalVotes int
}

// Row is one ranked line of a tally.
type Row struct {
	Rank       int
	ID         string
	Name       string
	Party      string
	Votes      int
	Percentage float64
}

// Winner returns the top-ranked candidate, or nil for an election without
// candidates. An empty tally is data, not an error: report rendering shows
// "no data" instead of failing.
func (t *Tally) Winner() *Row {
	if len(t.Candidates) == 0 {
		return nil
	}
	return &t.Candidates[0]
}

// Compute tallies votes per candidate for the given election.
//
// Ordering is deterministic: vote count descending, then candidate
// creation time, then candidate ID. Percentages are rounded to two
// decimals and are all zero when no votes were cast.
//
// Compute performs no access control; callers check viewing rules first.
func Compute(db *sql.DB, electionID string) (*Tally, error) {
	rows, err := db.Query(`
		SELECT c.id, c.name, c.party, COUNT(v.id) AS votes
		FROM candidate c
		LEFT JOIN vote v ON v.candidate_id = c.id
		WHERE c.election_id = $1
		GROUP BY c.id, c.name, c.party, c.created_at
		ORDER BY votes DESC, c.created_at ASC, c.id ASC
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tally: %w", err)
	}
	defer rows.Close()

	tally := &Tally{ElectionID: electionID}
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.Name, &row.Party, &row.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		tally.TotalVotes += row.Votes
		tally.Candidates = append(tally.Candidates, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tally rows: %w", err)
	}

	for i := range tally.Candidates {
		tally.Candidates[i].Rank = i + 1
		if tally.TotalVotes > 0 {
			pct := float64(tally.Candidates[i].Votes) / float64(tally.TotalVotes) * 100
			tally.Candidates[i].Percentage = math.Round(pct*100) / 100
		}
	}

	return tally, nil
}
