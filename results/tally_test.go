// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"fmt"
	"math"
	"testing"

	"github.com/openvote/openvote/testutil"
)

func TestCompute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	electionID := testutil.CreateOpenElection(t, db, "General Election")
	alice := testutil.AddTestCandidate(t, db, electionID, "Alice Mwangi", "Unity Party")
	ben := testutil.AddTestCandidate(t, db, electionID, "Ben Otieno", "Reform Party")
	cara := testutil.AddTestCandidate(t, db, electionID, "Cara Njeri", "Green Party")

	// 3 votes for Ben, 2 for Alice, 0 for Cara
	for i := 0; i < 3; i++ {
		voterID, _ := testutil.CreateTestVoter(t, db, fmt.Sprintf("ben-voter%d", i), fmt.Sprintf("b%d@example.org", i))
		testutil.CastTestVote(t, db, voterID, electionID, ben)
	}
	for i := 0; i < 2; i++ {
		voterID, _ := testutil.CreateTestVoter(t, db, fmt.Sprintf("alice-voter%d", i), fmt.Sprintf("a%d@example.org", i))
		testutil.CastTestVote(t, db, voterID, electionID, alice)
	}

	tally, err := Compute(db, electionID)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if tally.TotalVotes != 5 {
		t.Errorf("Expected 5 total votes, got %d", tally.TotalVotes)
	}
	if len(tally.Candidates) != 3 {
		t.Fatalf("Expected 3 candidates, got %d", len(tally.Candidates))
	}

	want := []struct {
		id    string
		rank  int
		votes int
		pct   float64
	}{
		{ben, 1, 3, 60.0},
		{alice, 2, 2, 40.0},
		{cara, 3, 0, 0.0},
	}
	for i, w := range want {
		got := tally.Candidates[i]
		if got.ID != w.id || got.Rank != w.rank || got.Votes != w.votes || got.Percentage != w.pct {
			t.Errorf("Row %d: got {id=%s rank=%d votes=%d pct=%.2f}, want {id=%s rank=%d votes=%d pct=%.2f}",
				i, got.ID, got.Rank, got.Votes, got.Percentage, w.id, w.rank, w.votes, w.pct)
		}
	}

	var sum float64
	for _, c := range tally.Candidates {
		sum += c.Percentage
	}
	if math.Abs(sum-100.0) > 0.05 {
		t.Errorf("Percentages should sum to ~100, got %.2f", sum)
	}

	winner := tally.Winner()
	if winner == nil || winner.ID != ben {
		t.Errorf("Expected winner %s, got %+v", ben, winner)
	}
}

func TestComputeNoVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	electionID := testutil.CreateOpenElection(t, db, "Quiet Election")
	testutil.AddTestCandidate(t, db, electionID, "Alice Mwangi", "Unity Party")
	testutil.AddTestCandidate(t, db, electionID, "Ben Otieno", "Reform Party")

	tally, err := Compute(db, electionID)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if tally.TotalVotes != 0 {
		t.Errorf("Expected 0 total votes, got %d", tally.TotalVotes)
	}
	for _, c := range tally.Candidates {
		if c.Votes != 0 || c.Percentage != 0 {
			t.Errorf("Candidate %s: expected 0 votes and 0%%, got %d votes and %.2f%%", c.Name, c.Votes, c.Percentage)
		}
	}
}

func TestComputeNoCandidates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	electionID := testutil.CreateOpenElection(t, db, "Empty Election")

	tally, err := Compute(db, electionID)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(tally.Candidates) != 0 {
		t.Errorf("Expected no candidates, got %d", len(tally.Candidates))
	}
	if tally.Winner() != nil {
		t.Error("Expected nil winner for an election without candidates")
	}
}

// TestComputeTieBreak checks that tied candidates rank by creation order,
// so repeated computes produce the same ordering.
func TestComputeTieBreak(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	electionID := testutil.CreateOpenElection(t, db, "Tied Election")
	first := testutil.AddTestCandidate(t, db, electionID, "Alice Mwangi", "Unity Party")
	second := testutil.AddTestCandidate(t, db, electionID, "Ben Otieno", "Reform Party")

	v1, _ := testutil.CreateTestVoter(t, db, "voter1", "v1@example.org")
	v2, _ := testutil.CreateTestVoter(t, db, "voter2", "v2@example.org")
	testutil.CastTestVote(t, db, v1, electionID, first)
	testutil.CastTestVote(t, db, v2, electionID, second)

	for i := 0; i < 3; i++ {
		tally, err := Compute(db, electionID)
		if err != nil {
			t.Fatalf("Compute failed: %v", err)
		}
		if tally.Candidates[0].ID != first || tally.Candidates[1].ID != second {
			t.Fatalf("Run %d: tie broke to %s before %s, expected creation order", i, tally.Candidates[0].ID, tally.Candidates[1].ID)
		}
	}
}
