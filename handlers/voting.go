// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/openvote/openvote/cliparse"
	"github.com/openvote/openvote/election"
	"github.com/openvote/openvote/ledger"
	"github.com/openvote/openvote/middleware"
	"github.com/openvote/openvote/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// CastBallot handles POST /elections/{id}/ballots
func (h *VotingHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	voter := requireVoter(h.db, w, r)
	if voter == nil {
		return
	}

	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	vote, err := ledger.CastBallot(h.db, voter.ID, electionID, req.CandidateID, time.Now())
	switch err {
	case nil:
		// fall through to success response
	case ledger.ErrElectionNotFound:
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	case ledger.ErrElectionNotOpen:
		middleware.ErrorResponse(w, http.StatusConflict, "This election is not currently open for voting")
		return
	case ledger.ErrInvalidCandidate:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate does not belong to this election")
		return
	case ledger.ErrAlreadyVoted:
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted in this election")
		return
	default:
		slog.Error("failed to cast ballot", "error", err, "election_id", electionID, "voter_id", voter.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast ballot")
		return
	}

	slog.Info("ballot cast", "election_id", electionID, "vote_id", vote.ID, "ip", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusCreated, models.CastBallotResponse{
		VoteID:  vote.ID,
		CastAt:  vote.CastAt,
		Message: "Your vote has been recorded successfully",
	})
}

// Dashboard handles GET /dashboard - the voter's view of elections that
// are open or still inside their results window.
func (h *VotingHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	voter := requireVoter(h.db, w, r)
	if voter == nil {
		return
	}

	rows, err := h.db.Query(`
		SELECT e.id, e.title, COALESCE(e.description, ''), e.start_time, e.end_time, e.is_active, e.created_at,
		       EXISTS(SELECT 1 FROM vote v WHERE v.election_id = e.id AND v.voter_id = $1) AS voted
		FROM election e
		WHERE e.is_active = TRUE
		ORDER BY e.created_at DESC
	`, voter.ID)
	if err != nil {
		slog.Error("failed to query elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	now := time.Now()
	entries := []models.DashboardElection{}
	for rows.Next() {
		var e models.Election
		var voted bool
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime, &e.IsActive, &e.CreatedAt, &voted); err != nil {
			slog.Error("failed to scan election", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		phase := election.Classify(e, now)
		// Only ongoing elections and those still in their results window
		// show up; upcoming and long-closed ones are noise here.
		if phase != election.PhaseOpen && phase != election.PhaseResultsWindow {
			continue
		}

		entry := models.DashboardElection{
			Election:       e,
			Phase:          phase.String(),
			HasVoted:       voted,
			CanVote:        phase == election.PhaseOpen && !voted,
			CanViewResults: phase == election.PhaseResultsWindow && voted,
		}
		if entry.CanViewResults {
			expiry := election.ResultsExpiry(e)
			entry.ResultsExpiresAt = &expiry
			entry.ResultsExpireIn = humanize.Time(expiry)
		}
		entries = append(entries, entry)
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
		Voter:     *voter,
		Elections: entries,
	})
}
