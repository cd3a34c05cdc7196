// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/openvote/openvote/cliparse"
	"github.com/openvote/openvote/election"
	"github.com/openvote/openvote/ledger"
	"github.com/openvote/openvote/middleware"
	"github.com/openvote/openvote/models"
	"github.com/openvote/openvote/results"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /elections/{id}/results
//
// Results are visible only inside the 24-hour window after the election
// ends, and only to voters who cast a ballot in it. Denials carry a reason
// code and a redirect target rather than a bare 403.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	voter := requireVoter(h.db, w, r)
	if voter == nil {
		return
	}

	electionID := r.PathValue("id")
	e, ok := loadElection(h.db, w, electionID)
	if !ok {
		return
	}

	tally, ok := authorizedTally(h.db, w, e, voter.ID)
	if !ok {
		return
	}

	resp := models.ResultsResponse{
		Election:   e,
		Candidates: toCandidateResults(tally),
		TotalVotes: tally.TotalVotes,
		ExpiresAt:  election.ResultsExpiry(e),
	}
	if winner := tally.Winner(); winner != nil {
		cr := toCandidateResult(*winner)
		resp.Winner = &cr
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// authorizedTally runs the results access check for one voter and, when
// allowed, computes the tally. Uses a single now for the phase check so
// one request cannot see two different phases.
func authorizedTally(db *sql.DB, w http.ResponseWriter, e models.Election, voterID string) (*results.Tally, bool) {
	voted, err := ledger.HasVoted(db, voterID, e.ID)
	if err != nil {
		slog.Error("failed to check vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}

	if err := results.CheckAccess(e, voted, time.Now()); err != nil {
		var denied *results.NotAvailableError
		if errors.As(err, &denied) {
			middleware.DeniedResponse(w, denied.Reason, denied.Message)
			return nil, false
		}
		slog.Error("results access check failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to check access")
		return nil, false
	}

	tally, err := results.Compute(db, e.ID)
	if err != nil {
		slog.Error("failed to compute tally", "error", err, "election_id", e.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return nil, false
	}
	return tally, true
}

func toCandidateResults(t *results.Tally) []models.CandidateResult {
	out := make([]models.CandidateResult, 0, len(t.Candidates))
	for _, row := range t.Candidates {
		out = append(out, toCandidateResult(row))
	}
	return out
}

func toCandidateResult(row results.Row) models.CandidateResult {
	return models.CandidateResult{
		Rank:       row.Rank,
		ID:         row.ID,
		Name:       row.Name,
		Party:      row.Party,
		Votes:      row.Votes,
		Percentage: row.Percentage,
	}
}
