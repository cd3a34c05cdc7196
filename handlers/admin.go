// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/openvote/openvote/cliparse"
	"github.com/openvote/openvote/middleware"
	"github.com/openvote/openvote/models"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// Dashboard handles GET /admin/dashboard (staff only) - aggregate stats
// across all elections plus a recent-activity feed.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if requireStaff(h.db, w, r) == nil {
		return
	}

	var resp models.AdminDashboardResponse
	err := h.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM election),
			(SELECT COUNT(*) FROM election WHERE is_active = TRUE AND end_time > NOW()),
			(SELECT COUNT(*) FROM election WHERE end_time < NOW()),
			(SELECT COUNT(*) FROM voter),
			(SELECT COUNT(*) FROM vote)
	`).Scan(
		&resp.TotalElections, &resp.ActiveElections, &resp.CompletedElections,
		&resp.TotalVoters, &resp.TotalVotes,
	)
	if err != nil {
		slog.Error("failed to query stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT vr.full_name, e.title, c.name, v.cast_at
		FROM vote v
		JOIN voter vr ON vr.id = v.voter_id
		JOIN election e ON e.id = v.election_id
		JOIN candidate c ON c.id = v.candidate_id
		ORDER BY v.cast_at DESC
		LIMIT 10
	`)
	if err != nil {
		slog.Error("failed to query recent votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	resp.RecentVotes = []models.RecentVote{}
	for rows.Next() {
		var rv models.RecentVote
		if err := rows.Scan(&rv.VoterName, &rv.ElectionTitle, &rv.CandidateName, &rv.CastAt); err != nil {
			slog.Error("failed to scan recent vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		resp.RecentVotes = append(resp.RecentVotes, rv)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
