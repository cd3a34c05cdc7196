// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/openvote/openvote/cliparse"
	"github.com/openvote/openvote/election"
	"github.com/openvote/openvote/middleware"
	"github.com/openvote/openvote/models"
)

type ElectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg}
}

// Create handles POST /elections (staff only)
func (h *ElectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if requireStaff(h.db, w, r) == nil {
		return
	}

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if !req.StartTime.Before(req.EndTime) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_time must be before end_time")
		return
	}

	e := models.Election{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	_, err := h.db.Exec(`
		INSERT INTO election (id, title, description, start_time, end_time, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.Title, e.Description, e.StartTime, e.EndTime, e.IsActive, e.CreatedAt)
	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	slog.Info("election created", "election_id", e.ID, "title", e.Title)

	middleware.JSONResponse(w, http.StatusCreated, e)
}

// Update handles PUT /elections/{id} (staff only)
//
// Start and end times are immutable once a ballot has been cast: changing
// them would retroactively invalidate the open-phase check that already
// admitted existing votes.
func (h *ElectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if requireStaff(h.db, w, r) == nil {
		return
	}

	electionID := r.PathValue("id")
	e, ok := h.loadElection(w, electionID)
	if !ok {
		return
	}

	var req models.UpdateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StartTime != nil || req.EndTime != nil {
		var hasVotes bool
		err := h.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM vote WHERE election_id = $1)
		`, electionID).Scan(&hasVotes)
		if err != nil {
			slog.Error("failed to check votes", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if hasVotes {
			middleware.ErrorResponse(w, http.StatusConflict, "Election dates cannot be changed after ballots have been cast")
			return
		}
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		e.EndTime = *req.EndTime
	}
	if !e.StartTime.Before(e.EndTime) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_time must be before end_time")
		return
	}

	_, err := h.db.Exec(`
		UPDATE election SET title = $1, description = $2, start_time = $3, end_time = $4
		WHERE id = $5
	`, e.Title, e.Description, e.StartTime, e.EndTime, electionID)
	if err != nil {
		slog.Error("failed to update election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update election")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, e)
}

// SetActive handles POST /elections/{id}/activate and /deactivate (staff only)
func (h *ElectionHandler) SetActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if requireStaff(h.db, w, r) == nil {
			return
		}

		electionID := r.PathValue("id")
		res, err := h.db.Exec(`UPDATE election SET is_active = $1 WHERE id = $2`, active, electionID)
		if err != nil {
			slog.Error("failed to toggle election", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update election")
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
			return
		}

		slog.Info("election toggled", "election_id", electionID, "is_active", active)
		middleware.JSONResponse(w, http.StatusOK, map[string]bool{"is_active": active})
	}
}

// AddCandidate handles POST /elections/{id}/candidates (staff only)
func (h *ElectionHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	if requireStaff(h.db, w, r) == nil {
		return
	}

	electionID := r.PathValue("id")
	e, ok := h.loadElection(w, electionID)
	if !ok {
		return
	}

	// Candidates are set up before voting opens
	if election.Classify(e, time.Now()) != election.PhaseUpcoming {
		middleware.ErrorResponse(w, http.StatusConflict, "Candidates can only be added before voting opens")
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" || req.Party == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and party are required")
		return
	}

	c := models.Candidate{
		ID:         uuid.NewString(),
		ElectionID: electionID,
		Name:       req.Name,
		Party:      req.Party,
		Biography:  req.Biography,
		Manifesto:  req.Manifesto,
		PhotoURL:   req.PhotoURL,
		CreatedAt:  time.Now(),
	}

	_, err := h.db.Exec(`
		INSERT INTO candidate (id, election_id, name, party, biography, manifesto, photo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.ElectionID, c.Name, c.Party, c.Biography, c.Manifesto, c.PhotoURL, c.CreatedAt)
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add candidate")
		return
	}

	slog.Info("candidate added", "election_id", electionID, "candidate_id", c.ID)
	middleware.JSONResponse(w, http.StatusCreated, c)
}

// List handles GET /elections - active elections, newest first
func (h *ElectionHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, title, description, start_time, end_time, is_active, created_at
		FROM election
		WHERE is_active = TRUE
		ORDER BY start_time DESC
	`)
	if err != nil {
		slog.Error("failed to query elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	now := time.Now()
	elections := []models.ElectionWithCandidates{}
	for rows.Next() {
		var e models.Election
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime, &e.IsActive, &e.CreatedAt); err != nil {
			slog.Error("failed to scan election", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		elections = append(elections, models.ElectionWithCandidates{
			Election: e,
			Phase:    election.Classify(e, now).String(),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, elections)
}

// Get handles GET /elections/{id} - election details with candidates
func (h *ElectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	e, ok := h.loadElection(w, electionID)
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT id, election_id, name, party, COALESCE(biography, ''), COALESCE(manifesto, ''), COALESCE(photo_url, ''), created_at
		FROM candidate
		WHERE election_id = $1
		ORDER BY created_at, id
	`, electionID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.Biography, &c.Manifesto, &c.PhotoURL, &c.CreatedAt); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		candidates = append(candidates, c)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionWithCandidates{
		Election:   e,
		Phase:      election.Classify(e, time.Now()).String(),
		Candidates: candidates,
	})
}

// loadElection fetches an election or writes a 404/500 response.
func (h *ElectionHandler) loadElection(w http.ResponseWriter, electionID string) (models.Election, bool) {
	return loadElection(h.db, w, electionID)
}

func loadElection(db *sql.DB, w http.ResponseWriter, electionID string) (models.Election, bool) {
	var e models.Election
	err := db.QueryRow(`
		SELECT id, title, COALESCE(description, ''), start_time, end_time, is_active, created_at
		FROM election WHERE id = $1
	`, electionID).Scan(&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime, &e.IsActive, &e.CreatedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return e, false
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return e, false
	}
	return e, true
}
