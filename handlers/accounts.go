// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/openvote/openvote/auth"
	"github.com/openvote/openvote/cliparse"
	"github.com/openvote/openvote/middleware"
	"github.com/openvote/openvote/models"
)

const sessionTTL = 24 * time.Hour

type AccountHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg}
}

// Register handles POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" || req.FullName == "" || req.VoterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username, password, full_name and voter_id are required")
		return
	}
	if len(req.Password) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
			return
		}
		dob = &parsed
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	id := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO voter (id, username, password_hash, full_name, email, voter_id, phone, address, date_of_birth, has_voted, is_staff, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, FALSE, $10)
	`, id, req.Username, hash, req.FullName, req.Email, req.VoterID, req.Phone, req.Address, dob, time.Now())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			middleware.ErrorResponse(w, http.StatusConflict, "Username or voter ID already registered")
			return
		}
		slog.Error("failed to insert voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	token, err := h.createSession(id)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	slog.Info("voter registered", "voter_id", id, "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		VoterID:      id,
		SessionToken: token,
	})
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var id, hash, fullName string
	var isStaff bool
	err := h.db.QueryRow(`
		SELECT id, password_hash, full_name, is_staff FROM voter WHERE username = $1
	`, req.Username).Scan(&id, &hash, &fullName, &isStaff)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(hash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := h.createSession(id)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	slog.Info("voter logged in", "voter_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		SessionToken: token,
		FullName:     fullName,
		IsStaff:      isStaff,
	})
}

// Logout handles POST /logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Session-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Session-Token header required")
		return
	}

	if _, err := h.db.Exec(`DELETE FROM session WHERE token = $1`, token); err != nil {
		slog.Error("failed to delete session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AccountHandler) createSession(voterID string) (string, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", err
	}
	_, err = h.db.Exec(`
		INSERT INTO session (token, voter_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, token, voterID, time.Now(), time.Now().Add(sessionTTL))
	if err != nil {
		return "", err
	}
	return token, nil
}

// currentVoter resolves the X-Session-Token header to a voter. Returns
// auth.ErrInvalidSession for missing, unknown or expired tokens.
func currentVoter(db *sql.DB, r *http.Request) (*models.Voter, error) {
	token := r.Header.Get("X-Session-Token")
	if token == "" {
		return nil, auth.ErrInvalidSession
	}

	var v models.Voter
	err := db.QueryRow(`
		SELECT vr.id, vr.username, vr.full_name, COALESCE(vr.email, ''), vr.voter_id,
		       vr.has_voted, vr.is_staff, vr.created_at
		FROM session s
		JOIN voter vr ON vr.id = s.voter_id
		WHERE s.token = $1 AND s.expires_at > NOW()
	`, token).Scan(
		&v.ID, &v.Username, &v.FullName, &v.Email, &v.VoterID,
		&v.HasVoted, &v.IsStaff, &v.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, auth.ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// requireVoter writes the appropriate error response and returns nil when
// the request carries no valid session.
func requireVoter(db *sql.DB, w http.ResponseWriter, r *http.Request) *models.Voter {
	v, err := currentVoter(db, r)
	if err == auth.ErrInvalidSession {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "A valid X-Session-Token header is required")
		return nil
	}
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil
	}
	return v
}

// requireStaff is requireVoter plus a staff check.
func requireStaff(db *sql.DB, w http.ResponseWriter, r *http.Request) *models.Voter {
	v := requireVoter(db, w, r)
	if v == nil {
		return nil
	}
	if !v.IsStaff {
		middleware.ErrorResponse(w, http.StatusForbidden, "Staff access required")
		return nil
	}
	return v
}
