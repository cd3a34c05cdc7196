// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Results-denial reason codes returned by the results and export endpoints.
const (
	ReasonStillOpen     = "still-open"
	ReasonWindowExpired = "window-expired"
	ReasonNotVoted      = "not-voted"
)

// Email notification kinds tracked by the dedup log.
const (
	EmailResultsAvailable = "results_available"
	EmailResultsExpiring  = "results_expiring"
)

// Request types

type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	VoterID     string `json:"voter_id"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateElectionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type UpdateElectionRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
}

type AddCandidateRequest struct {
	Name      string `json:"name"`
	Party     string `json:"party"`
	Biography string `json:"biography"`
	Manifesto string `json:"manifesto"`
	PhotoURL  string `json:"photo_url"`
}

type CastBallotRequest struct {
	CandidateID string `json:"candidate_id"`
}

// Response types

type RegisterResponse struct {
	VoterID      string `json:"voter_id"`
	SessionToken string `json:"session_token"`
}

type LoginResponse struct {
	SessionToken string `json:"session_token"`
	FullName     string `json:"full_name"`
	IsStaff      bool   `json:"is_staff"`
}

type CastBallotResponse struct {
	VoteID  string    `json:"vote_id"`
	CastAt  time.Time `json:"cast_at"`
	Message string    `json:"message"`
}

type ElectionWithCandidates struct {
	Election   Election    `json:"election"`
	Phase      string      `json:"phase"`
	Candidates []Candidate `json:"candidates"`
}

// DashboardElection is one entry on the voter dashboard: an election that
// is either open or still inside its results window.
type DashboardElection struct {
	Election         Election   `json:"election"`
	Phase            string     `json:"phase"`
	HasVoted         bool       `json:"has_voted"`
	CanVote          bool       `json:"can_vote"`
	CanViewResults   bool       `json:"can_view_results"`
	ResultsExpireIn  string     `json:"results_expire_in,omitempty"`
	ResultsExpiresAt *time.Time `json:"results_expires_at,omitempty"`
}

type DashboardResponse struct {
	Voter     Voter               `json:"voter"`
	Elections []DashboardElection `json:"elections"`
}

type ResultsResponse struct {
	Election   Election          `json:"election"`
	Candidates []CandidateResult `json:"candidates"`
	TotalVotes int               `json:"total_votes"`
	Winner     *CandidateResult  `json:"winner,omitempty"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

type AdminDashboardResponse struct {
	TotalElections     int          `json:"total_elections"`
	ActiveElections    int          `json:"active_elections"`
	CompletedElections int          `json:"completed_elections"`
	TotalVoters        int          `json:"total_voters"`
	TotalVotes         int          `json:"total_votes"`
	RecentVotes        []RecentVote `json:"recent_votes"`
}

type RecentVote struct {
	VoterName     string    `json:"voter_name"`
	ElectionTitle string    `json:"election_title"`
	CandidateName string    `json:"candidate_name"`
	CastAt        time.Time `json:"cast_at"`
}

// Domain types

type Voter struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	VoterID     string    `json:"voter_id"`
	Phone       string    `json:"-"`
	Address     string    `json:"-"`
	DateOfBirth time.Time `json:"-"`
	HasVoted    bool      `json:"has_voted"`
	IsStaff     bool      `json:"is_staff"`
	CreatedAt   time.Time `json:"created_at"`
}

type Election struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Candidate struct {
	ID         string    `json:"id"`
	ElectionID string    `json:"election_id"`
	Name       string    `json:"name"`
	Party      string    `json:"party"`
	Biography  string    `json:"biography"`
	Manifesto  string    `json:"manifesto"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Vote struct {
	ID          string    `json:"id"`
	VoterID     string    `json:"voter_id"`
	ElectionID  string    `json:"election_id"`
	CandidateID string    `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}

// EmailLog is the notification dedup record: at most one row per
// (election, email_type), enforced by a unique constraint.
type EmailLog struct {
	ID             string    `json:"id"`
	ElectionID     string    `json:"election_id"`
	EmailType      string    `json:"email_type"`
	SentAt         time.Time `json:"sent_at"`
	RecipientCount int       `json:"recipient_count"`
}

// CandidateResult is one row of a tally, ordered by rank.
type CandidateResult struct {
	Rank       int     `json:"rank"`
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Party      string  `json:"party"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// Error responses

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DeniedResponse is returned when results access is refused. RedirectTo
// points the UI at a safe landing page.
type DeniedResponse struct {
	Error      string `json:"error"`
	Reason     string `json:"reason"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirect_to"`
}
