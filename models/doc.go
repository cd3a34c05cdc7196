// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: username, password, full_name, voter_id, contact details
  - LoginRequest: username, password
  - CreateElectionRequest: title, description, start_time, end_time
  - UpdateElectionRequest: optional fields; nil means unchanged
  - AddCandidateRequest: name, party, biography, manifesto
  - CastBallotRequest: candidate_id

# Response Types

Types for JSON responses:

  - RegisterResponse: voter_id, session_token
  - LoginResponse: session_token, full_name, is_staff
  - CastBallotResponse: vote_id, cast_at, message
  - DashboardResponse: voter plus visible elections with voting flags
  - ResultsResponse: ranked candidates, totals, winner, expiry
  - AdminDashboardResponse: aggregate counts and recent votes
  - ErrorResponse: error, message
  - DeniedResponse: error, reason, message, redirect_to

# Domain Types

Internal data structures:

  - Voter: account with registration details; private fields are
    excluded from JSON
  - Election: metadata and time bounds
  - Candidate: candidate profile per election
  - Vote: one ballot record
  - EmailLog: notification dedup record

# Constants

Results-denial reason codes:

	ReasonStillOpen     = "still-open"
	ReasonWindowExpired = "window-expired"
	ReasonNotVoted      = "not-voted"

Email notification kinds:

	EmailResultsAvailable = "results_available"
	EmailResultsExpiring  = "results_expiring"
*/
package models
