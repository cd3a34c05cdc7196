// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the OpenVote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Accounts:

	POST /register - Register a voter
	POST /login    - Log in
	POST /logout   - Invalidate the session

Election management (staff, requires X-Session-Token):

	POST /elections                  - Create election
	PUT  /elections/{id}             - Update election
	POST /elections/{id}/candidates  - Add candidate
	POST /elections/{id}/activate    - Activate
	POST /elections/{id}/deactivate  - Deactivate

Browsing (public):

	GET /elections      - Active elections
	GET /elections/{id} - Election details with candidates

Voting (requires X-Session-Token):

	GET  /dashboard                - Voter dashboard
	POST /elections/{id}/ballots   - Cast a ballot

Results (participants only, inside the 24-hour window):

	GET /elections/{id}/results      - Ranked results
	GET /elections/{id}/export/pdf   - PDF report
	GET /elections/{id}/export/xlsx  - Excel report

Admin (staff only):

	GET /admin/dashboard - Aggregate statistics

# Handler Initialization

The router creates handler instances with dependency injection:

	accountHandler := handlers.NewAccountHandler(db, cfg)
	electionHandler := handlers.NewElectionHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	exportHandler := handlers.NewExportHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
