// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/openvote/openvote/cliparse"
	"github.com/openvote/openvote/handlers"
	"github.com/openvote/openvote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(db, cfg)
	electionHandler := handlers.NewElectionHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	exportHandler := handlers.NewExportHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(accountHandler.Logout))

	// Elections (staff management + public browsing)
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.Create))
	mux.HandleFunc("PUT /elections/{id}", middleware.WithLogging(electionHandler.Update))
	mux.HandleFunc("POST /elections/{id}/candidates", middleware.WithLogging(electionHandler.AddCandidate))
	mux.HandleFunc("POST /elections/{id}/activate", middleware.WithLogging(electionHandler.SetActive(true)))
	mux.HandleFunc("POST /elections/{id}/deactivate", middleware.WithLogging(electionHandler.SetActive(false)))
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.List))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.Get))

	// Voting
	mux.HandleFunc("GET /dashboard", middleware.WithLogging(votingHandler.Dashboard))
	mux.HandleFunc("POST /elections/{id}/ballots", middleware.WithLogging(votingHandler.CastBallot))

	// Results (time-windowed, participants only)
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /elections/{id}/export/pdf", middleware.WithLogging(exportHandler.ExportPDF))
	mux.HandleFunc("GET /elections/{id}/export/xlsx", middleware.WithLogging(exportHandler.ExportExcel))

	// Admin
	mux.HandleFunc("GET /admin/dashboard", middleware.WithLogging(adminHandler.Dashboard))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("openvote API v1"))
	})

	return mux
}
