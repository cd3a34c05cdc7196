// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the OpenVote API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AccountHandler: Registration, login, logout
  - ElectionHandler: Election and candidate management, browsing
  - VotingHandler: Ballot casting and the voter dashboard
  - ResultsHandler: Time-windowed results retrieval
  - ExportHandler: PDF and Excel report downloads
  - AdminHandler: Aggregate statistics for staff

Handlers are created via constructor functions that accept *sql.DB and Config:

	accountHandler := handlers.NewAccountHandler(db, cfg)

# Authentication

Authenticated endpoints read the X-Session-Token header. requireVoter
resolves it to a voter or writes a 401; requireStaff additionally writes
a 403 for non-staff accounts.

# Results Access

The results and export endpoints share one access path (authorizedTally):
the voter must have cast a ballot in the election, and the request must
land inside the 24-hour window after the election's end time. Refusals
are 403s carrying a reason code (still-open, not-voted, window-expired)
and a redirect target.
*/
package handlers
