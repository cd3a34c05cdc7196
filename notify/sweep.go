// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/openvote/openvote/models"
)

// Sweeper periodically finds elections that just entered their results
// window, and elections about one hour from window expiry, and triggers
// the matching notification batch for each. NotifyOnce's dedup log makes
// the sweep safe to run as often as desired, including concurrently.
type Sweeper struct {
	db      *sql.DB
	mailer  Mailer
	baseURL string
	cron    *cron.Cron
}

func NewSweeper(db *sql.DB, mailer Mailer, baseURL string) *Sweeper {
	return &Sweeper{
		db:      db,
		mailer:  mailer,
		baseURL: baseURL,
		cron:    cron.New(),
	}
}

// Start schedules the sweep with the given cron expression and runs it in
// the background until Stop is called.
func (s *Sweeper) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.Run(time.Now()); err != nil {
			slog.Error("notification sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule notification sweep: %w", err)
	}
	s.cron.Start()
	slog.Info("notification sweeper started", "schedule", schedule)
	return nil
}

// Stop halts the sweep schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Run executes one sweep at the given time.
func (s *Sweeper) Run(now time.Time) error {
	available, err := s.electionsBetween(now.Add(-24*time.Hour), now)
	if err != nil {
		return err
	}
	for _, e := range available {
		if _, err := NotifyOnce(s.db, s.mailer, e, models.EmailResultsAvailable, s.baseURL); err != nil {
			slog.Error("results-available notification failed", "election_id", e.ID, "error", err)
		}
	}

	expiring, err := s.electionsBetween(now.Add(-24*time.Hour), now.Add(-23*time.Hour))
	if err != nil {
		return err
	}
	for _, e := range expiring {
		if _, err := NotifyOnce(s.db, s.mailer, e, models.EmailResultsExpiring, s.baseURL); err != nil {
			slog.Error("results-expiring notification failed", "election_id", e.ID, "error", err)
		}
	}

	return nil
}

// electionsBetween returns active elections whose end time falls in
// (after, until]. The dedup log, not this time window, is what prevents
// repeat sends, so the window can be generous.
func (s *Sweeper) electionsBetween(after, until time.Time) ([]models.Election, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, start_time, end_time, is_active, created_at
		FROM election
		WHERE is_active = TRUE AND end_time > $1 AND end_time <= $2
		ORDER BY end_time
	`, after, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query ended elections: %w", err)
	}
	defer rows.Close()

	var elections []models.Election
	for rows.Next() {
		var e models.Election
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime, &e.IsActive, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, e)
	}
	return elections, rows.Err()
}
