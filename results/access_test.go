// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"errors"
	"testing"
	"time"

	"github.com/openvote/openvote/models"
)

func TestCheckAccess(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	e := models.Election{
		ID:        "election-1",
		StartTime: base,
		EndTime:   base.Add(8 * time.Hour),
		IsActive:  true,
	}

	tests := []struct {
		name       string
		now        time.Time
		voted      bool
		wantReason string // empty means access granted
	}{
		{"voted, inside window", e.EndTime.Add(2 * time.Hour), true, ""},
		{"voted, just before expiry", e.EndTime.Add(24 * time.Hour), true, ""},
		{"voted, window expired", e.EndTime.Add(25 * time.Hour), true, models.ReasonWindowExpired},
		{"voted, still open", e.EndTime.Add(-time.Hour), true, models.ReasonStillOpen},
		{"voted, before start", base.Add(-time.Hour), true, models.ReasonStillOpen},
		{"did not vote, inside window", e.EndTime.Add(2 * time.Hour), false, models.ReasonNotVoted},
		{"did not vote, window expired", e.EndTime.Add(25 * time.Hour), false, models.ReasonWindowExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAccess(e, tt.voted, tt.now)
			if tt.wantReason == "" {
				if err != nil {
					t.Errorf("Expected access granted, got %v", err)
				}
				return
			}
			var denied *NotAvailableError
			if !errors.As(err, &denied) {
				t.Fatalf("Expected NotAvailableError, got %v", err)
			}
			if denied.Reason != tt.wantReason {
				t.Errorf("Expected reason %q, got %q", tt.wantReason, denied.Reason)
			}
			if denied.Message == "" {
				t.Error("Expected a human-readable message")
			}
		})
	}
}

// A deactivated election behaves as ended: participants can view results
// immediately, but the window still expires 24 hours after the scheduled
// end time.
func TestCheckAccessDeactivated(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	e := models.Election{
		ID:        "election-1",
		StartTime: base,
		EndTime:   base.Add(8 * time.Hour),
		IsActive:  false,
	}

	// Mid-run but deactivated: results window is open for participants
	if err := CheckAccess(e, true, base.Add(time.Hour)); err != nil {
		t.Errorf("Expected access for participant in deactivated election, got %v", err)
	}

	// Past end_time + 24h the window is gone regardless of deactivation
	err := CheckAccess(e, true, e.EndTime.Add(25*time.Hour))
	var denied *NotAvailableError
	if !errors.As(err, &denied) || denied.Reason != models.ReasonWindowExpired {
		t.Errorf("Expected window-expired, got %v", err)
	}
}
