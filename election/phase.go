// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"time"

	"github.com/openvote/openvote/models"
)

// ResultsWindow is how long results stay visible after an election ends.
const ResultsWindow = 24 * time.Hour

// Phase is the lifecycle state of an election at a point in time. It is
// never stored: every caller recomputes it from the election's timestamps
// so there is no stored state to drift.
type Phase int

const (
	PhaseUpcoming Phase = iota
	PhaseOpen
	PhaseResultsWindow
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseUpcoming:
		return "upcoming"
	case PhaseOpen:
		return "open"
	case PhaseResultsWindow:
		return "results_window"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Classify returns the phase of e at time now.
//
// An election that is deactivated while running is treated as ended: it
// skips straight into its results window, which still expires 24 hours
// after the scheduled end time. Callers inside one logical operation must
// pass the same now to every call, or they can observe two different
// phases for one request.
func Classify(e models.Election, now time.Time) Phase {
	if now.Before(e.StartTime) {
		return PhaseUpcoming
	}
	ended := now.After(e.EndTime) || !e.IsActive
	if !ended {
		return PhaseOpen
	}
	if now.Sub(e.EndTime) <= ResultsWindow {
		return PhaseResultsWindow
	}
	return PhaseClosed
}

// ResultsExpiry returns when the results window for e closes.
func ResultsExpiry(e models.Election) time.Time {
	return e.EndTime.Add(ResultsWindow)
}

// CanVote reports whether ballots are accepted for e at time now. It does
// not know whether a particular voter has already voted; that is the
// ledger's concern.
func CanVote(e models.Election, now time.Time) bool {
	return Classify(e, now) == PhaseOpen
}
