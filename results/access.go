// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"time"

	"github.com/openvote/openvote/election"
	"github.com/openvote/openvote/models"
)

// NotAvailableError explains why results are withheld from a voter.
type NotAvailableError struct {
	Reason  string // one of the models.Reason* codes
	Message string
}

func (e *NotAvailableError) Error() string {
	return "results not available: " + e.Reason
}

// CheckAccess decides whether a voter who did (or did not) vote in e may
// view its results at time now. Results are visible only inside the
// 24-hour window after the election ends, and only to participants.
func CheckAccess(e models.Election, voted bool, now time.Time) error {
	switch election.Classify(e, now) {
	case election.PhaseResultsWindow:
		if !voted {
			return &NotAvailableError{
				Reason:  models.ReasonNotVoted,
				Message: "You must have voted in this election to view results.",
			}
		}
		return nil
	case election.PhaseClosed:
		return &NotAvailableError{
			Reason:  models.ReasonWindowExpired,
			Message: "The 24-hour results viewing period has expired.",
		}
	default:
		return &NotAvailableError{
			Reason:  models.ReasonStillOpen,
			Message: "Results will be available for 24 hours after the election ends.",
		}
	}
}
