// Package attendance classifies a user's RSVP state against single events.
package attendance

import (
	"strings"

	"wallaby/internal/models"
)

// Outcome is the user's attendance classification for one event.
type Outcome string

const (
	Attended       Outcome = "attended"
	Rejected       Outcome = "rejected"
	Unacknowledged Outcome = "unacknowledged"
)

// Outcomes returns all outcomes in a fixed order, for summary reporting.
func Outcomes() []Outcome {
	return []Outcome{Attended, Rejected, Unacknowledged}
}

// Classify maps an event and a user email to an attendance outcome. The
// attendee list is scanned for a case-insensitive email match, first match
// wins: accepted means attended, declined means rejected, and any other
// response (tentative, needsAction, or none) means unacknowledged. A user
// absent from the attendee list is unacknowledged. Total: every event/user
// pair classifies to exactly one outcome.
func Classify(ev models.Event, userEmail string) Outcome {
	for _, a := range ev.Attendees {
		if !strings.EqualFold(a.Email, userEmail) {
			continue
		}
		switch a.ResponseStatus {
		case models.ResponseAccepted:
			return Attended
		case models.ResponseDeclined:
			return Rejected
		default:
			return Unacknowledged
		}
	}
	return Unacknowledged
}
