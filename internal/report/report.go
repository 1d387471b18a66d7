// Package report builds daily meeting-load statistics from a fetched event
// stream and writes the tabular exports.
package report

import (
	"time"

	"wallaby/internal/models"
)

// DailyStat is the sealed aggregate for one calendar date.
type DailyStat struct {
	Date  string
	Total time.Duration
	Count int
}

// MeetingRow is one qualifying meeting in the meetings export.
type MeetingRow struct {
	Date              string
	Summary           string
	Duration          time.Duration
	Creator           string
	AcceptedCount     int
	AcceptedAttendees []string
}

// Report is the result of one aggregation pass.
type Report struct {
	Days     []DailyStat
	Meetings []MeetingRow

	TotalDuration time.Duration
	TotalCount    int
}

// AverageDuration is the day-weighted average meeting time, truncated to
// whole seconds. Zero when no days were aggregated.
func (r Report) AverageDuration() time.Duration {
	if len(r.Days) == 0 {
		return 0
	}
	return (r.TotalDuration / time.Duration(len(r.Days))).Truncate(time.Second)
}

// AverageCount is the day-weighted average meeting count. Zero when no days
// were aggregated.
func (r Report) AverageCount() float64 {
	if len(r.Days) == 0 {
		return 0
	}
	return float64(r.TotalCount) / float64(len(r.Days))
}

// Aggregate folds a chronologically ordered event stream into per-day
// statistics and meeting rows.
//
// An event qualifies when it has more than one attendee and userEmail
// appears among the accepted attendees' identities (display name when
// present, email otherwise). Events whose start or end carries no date-time
// are skipped. Duration is end minus start; the day key is the start date in
// the event's own local representation.
//
// Precondition: events must be ordered by start time ascending, as the
// calendar listing returns them. The fold seals a day when the next distinct
// date appears and never reopens it, so unordered input produces fragmented
// per-date entries rather than merged ones.
func Aggregate(events []models.Event, userEmail string) Report {
	var rep Report
	var current *DailyStat

	for _, ev := range events {
		if len(ev.Attendees) <= 1 {
			continue
		}
		var accepted []string
		for _, a := range ev.Attendees {
			if a.ResponseStatus == models.ResponseAccepted {
				accepted = append(accepted, a.Identity())
			}
		}
		if !containsString(accepted, userEmail) {
			continue
		}

		start, ok := ev.Start.Instant()
		if !ok {
			continue
		}
		end, ok := ev.End.Instant()
		if !ok {
			continue
		}
		duration := end.Sub(start)
		day := start.Format("2006-01-02")

		switch {
		case current == nil:
			current = &DailyStat{Date: day}
		case current.Date != day:
			rep.Days = append(rep.Days, *current)
			current = &DailyStat{Date: day}
		}
		current.Total += duration
		current.Count++

		rep.Meetings = append(rep.Meetings, MeetingRow{
			Date:              day,
			Summary:           ev.Summary,
			Duration:          duration,
			Creator:           ev.Creator.Identity(),
			AcceptedCount:     len(accepted),
			AcceptedAttendees: accepted,
		})
	}

	if current != nil {
		rep.Days = append(rep.Days, *current)
	}
	for _, day := range rep.Days {
		rep.TotalDuration += day.Total
		rep.TotalCount += day.Count
	}
	return rep
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
