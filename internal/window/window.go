// Package window computes the query time windows for event retrieval.
// Both calculators are pure given a "now" instant; callers pass
// time.Now().UTC().
package window

import (
	"fmt"
	"time"
)

// Window is the closed time range [Start, End] for a listing query, where
// End is the final instant of its day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Min returns the lower bound as an RFC3339 timestamp with offset.
func (w Window) Min() string {
	return w.Start.Format(time.RFC3339Nano)
}

// Max returns the upper bound as an RFC3339 timestamp with offset.
func (w Window) Max() string {
	return w.End.Format(time.RFC3339Nano)
}

// MonthWindow returns the window covering the last `months` calendar months,
// current month included. The end is the last second of the current month;
// the start is the first second of the month `months-1` months back, rolling
// into the previous year when the subtraction underflows past January.
// months=1 yields the current month only.
func MonthWindow(now time.Time, months int) (Window, error) {
	if months < 1 {
		return Window{}, fmt.Errorf("months must be at least 1, got %d", months)
	}

	startYear := now.Year()
	startMonth := int(now.Month())

	offset := months - 1
	if offset > 0 {
		if startMonth <= offset {
			startMonth = 12 - (offset - 1)
			startYear--
		} else {
			startMonth = int(now.Month()) - offset
		}
	}

	start := time.Date(startYear, time.Month(startMonth), 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), lastDayOfMonth(now), 23, 59, 59, 0, now.Location())

	return Window{Start: start, End: end}, nil
}

// DayWindow returns the window covering the last `days` days plus today.
// The start is 00:00:00 of the day `days` back; the end is today at
// 23:59:59.999999, so no future events are included.
func DayWindow(now time.Time, days int) (Window, error) {
	if days < 0 {
		return Window{}, fmt.Errorf("days must not be negative, got %d", days)
	}

	first := now.AddDate(0, 0, -days)
	start := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999000, now.Location())

	return Window{Start: start, End: end}, nil
}

func lastDayOfMonth(now time.Time) int {
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
