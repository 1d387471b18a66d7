package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonthWindowCurrentMonthOnly(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 45, 0, time.UTC)

	w, err := MonthWindow(now, 1)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), w.Start)
	require.Equal(t, time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC), w.End)
}

func TestMonthWindowLookback(t *testing.T) {
	now := time.Date(2026, time.May, 10, 8, 0, 0, 0, time.UTC)

	w, err := MonthWindow(now, 3)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), w.Start)
	require.Equal(t, time.Date(2026, time.May, 31, 23, 59, 59, 0, time.UTC), w.End)
}

func TestMonthWindowWrapsIntoPreviousYear(t *testing.T) {
	// January minus one month lands on December of the prior year.
	now := time.Date(2026, time.January, 20, 12, 0, 0, 0, time.UTC)

	w, err := MonthWindow(now, 2)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), w.Start)
	require.Equal(t, time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC), w.End)

	w, err = MonthWindow(now, 3)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC), w.Start)
}

func TestMonthWindowUnderflowUsesFixedWrap(t *testing.T) {
	// The wrap is 12-(offset-1) regardless of the current month, so a
	// February start with a four-month lookback lands on October.
	now := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)

	w, err := MonthWindow(now, 4)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), w.Start)
}

func TestMonthWindowLeapFebruaryEnd(t *testing.T) {
	now := time.Date(2028, time.February, 10, 0, 0, 0, 0, time.UTC)

	w, err := MonthWindow(now, 1)
	require.NoError(t, err)
	require.Equal(t, time.Date(2028, time.February, 29, 23, 59, 59, 0, time.UTC), w.End)
}

func TestMonthWindowRejectsZeroMonths(t *testing.T) {
	_, err := MonthWindow(time.Now().UTC(), 0)
	require.Error(t, err)
}

func TestDayWindowBounds(t *testing.T) {
	now := time.Date(2026, time.June, 15, 14, 45, 30, 0, time.UTC)

	w, err := DayWindow(now, 30)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.May, 16, 0, 0, 0, 0, time.UTC), w.Start)
	require.Equal(t, time.Date(2026, time.June, 15, 23, 59, 59, 999999000, time.UTC), w.End)
	require.Equal(t, "2026-05-16T00:00:00Z", w.Min())
	require.Equal(t, "2026-06-15T23:59:59.999999Z", w.Max())
}

func TestDayWindowZeroDaysIsToday(t *testing.T) {
	now := time.Date(2026, time.June, 15, 14, 45, 30, 0, time.UTC)

	w, err := DayWindow(now, 0)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC), w.Start)
	require.Equal(t, now.Day(), w.End.Day())
}

func TestDayWindowCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	w, err := DayWindow(now, 5)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC), w.Start)
}

func TestDayWindowRejectsNegativeDays(t *testing.T) {
	_, err := DayWindow(time.Now().UTC(), -1)
	require.Error(t, err)
}
