package google

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func apiEvent(id string) *calendar.Event {
	return &calendar.Event{Id: id, Summary: "Event " + id}
}

func TestFetchAllPagesFollowsCursorChain(t *testing.T) {
	pages := map[string]*calendar.Events{
		"":   {Items: []*calendar.Event{apiEvent("a"), apiEvent("b")}, NextPageToken: "p2"},
		"p2": {Items: []*calendar.Event{apiEvent("c"), apiEvent("d")}, NextPageToken: "p3"},
		"p3": {Items: []*calendar.Event{apiEvent("e")}},
	}

	var requested []string
	fetch := func(pageToken string) (*calendar.Events, error) {
		requested = append(requested, pageToken)
		return pages[pageToken], nil
	}

	items, err := fetchAllPages(discardLogger(), 2, fetch)
	require.NoError(t, err)
	require.Len(t, items, 5)
	require.Equal(t, "a", items[0].Id)
	require.Equal(t, "e", items[4].Id)
	// No request is issued after the response without a continuation cursor.
	require.Equal(t, []string{"", "p2", "p3"}, requested)
}

func TestFetchAllPagesSinglePage(t *testing.T) {
	fetch := func(pageToken string) (*calendar.Events, error) {
		require.Empty(t, pageToken)
		return &calendar.Events{Items: []*calendar.Event{apiEvent("only")}}, nil
	}

	items, err := fetchAllPages(discardLogger(), 50, fetch)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestFetchAllPagesPropagatesErrorUnmodified(t *testing.T) {
	wantErr := errors.New("rate limit exceeded")
	calls := 0
	fetch := func(pageToken string) (*calendar.Events, error) {
		calls++
		if calls == 1 {
			return &calendar.Events{Items: []*calendar.Event{apiEvent("a")}, NextPageToken: "p2"}, nil
		}
		return nil, wantErr
	}

	_, err := fetchAllPages(discardLogger(), 50, fetch)
	require.ErrorIs(t, err, wantErr)
	require.Equal(t, 2, calls)
}

func TestToInternalEventKeepsFullRecord(t *testing.T) {
	item := &calendar.Event{
		Id:       "ev9",
		Status:   "confirmed",
		Summary:  "Planning",
		Creator:  &calendar.EventCreator{Email: "boss@example.com", DisplayName: "Boss"},
		Start:    &calendar.EventDateTime{DateTime: "2026-04-01T10:00:00-05:00", TimeZone: "America/Chicago"},
		End:      &calendar.EventDateTime{DateTime: "2026-04-01T10:30:00-05:00", TimeZone: "America/Chicago"},
		Attendees: []*calendar.EventAttendee{
			{Email: "me@example.com", ResponseStatus: "accepted"},
			{Email: "other@example.com", DisplayName: "Other", ResponseStatus: "declined", Optional: true},
		},
		Attachments: []*calendar.EventAttachment{
			{FileId: "f1", Title: "Planning - Notes by Gemini", MimeType: "application/vnd.google-apps.document"},
		},
	}

	ev := toInternalEvent(item)
	require.Equal(t, "ev9", ev.ID)
	require.Equal(t, "Boss", ev.Creator.Identity())
	require.Equal(t, "2026-04-01", ev.Start.DayKey())
	require.Len(t, ev.Attendees, 2)
	require.True(t, ev.Attendees[1].Optional)
	require.Len(t, ev.Attachments, 1)
	require.Equal(t, "f1", ev.Attachments[0].FileID)
}

func TestToInternalEventKeepsDateOnlyStart(t *testing.T) {
	item := &calendar.Event{
		Id:    "allday",
		Start: &calendar.EventDateTime{Date: "2026-04-02"},
		End:   &calendar.EventDateTime{Date: "2026-04-03"},
	}

	ev := toInternalEvent(item)
	require.Equal(t, "2026-04-02", ev.Start.DayKey())
	_, ok := ev.Start.Instant()
	require.False(t, ok)
}
