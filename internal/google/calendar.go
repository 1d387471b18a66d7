// Package google wraps the Google Calendar and Drive services consumed by
// the pipelines.
package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"wallaby/internal/models"
	"wallaby/internal/window"
)

// CalendarClient provides a client for the Google Calendar API.
type CalendarClient struct {
	service *calendar.Service
	logger  *slog.Logger
}

// NewCalendarClient creates a calendar client on an authenticated HTTP
// client (see NewHTTPClient).
func NewCalendarClient(ctx context.Context, logger *slog.Logger, httpClient *http.Client) (*CalendarClient, error) {
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &CalendarClient{service: service, logger: logger}, nil
}

// ListCalendars returns all calendars visible to the authenticated account.
func (c *CalendarClient) ListCalendars(ctx context.Context) ([]*calendar.CalendarListEntry, error) {
	list, err := c.service.CalendarList.List().Context(ctx).Do()
	if err != nil {
		c.logger.Error("Failed to list calendars", "error", err)
		return nil, err
	}
	return list.Items, nil
}

// ListEvents fetches every event of the calendar within the window,
// following the listing cursor page by page. Pages are concatenated in the
// order received; the service returns them ordered by start time, which the
// aggregation downstream relies on.
func (c *CalendarClient) ListEvents(ctx context.Context, calendarID string, w window.Window, pageSize int64) ([]models.Event, error) {
	c.logger.Debug("Fetching events", "calendarID", calendarID, "timeMin", w.Min(), "timeMax", w.Max())

	fetch := func(pageToken string) (*calendar.Events, error) {
		call := c.service.Events.List(calendarID).
			ShowDeleted(false).
			SingleEvents(true).
			TimeMin(w.Min()).
			TimeMax(w.Max()).
			MaxResults(pageSize).
			OrderBy("startTime").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		return call.Do()
	}

	items, err := fetchAllPages(c.logger, pageSize, fetch)
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(items))
	for _, item := range items {
		events = append(events, toInternalEvent(item))
	}
	return events, nil
}

// fetchAllPages drives the cursor loop: the first request carries no page
// token, each subsequent request carries the previous response's token, and
// the loop ends on a response without one. Failures are logged and then
// propagated unmodified; there is no retry at this layer.
func fetchAllPages(logger *slog.Logger, pageSize int64, fetch func(pageToken string) (*calendar.Events, error)) ([]*calendar.Event, error) {
	var all []*calendar.Event
	pageToken := ""
	for {
		page, err := fetch(pageToken)
		if err != nil {
			logger.Error("Failed to retrieve events page", "fetched", len(all), "error", err)
			return nil, err
		}
		all = append(all, page.Items...)
		logger.Info("Got events so far", "count", len(all))

		if page.NextPageToken == "" {
			return all, nil
		}
		logger.Info("Grabbing next results", "upTo", pageSize)
		pageToken = page.NextPageToken
	}
}

// toInternalEvent converts a calendar API event to the internal model,
// keeping every field the pipelines or the archive care about. Date-only
// starts are preserved; the aggregation skips them, the archive accepts
// them.
func toInternalEvent(item *calendar.Event) models.Event {
	ev := models.Event{
		ID:          item.Id,
		Status:      item.Status,
		HTMLLink:    item.HtmlLink,
		Created:     item.Created,
		Updated:     item.Updated,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
		HangoutLink: item.HangoutLink,
		EventType:   item.EventType,
	}
	if item.Creator != nil {
		ev.Creator = models.Person{
			Email:       item.Creator.Email,
			DisplayName: item.Creator.DisplayName,
			Self:        item.Creator.Self,
		}
	}
	if item.Organizer != nil {
		ev.Organizer = models.Person{
			Email:       item.Organizer.Email,
			DisplayName: item.Organizer.DisplayName,
			Self:        item.Organizer.Self,
		}
	}
	if item.Start != nil {
		ev.Start = models.EventTime{DateTime: item.Start.DateTime, Date: item.Start.Date, TimeZone: item.Start.TimeZone}
	}
	if item.End != nil {
		ev.End = models.EventTime{DateTime: item.End.DateTime, Date: item.End.Date, TimeZone: item.End.TimeZone}
	}
	for _, a := range item.Attendees {
		ev.Attendees = append(ev.Attendees, models.Attendee{
			Email:          a.Email,
			DisplayName:    a.DisplayName,
			Organizer:      a.Organizer,
			Optional:       a.Optional,
			ResponseStatus: a.ResponseStatus,
		})
	}
	for _, att := range item.Attachments {
		ev.Attachments = append(ev.Attachments, models.Attachment{
			FileID:   att.FileId,
			FileURL:  att.FileUrl,
			Title:    att.Title,
			MimeType: att.MimeType,
			IconLink: att.IconLink,
		})
	}
	return ev
}
