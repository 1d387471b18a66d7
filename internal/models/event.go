package models

import "time"

// Attendee response statuses as reported by the calendar service.
const (
	ResponseAccepted    = "accepted"
	ResponseDeclined    = "declined"
	ResponseTentative   = "tentative"
	ResponseNeedsAction = "needsAction"
)

// GoogleDocMimeType is the MIME type of an editable Google Docs document.
const GoogleDocMimeType = "application/vnd.google-apps.document"

// Event is the internal representation of a calendar event.
// It mirrors the fields of the upstream calendar record so that archived
// copies keep the full original structure.
type Event struct {
	ID          string       `yaml:"id"`
	Status      string       `yaml:"status,omitempty"`
	HTMLLink    string       `yaml:"htmlLink,omitempty"`
	Created     string       `yaml:"created,omitempty"`
	Updated     string       `yaml:"updated,omitempty"`
	Summary     string       `yaml:"summary"`
	Description string       `yaml:"description,omitempty"`
	Location    string       `yaml:"location,omitempty"`
	Creator     Person       `yaml:"creator"`
	Organizer   Person       `yaml:"organizer,omitempty"`
	Start       EventTime    `yaml:"start"`
	End         EventTime    `yaml:"end"`
	Attendees   []Attendee   `yaml:"attendees,omitempty"`
	Attachments []Attachment `yaml:"attachments,omitempty"`
	HangoutLink string       `yaml:"hangoutLink,omitempty"`
	EventType   string       `yaml:"eventType,omitempty"`
}

// Person identifies the creator or organizer of an event.
type Person struct {
	Email       string `yaml:"email,omitempty"`
	DisplayName string `yaml:"displayName,omitempty"`
	Self        bool   `yaml:"self,omitempty"`
}

// Identity returns the display name when present, otherwise the email.
func (p Person) Identity() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Email
}

// Attendee is one entry of an event's attendee list. Email is the identity
// key and is matched case-insensitively.
type Attendee struct {
	Email          string `yaml:"email"`
	DisplayName    string `yaml:"displayName,omitempty"`
	Organizer      bool   `yaml:"organizer,omitempty"`
	Optional       bool   `yaml:"optional,omitempty"`
	ResponseStatus string `yaml:"responseStatus,omitempty"`
}

// Identity returns the display name when present, otherwise the email.
func (a Attendee) Identity() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Email
}

// Attachment references a document attached to an event. FileID is the
// opaque reference used to fetch the document from the drive service.
type Attachment struct {
	FileID   string `yaml:"fileId,omitempty"`
	FileURL  string `yaml:"fileUrl,omitempty"`
	Title    string `yaml:"title"`
	MimeType string `yaml:"mimeType,omitempty"`
	IconLink string `yaml:"iconLink,omitempty"`
}

// EventTime is a calendar instant that is either a full date-time or a bare
// date (all-day events), optionally carrying a time zone name.
type EventTime struct {
	DateTime string `yaml:"dateTime,omitempty"`
	Date     string `yaml:"date,omitempty"`
	TimeZone string `yaml:"timeZone,omitempty"`
}

// Instant parses the date-time representation. The second return is false
// for date-only or absent values.
func (t EventTime) Instant() (time.Time, bool) {
	if t.DateTime == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339, t.DateTime)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// DayKey returns the calendar day of this instant as YYYY-MM-DD, in the
// event's own local representation. Empty when neither form is set.
func (t EventTime) DayKey() string {
	if t.DateTime != "" && len(t.DateTime) >= 10 {
		return t.DateTime[:10]
	}
	if t.Date != "" {
		return t.Date
	}
	return ""
}
