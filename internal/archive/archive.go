// Package archive lays fetched events out on disk, one record per event,
// organized by attendance outcome and calendar date, with attached
// meeting-notes documents downloaded alongside.
package archive

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"wallaby/internal/attendance"
	"wallaby/internal/models"
)

// NotesDownloader pulls a document's plain-text export into a file. A nil
// downloader disables note downloads.
type NotesDownloader interface {
	DownloadDocumentAsText(fileID, destPath string) error
}

// Summary counts archived events and downloaded notes per outcome.
type Summary struct {
	Events map[attendance.Outcome]int
	Notes  map[attendance.Outcome]int
}

// TotalEvents is the number of event records written.
func (s Summary) TotalEvents() int {
	total := 0
	for _, n := range s.Events {
		total += n
	}
	return total
}

// TotalNotes is the number of notes downloaded.
func (s Summary) TotalNotes() int {
	total := 0
	for _, n := range s.Notes {
		total += n
	}
	return total
}

// Organizer writes event records under root/<outcome>/<YYYY-MM-DD>/.
type Organizer struct {
	logger    *slog.Logger
	root      string
	userEmail string
	notes     NotesDownloader
}

// NewOrganizer creates an organizer rooted at root. Events are classified
// against userEmail.
func NewOrganizer(logger *slog.Logger, root, userEmail string, notes NotesDownloader) *Organizer {
	return &Organizer{logger: logger, root: root, userEmail: userEmail, notes: notes}
}

// Save archives every event that carries a start (date-only starts are
// accepted). Each record goes to <root>/<outcome>/<date>/<sanitized
// title><ext>, never overwriting: an occupied path gets a _<n> suffix
// before the extension. A failed write aborts that event's archival only.
// Notes already archived by an earlier run are not detected; a re-run
// downloads them again under a disambiguated name.
func (o *Organizer) Save(events []models.Event) (Summary, error) {
	summary := Summary{
		Events: make(map[attendance.Outcome]int),
		Notes:  make(map[attendance.Outcome]int),
	}

	for _, ev := range events {
		day := ev.Start.DayKey()
		if day == "" {
			continue
		}

		outcome := attendance.Classify(ev, o.userEmail)
		dir := filepath.Join(o.root, string(outcome), day)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return summary, fmt.Errorf("failed to create %s: %w", dir, err)
		}

		title := ev.Summary
		if title == "" {
			title = "Untitled Event"
		}
		record, ext := eventRecord(ev)
		path := resolvePath(dir, Sanitize(title), ext)
		if err := os.WriteFile(path, record, 0o644); err != nil {
			o.logger.Error("Failed to write event record", "path", path, "error", err)
			continue
		}
		summary.Events[outcome]++
		o.logger.Info("Saved", "outcome", outcome, "date", day, "file", filepath.Base(path))

		if o.notes != nil {
			summary.Notes[outcome] += o.downloadNotes(ev, dir)
		}
	}
	return summary, nil
}

// downloadNotes fetches each notes attachment of the event into dir as a
// plain-text file and returns how many succeeded.
func (o *Organizer) downloadNotes(ev models.Event, dir string) int {
	downloaded := 0
	for _, att := range ev.Attachments {
		if !IsNotesDocument(att) {
			continue
		}
		if att.FileID == "" {
			o.logger.Warn("Notes attachment missing file reference", "title", att.Title)
			continue
		}

		path := resolvePath(dir, Sanitize(att.Title), ".txt")
		if err := o.notes.DownloadDocumentAsText(att.FileID, path); err != nil {
			o.logger.Error("Failed to download notes", "title", att.Title, "error", err)
			continue
		}
		downloaded++
		o.logger.Info("Downloaded notes", "file", filepath.Base(path))
	}
	return downloaded
}

// eventRecord serializes the full event. Records marshal to YAML; if that
// fails the record falls back to indented JSON.
func eventRecord(ev models.Event) ([]byte, string) {
	data, err := yaml.Marshal(ev)
	if err == nil {
		return data, ".yaml"
	}
	data, _ = json.MarshalIndent(ev, "", "  ")
	return data, ".json"
}

// resolvePath returns dir/base+ext, or the first free dir/base_<n>+ext when
// the plain path is taken. Existing files are never overwritten.
func resolvePath(dir, base, ext string) string {
	path := filepath.Join(dir, base+ext)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
	}
}

// Sanitize makes a string safe for use as a filename: characters the
// filesystem rejects and line breaks become underscores, the result is
// capped at 200 characters, and trailing dots and spaces are stripped after
// the cap.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*', '\r', '\n', '\t':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	sanitized := []rune(b.String())
	if len(sanitized) > 200 {
		sanitized = sanitized[:200]
	}
	return strings.TrimRight(string(sanitized), ". ")
}
