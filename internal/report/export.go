package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Export format: caret-delimited fields with pipe quoting, quoted only when
// a field contains the delimiter, the quote, or a line break.
const (
	fieldDelimiter = "^"
	quoteChar      = "|"
)

// WriteMeetings writes the per-meeting export.
func WriteMeetings(w io.Writer, rep Report) error {
	if err := writeRecord(w, []string{
		"Date",
		"Summary",
		"Duration",
		"Categories",
		"Creator",
		"Accepted Count",
		"Accepted Attendees",
	}); err != nil {
		return err
	}

	for _, m := range rep.Meetings {
		record := []string{
			m.Date,
			m.Summary,
			FormatDuration(m.Duration),
			"TBD", // categorization not implemented yet
			m.Creator,
			strconv.Itoa(m.AcceptedCount),
			strings.Join(m.AcceptedAttendees, ", "),
		}
		if err := writeRecord(w, record); err != nil {
			return err
		}
	}
	return nil
}

// WriteStats writes the daily statistics export with a trailing averages
// row. The averages row is omitted when no days were aggregated.
func WriteStats(w io.Writer, rep Report) error {
	if err := writeRecord(w, []string{"Date", "Cumulative Time", "Meeting Count"}); err != nil {
		return err
	}

	for _, day := range rep.Days {
		record := []string{
			day.Date,
			FormatDuration(day.Total),
			strconv.Itoa(day.Count),
		}
		if err := writeRecord(w, record); err != nil {
			return err
		}
	}

	if len(rep.Days) > 0 {
		record := []string{
			"Averages",
			FormatDuration(rep.AverageDuration()),
			strconv.FormatFloat(rep.AverageCount(), 'g', -1, 64),
		}
		if err := writeRecord(w, record); err != nil {
			return err
		}
	}
	return nil
}

// FormatDuration renders a duration as H:MM:SS with unpadded hours.
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}

// writeRecord writes one delimited record. encoding/csv hard-codes the
// double quote as its quote character, so the pipe-quoted format is written
// by hand here.
func writeRecord(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = quoteField(field)
	}
	_, err := io.WriteString(w, strings.Join(quoted, fieldDelimiter)+"\n")
	return err
}

func quoteField(field string) string {
	if !strings.ContainsAny(field, fieldDelimiter+quoteChar+"\r\n") {
		return field
	}
	escaped := strings.ReplaceAll(field, quoteChar, quoteChar+quoteChar)
	return quoteChar + escaped + quoteChar
}
