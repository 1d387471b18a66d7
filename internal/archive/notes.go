package archive

import (
	"strings"

	"wallaby/internal/models"
)

// Phrases marking an attachment title as assistant-generated meeting notes.
// Matching is case-insensitive substring.
var notesIndicators = []string{
	"notes by gemini",
	"gemini notes",
	"by gemini",
}

// IsNotesDocument reports whether an attachment is a meeting-notes
// document: it must be an editable Google document and its title must
// contain one of the indicator phrases.
func IsNotesDocument(att models.Attachment) bool {
	if att.MimeType != models.GoogleDocMimeType {
		return false
	}
	title := strings.ToLower(att.Title)
	for _, indicator := range notesIndicators {
		if strings.Contains(title, indicator) {
			return true
		}
	}
	return false
}
