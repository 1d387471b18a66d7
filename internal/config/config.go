// Package config carries the explicit configuration for a command run.
// Values are read from the environment once and passed into every
// component at construction.
package config

import (
	"fmt"
	"os"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
)

const defaultPageSize = 50

// Config holds the identity and credential material for the Google clients.
type Config struct {
	// CredentialsPath points at the OAuth client secrets JSON file.
	CredentialsPath string
	// Email is the main participant looked for in calendar entries.
	Email string
	// PageSize bounds each page of the event listing.
	PageSize int64
	// Scopes requested during the OAuth flow.
	Scopes []string
}

// FromEnv builds a Config from GOOGLE_CREDS_PATH and EMAIL.
func FromEnv() Config {
	return Config{
		CredentialsPath: os.Getenv("GOOGLE_CREDS_PATH"),
		Email:           os.Getenv("EMAIL"),
		PageSize:        defaultPageSize,
		Scopes: []string{
			calendar.CalendarReadonlyScope,
			drive.DriveReadonlyScope,
		},
	}
}

// TokenPath is where the OAuth token is persisted, next to the credentials.
func (c Config) TokenPath() string {
	return c.CredentialsPath + ".token.json"
}

// Validate reports missing identity or credential material. Called once at
// command start; a failure is fatal for the run.
func (c Config) Validate() error {
	if c.Email == "" {
		return fmt.Errorf("missing environment variable $EMAIL, which should be the main participant in calendar entries we're looking for")
	}
	if c.CredentialsPath == "" {
		return fmt.Errorf("missing environment variable $GOOGLE_CREDS_PATH")
	}
	if _, err := os.Stat(c.CredentialsPath); err != nil {
		return fmt.Errorf("missing credentials: %s", c.CredentialsPath)
	}
	return nil
}
