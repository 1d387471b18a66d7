package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"wallaby/internal/archive"
	"wallaby/internal/attendance"
	"wallaby/internal/config"
	"wallaby/internal/google"
	"wallaby/internal/report"
	"wallaby/internal/window"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "wallaby",
		Usage: "Work-life balance tools for calendar data and productivity insights.",
		Commands: []*cli.Command{
			calendarsCommand(),
			reportCommand(),
			archiveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func calendarsCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendars",
		Usage: "List all calendars available with the current credentials.",
		Action: func(c *cli.Context) error {
			logger := newLogger()
			_, calClient, _, err := buildClients(c, logger, false)
			if err != nil {
				return err
			}

			calendars, err := calClient.ListCalendars(c.Context)
			if err != nil {
				return fmt.Errorf("failed to list calendars: %w", err)
			}
			for _, cal := range calendars {
				fmt.Printf("%s\t%s\n", cal.Id, cal.Summary)
			}
			logger.Info("Listed calendars.", "count", len(calendars))
			return nil
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Export meeting-load analysis for the last N months to delimited files.",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "months", Value: 3, Usage: "Number of months to look back from the current month."},
			&cli.StringFlag{Name: "calendar", Value: "primary", Usage: "Calendar ID to query."},
			&cli.StringFlag{Name: "output", Value: "meetings.csv", Usage: "Output filename for per-meeting rows."},
			&cli.StringFlag{Name: "stats-output", Value: "stats.csv", Usage: "Output filename for daily statistics."},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger()
			cfg, calClient, _, err := buildClients(c, logger, false)
			if err != nil {
				return err
			}

			w, err := window.MonthWindow(time.Now().UTC(), c.Int("months"))
			if err != nil {
				return err
			}
			logger.Info("Getting events between", "timeMin", w.Min(), "timeMax", w.Max())

			events, err := calClient.ListEvents(c.Context, c.String("calendar"), w, cfg.PageSize)
			if err != nil {
				return fmt.Errorf("failed to fetch events: %w", err)
			}
			if len(events) == 0 {
				logger.Info("No events found.")
				return nil
			}

			rep := report.Aggregate(events, cfg.Email)

			if err := writeExport(c.String("output"), func(f *os.File) error {
				return report.WriteMeetings(f, rep)
			}); err != nil {
				return err
			}
			if err := writeExport(c.String("stats-output"), func(f *os.File) error {
				return report.WriteStats(f, rep)
			}); err != nil {
				return err
			}

			logger.Info("Report written.",
				"meetings", len(rep.Meetings),
				"days", len(rep.Days),
				"totalTime", report.FormatDuration(rep.TotalDuration),
				"output", c.String("output"),
				"statsOutput", c.String("stats-output"))
			return nil
		},
	}
}

func archiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "Save events from the last N days as records organized by attendance, downloading attached notes.",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "days", Value: 30, Usage: "Number of days to look back from the current day."},
			&cli.StringFlag{Name: "calendar", Value: "primary", Usage: "Calendar ID to query."},
			&cli.StringFlag{Name: "output-dir", Value: "calendar_events", Usage: "Base output directory for event files."},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger()
			cfg, calClient, driveClient, err := buildClients(c, logger, true)
			if err != nil {
				return err
			}

			w, err := window.DayWindow(time.Now().UTC(), c.Int("days"))
			if err != nil {
				return err
			}
			logger.Info("Getting events between", "timeMin", w.Min(), "timeMax", w.Max())

			events, err := calClient.ListEvents(c.Context, c.String("calendar"), w, cfg.PageSize)
			if err != nil {
				return fmt.Errorf("failed to fetch events: %w", err)
			}
			if len(events) == 0 {
				logger.Info("No events found.")
				return nil
			}

			organizer := archive.NewOrganizer(logger, c.String("output-dir"), cfg.Email, driveClient)
			summary, err := organizer.Save(events)
			if err != nil {
				return fmt.Errorf("archive run failed: %w", err)
			}

			for _, outcome := range attendance.Outcomes() {
				logger.Info("Archived",
					"outcome", outcome,
					"events", summary.Events[outcome],
					"notes", summary.Notes[outcome])
			}
			logger.Info("Archive finished.",
				"totalEvents", summary.TotalEvents(),
				"totalNotes", summary.TotalNotes(),
				"outputDir", c.String("output-dir"))
			return nil
		},
	}
}

// buildClients validates configuration, runs authentication, and constructs
// the API clients a command needs. The drive client is only built when the
// command downloads notes.
func buildClients(c *cli.Context, logger *slog.Logger, withDrive bool) (config.Config, *google.CalendarClient, *google.DriveClient, error) {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, err
	}

	httpClient, err := google.NewHTTPClient(c.Context, logger, cfg)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("authentication failed: %w", err)
	}

	calClient, err := google.NewCalendarClient(c.Context, logger, httpClient)
	if err != nil {
		return cfg, nil, nil, err
	}

	var driveClient *google.DriveClient
	if withDrive {
		driveClient, err = google.NewDriveClient(c.Context, logger, httpClient)
		if err != nil {
			return cfg, nil, nil, err
		}
	}
	return cfg, calClient, driveClient, nil
}

func writeExport(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func newLogger() *slog.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
