package google

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveClient provides a client for the Google Drive API, used to pull
// meeting-notes documents attached to events.
type DriveClient struct {
	service *drive.Service
	logger  *slog.Logger
}

// NewDriveClient creates a drive client on an authenticated HTTP client.
func NewDriveClient(ctx context.Context, logger *slog.Logger, httpClient *http.Client) (*DriveClient, error) {
	service, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveClient{service: service, logger: logger}, nil
}

// DownloadDocumentAsText exports a document as plain text and streams it
// directly to destPath, creating parent directories as needed.
func (d *DriveClient) DownloadDocumentAsText(fileID, destPath string) error {
	resp, err := d.service.Files.Export(fileID, "text/plain").Download()
	if err != nil {
		d.logger.Error("Error downloading file", "fileID", fileID, "error", err)
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", destPath, err)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	return nil
}

// GetFileMetadata returns the metadata for a drive file.
func (d *DriveClient) GetFileMetadata(fileID string) (*drive.File, error) {
	meta, err := d.service.Files.Get(fileID).
		Fields("id", "name", "mimeType", "createdTime", "modifiedTime", "size", "owners").
		Do()
	if err != nil {
		d.logger.Error("Error getting file metadata", "fileID", fileID, "error", err)
		return nil, err
	}
	return meta, nil
}
