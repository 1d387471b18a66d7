package google

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"wallaby/internal/config"
)

// NewHTTPClient authenticates against the Google APIs and returns an HTTP
// client carrying the resulting token. The token is loaded from the file
// next to the credentials when present, refreshed when expired, and
// otherwise obtained through the installed-app flow. Renewed tokens are
// written back so the next run skips the flow.
func NewHTTPClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (*http.Client, error) {
	b, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(b, cfg.Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}

	token, err := tokenFromFile(cfg.TokenPath())
	if err == nil {
		logger.Info("Loaded credentials", "file", cfg.TokenPath())
	}

	switch {
	case token != nil && token.Valid():
		// Nothing to do.
	case token != nil && token.RefreshToken != "":
		logger.Info("Refreshing token")
		token, err = oauthConfig.TokenSource(ctx, token).Token()
		if err != nil {
			return nil, fmt.Errorf("failed to refresh token: %w", err)
		}
		if err := saveToken(cfg.TokenPath(), token); err != nil {
			return nil, err
		}
		logger.Info("Wrote refreshed token", "file", cfg.TokenPath())
	default:
		logger.Info("Starting authorization flow", "credentials", cfg.CredentialsPath)
		token, err = tokenFromWeb(ctx, oauthConfig)
		if err != nil {
			return nil, err
		}
		if err := saveToken(cfg.TokenPath(), token); err != nil {
			return nil, err
		}
		logger.Info("Wrote token", "file", cfg.TokenPath())
	}

	return oauthConfig.Client(ctx, token), nil
}

// tokenFromWeb walks the user through the browser authorization flow and
// exchanges the pasted code for a token.
func tokenFromWeb(ctx context.Context, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	fmt.Print("Enter Authorization Code: ")
	reader := bufio.NewReader(os.Stdin)
	authCode, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, strings.TrimSpace(authCode))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return token, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create token file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
