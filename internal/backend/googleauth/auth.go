// Package googleauth loads the OAuth client and token shared by the Google
// backends.
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	tasks "google.golang.org/api/tasks/v1"

	"jarvis/internal/config"
)

// Scopes requested at login: notes live in Google Tasks, reminders in
// Google Calendar.
var Scopes = []string{tasks.TasksScope, calendar.CalendarEventsScope}

// tokenCheckTimeout bounds the refresh attempt in TokenValid.
const tokenCheckTimeout = 10 * time.Second

// OAuthConfig reads oauth_client.json.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// LoadToken reads token.json.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// SaveToken saves an OAuth token to a file with mode 0600.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// HTTPClient returns an auto-refreshing client authorised with the stored token.
func HTTPClient(ctx context.Context, cfg *config.Config) (*http.Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token)), nil
}

// TokenValid reports whether token.json holds a refresh token that still
// yields an access token.
func TokenValid(cfg *config.Config) bool {
	token, err := LoadToken(cfg)
	if err != nil || token.RefreshToken == "" {
		return false
	}
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), tokenCheckTimeout)
	defer cancel()

	_, err = oauthConfig.TokenSource(ctx, token).Token()
	return err == nil
}

// WrapError turns API errors into user-facing messages. notFound replaces
// 404 responses so callers can match it with errors.Is.
func WrapError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	// Check for timeout
	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	// Check for auth errors
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: jarvis login)")
	}

	// Check for not found
	if strings.Contains(errStr, "404") {
		return notFound
	}

	return err
}
