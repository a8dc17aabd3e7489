// Package googlecalendar stores reminders as Google Calendar events.
package googlecalendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"jarvis/internal/backend/googleauth"
	"jarvis/internal/config"
	"jarvis/internal/gateway"
)

const (
	// EventDuration is the length of a reminder event.
	EventDuration = time.Hour

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// DefaultCalendarID is the signed-in user's main calendar.
	DefaultCalendarID = "primary"
)

// Client is a reminder store backed by the Google Calendar API.
type Client struct {
	svc        *calendar.Service
	calendarID string
}

// New creates a calendar client for cfg.Google.CalendarID.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	httpClient, err := googleauth.HTTPClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithHTTPClient(ctx, httpClient, cfg.Google.CalendarID)
}

// NewWithHTTPClient creates a client with a custom HTTP client and options
// (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, calendarID string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	return &Client{svc: svc, calendarID: calendarID}, nil
}

// Event builds the one-hour event for a reminder.
func Event(title string, dueAt time.Time) *calendar.Event {
	return &calendar.Event{
		Summary:     title,
		Description: "Reminder: " + title,
		Start: &calendar.EventDateTime{
			DateTime: dueAt.UTC().Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: dueAt.Add(EventDuration).UTC().Format(time.RFC3339),
		},
	}
}

// SaveReminder inserts the reminder's event.
func (c *Client) SaveReminder(ctx context.Context, title string, dueAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Events.Insert(c.calendarID, Event(title, dueAt)).Context(ctx).Do()
	if err != nil {
		return googleauth.WrapError(err, fmt.Errorf("calendar %q: %w", c.calendarID, gateway.ErrNotFound))
	}
	return nil
}
