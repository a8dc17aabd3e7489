// Package googletasks stores notes in Google Tasks: one task list per note,
// one task per item.
package googletasks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"jarvis/internal/backend/googleauth"
	"jarvis/internal/config"
	"jarvis/internal/gateway"
)

const (
	// PageSize is the number of tasks per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second
)

// Client is a note store backed by the Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	httpClient, err := googleauth.HTTPClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithHTTPClient(ctx, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client and options
// (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// SaveNote creates a task list titled title with one task per content line.
// An existing list with the same title (case-insensitive) is reused.
func (c *Client) SaveNote(ctx context.Context, title, content string) error {
	listID, err := c.findList(ctx, title)
	if err != nil {
		return err
	}
	if listID == "" {
		listID, err = c.createList(ctx, title)
		if err != nil {
			return err
		}
	}
	for _, item := range Items(content) {
		if err := c.createTask(ctx, listID, item); err != nil {
			return err
		}
	}
	return nil
}

// LoadNote renders the open tasks of the list titled title as "- item" lines.
func (c *Client) LoadNote(ctx context.Context, title string) (string, error) {
	listID, err := c.findList(ctx, title)
	if err != nil {
		return "", err
	}
	if listID == "" {
		return "", fmt.Errorf("note %q: %w", title, gateway.ErrNotFound)
	}
	items, err := c.openTasks(ctx, listID)
	if err != nil {
		return "", err
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n"), nil
}

// Items splits note content into task titles, dropping list markers.
func Items(content string) []string {
	var items []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "-•*"))
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// findList returns the ID of the list titled name (case-insensitive,
// trimmed), or "" when there is none.
func (c *Client) findList(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	want := strings.ToLower(strings.TrimSpace(name))
	var found string
	err := c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if found == "" && strings.ToLower(strings.TrimSpace(list.Title)) == want {
				found = list.Id
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}
	return found, nil
}

func (c *Client) createList(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: name}).Context(ctx).Do()
	if err != nil {
		return "", wrapError(err)
	}
	return list.Id, nil
}

func (c *Client) createTask(ctx context.Context, listID, title string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Insert(listID, &tasks.Task{Title: title}).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// openTasks returns the titles of a list's open tasks across all pages.
func (c *Client) openTasks(ctx context.Context, listID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var titles []string
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(false).
		ShowDeleted(false).
		ShowHidden(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, task := range resp.Items {
				titles = append(titles, task.Title)
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return titles, nil
}

func wrapError(err error) error {
	return googleauth.WrapError(err, gateway.ErrNotFound)
}
