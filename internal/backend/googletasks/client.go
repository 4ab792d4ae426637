// Package googletasks mirrors the task list into a Google Tasks list, so it
// can serve as a service.Store.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskpop/internal/config"
	"taskpop/internal/priority"
	"taskpop/internal/service"
)

const (
	// PageSize is the number of items per page.
	PageSize = 100

	// APITimeout is the timeout for one Load, Save or Clear.
	APITimeout = 15 * time.Second

	// Scope is the OAuth scope requested for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"

	noteID       = "taskpop-id"
	notePriority = "priority"
)

// Client implements service.Store on one Google Tasks list, created on
// first use when missing.
type Client struct {
	svc       *tasks.Service
	listTitle string
	listID    string
}

// New creates a client from the OAuth files in the config directory.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	// Token source refreshes automatically.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	return &Client{svc: svc, listTitle: listTitle(cfg.Settings.GoogleList)}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint
// (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint, list string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, listTitle: listTitle(list)}, nil
}

func listTitle(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return config.DefaultGoogleList
	}
	return name
}

// Load implements service.Store.
func (c *Client) Load(ctx context.Context) (service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	remote, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(service.TaskList, 0, len(remote))
	for _, item := range remote {
		out = append(out, toTask(item))
	}
	return out, nil
}

// Save implements service.Store. Remote items are matched by task id:
// unknown ones are deleted, changed ones patched and new ones inserted
// after their predecessor.
func (c *Client) Save(ctx context.Context, list service.TaskList) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	remote, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]*tasks.Task, len(remote))
	for _, item := range remote {
		byID[toTask(item).ID] = item
	}

	keep := make(map[string]bool, len(list))
	for _, t := range list {
		keep[t.ID] = true
	}
	for id, item := range byID {
		if keep[id] {
			continue
		}
		if err := c.svc.Tasks.Delete(c.listID, item.Id).Context(ctx).Do(); err != nil {
			return wrapError(err)
		}
	}

	previous := ""
	for _, t := range list {
		want := fromTask(t)
		if item, ok := byID[t.ID]; ok {
			if item.Title != want.Title || item.Status != want.Status || item.Notes != want.Notes {
				_, err := c.svc.Tasks.Patch(c.listID, item.Id, want).Context(ctx).Do()
				if err != nil {
					return wrapError(err)
				}
			}
			previous = item.Id
			continue
		}

		call := c.svc.Tasks.Insert(c.listID, want).Context(ctx)
		if previous != "" {
			call = call.Previous(previous)
		}
		created, err := call.Do()
		if err != nil {
			return wrapError(err)
		}
		previous = created.Id
	}
	return nil
}

// Clear implements service.Store by deleting every item in the list.
func (c *Client) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	remote, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	for _, item := range remote {
		if err := c.svc.Tasks.Delete(c.listID, item.Id).Context(ctx).Do(); err != nil {
			return wrapError(err)
		}
	}
	return nil
}

// fetch returns every item of the mirror list in position order.
func (c *Client) fetch(ctx context.Context) ([]*tasks.Task, error) {
	if err := c.resolveList(ctx); err != nil {
		return nil, err
	}

	var items []*tasks.Task
	err := c.svc.Tasks.List(c.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			items = append(items, resp.Items...)
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	return items, nil
}

// resolveList finds the mirror list by title (case-insensitive, trimmed),
// creating it if it does not exist.
func (c *Client) resolveList(ctx context.Context) error {
	if c.listID != "" {
		return nil
	}

	want := strings.ToLower(c.listTitle)
	var found []string
	err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, l := range resp.Items {
			if strings.ToLower(strings.TrimSpace(l.Title)) == want {
				found = append(found, l.Id)
			}
		}
		return nil
	})
	if err != nil {
		return wrapError(err)
	}

	switch len(found) {
	case 0:
		created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: c.listTitle}).Context(ctx).Do()
		if err != nil {
			return wrapError(err)
		}
		c.listID = created.Id
	case 1:
		c.listID = found[0]
	default:
		return fmt.Errorf("ambiguous list name: %s", c.listTitle)
	}
	return nil
}

// toTask maps a remote item. Items created outside taskpop have no id note
// and use their remote id.
func toTask(item *tasks.Task) service.Task {
	t := service.Task{
		ID:        item.Id,
		Text:      item.Title,
		Completed: item.Status == statusCompleted,
		Priority:  priority.Unset,
	}
	for _, line := range strings.Split(item.Notes, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case noteID:
			if value != "" {
				t.ID = value
			}
		case notePriority:
			if p, err := priority.Parse(value); err == nil {
				t.Priority = p
			}
		}
	}
	return t
}

func fromTask(t service.Task) *tasks.Task {
	status := statusNeedsAction
	if t.Completed {
		status = statusCompleted
	}
	return &tasks.Task{
		Title:  t.Text,
		Status: status,
		Notes:  fmt.Sprintf("%s: %s\n%s: %s", noteID, t.ID, notePriority, t.Priority.String()),
	}
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("token expired or revoked (run: taskpop login): %w", service.ErrAuth)
		case http.StatusNotFound:
			return fmt.Errorf("google tasks: %w", service.ErrNotFound)
		}
	}

	return err
}
