// Package gitlab fetches a user's activity (pushes, merge request
// approvals, project languages) from the GitLab REST API.
//
// The client fails fast: every request carries a bounded timeout, because
// the engine consuming these events has no cancellation mechanism of its
// own.
package gitlab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"committed/internal/domain/model"
)

const (
	defaultBaseURL = "https://gitlab.com"
	apiPrefix      = "/api/v4"

	// nextPageHeader is GitLab's pagination cursor.
	nextPageHeader = "X-Next-Page"

	// maxLanguageProjects caps per-project language requests; the
	// languages endpoint costs one call per project.
	maxLanguageProjects = 10

	projectsPerPage = 100

	defaultTimeout = 10 * time.Second
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client, e.g. for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpc = httpClient
		}
	}
}

// Client talks to a single GitLab instance on behalf of one user. The
// personal access token is sent in the PRIVATE-TOKEN header and must be
// treated as a secret by callers.
type Client struct {
	baseURL  string
	token    string
	username string
	httpc    *http.Client
}

// New builds a client. An empty token or username is a configuration
// error and is rejected immediately.
func New(baseURL, token, username string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	if strings.TrimSpace(username) == "" {
		return nil, ErrMissingUsername
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		username: username,
		httpc:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// userEvent mirrors the fields of /users/:id/events this client consumes.
type userEvent struct {
	ActionName  string `json:"action_name"`
	CreatedAt   string `json:"created_at"`
	ProjectID   int    `json:"project_id"`
	TargetTitle string `json:"target_title"`
	PushData    struct {
		CommitCount int    `json:"commit_count"`
		Ref         string `json:"ref"`
	} `json:"push_data"`
}

// UserID resolves the configured username to a numeric user id.
func (c *Client) UserID(ctx context.Context) (int, error) {
	var users []struct {
		ID int `json:"id"`
	}
	params := url.Values{"username": {c.username}}
	if err := c.getJSON(ctx, "/users", params, &users, nil); err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, ErrUserNotFound
	}
	return users[0].ID, nil
}

// RecentCommits returns the user's push events since the given ISO-8601
// watermark (all of them when since is empty), walking every page of the
// events feed.
func (c *Client) RecentCommits(ctx context.Context, since string) ([]model.CommitEvent, error) {
	events, err := c.userEvents(ctx, "pushed", since)
	if err != nil {
		return nil, err
	}

	commits := make([]model.CommitEvent, 0, len(events))
	for _, ev := range events {
		if ev.ActionName != "pushed to" {
			continue
		}
		count := ev.PushData.CommitCount
		if count < 1 {
			count = 1
		}
		commits = append(commits, model.CommitEvent{
			CommitCount: count,
			CreatedAt:   ev.CreatedAt,
			ProjectID:   ev.ProjectID,
			Ref:         ev.PushData.Ref,
		})
	}
	return commits, nil
}

// ApprovedMergeRequests returns the user's approval events since the
// given watermark.
func (c *Client) ApprovedMergeRequests(ctx context.Context, since string) ([]model.ApprovalEvent, error) {
	events, err := c.userEvents(ctx, "approved", since)
	if err != nil {
		return nil, err
	}

	approvals := make([]model.ApprovalEvent, 0, len(events))
	for _, ev := range events {
		if !strings.Contains(strings.ToLower(ev.ActionName), "approved") {
			continue
		}
		approvals = append(approvals, model.ApprovalEvent{
			TargetTitle: ev.TargetTitle,
			CreatedAt:   ev.CreatedAt,
			ProjectID:   ev.ProjectID,
		})
	}
	return approvals, nil
}

// LanguageStats aggregates language usage across the user's most recent
// projects. Per-project failures are skipped rather than failing the
// whole aggregation.
func (c *Client) LanguageStats(ctx context.Context) (model.LanguageStats, error) {
	userID, err := c.UserID(ctx)
	if err != nil {
		return nil, err
	}

	var projects []struct {
		ID int `json:"id"`
	}
	params := url.Values{"per_page": {strconv.Itoa(projectsPerPage)}}
	path := fmt.Sprintf("/users/%d/projects", userID)
	if err := c.getJSON(ctx, path, params, &projects, nil); err != nil {
		return nil, err
	}

	if len(projects) > maxLanguageProjects {
		projects = projects[:maxLanguageProjects]
	}

	stats := make(model.LanguageStats)
	for _, project := range projects {
		var languages map[string]float64
		langPath := fmt.Sprintf("/projects/%d/languages", project.ID)
		if err := c.getJSON(ctx, langPath, nil, &languages, nil); err != nil {
			continue
		}
		for lang, pct := range languages {
			stats[lang] += pct
		}
	}
	return stats, nil
}

// userEvents pages through /users/:id/events for one action kind.
func (c *Client) userEvents(ctx context.Context, action, since string) ([]userEvent, error) {
	userID, err := c.UserID(ctx)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	path := fmt.Sprintf("/users/%d/events", userID)
	var events []userEvent

	page := 1
	for {
		params := url.Values{
			"action": {action},
			"page":   {strconv.Itoa(page)},
		}
		if since != "" {
			params.Set("after", since)
		}

		var pageEvents []userEvent
		var header http.Header
		if err := c.getJSON(ctx, path, params, &pageEvents, &header); err != nil {
			return nil, err
		}
		if len(pageEvents) == 0 {
			break
		}
		events = append(events, pageEvents...)

		next := header.Get(nextPageHeader)
		if next == "" {
			break
		}
		nextPage, err := strconv.Atoi(next)
		if err != nil {
			page++
			continue
		}
		page = nextPage
	}
	return events, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
// When header is non-nil it receives the response headers.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any, header *http.Header) error {
	endpoint := c.baseURL + apiPrefix + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("PRIVATE-TOKEN", c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("gitlab request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gitlab request %s: unexpected status %d", path, resp.StatusCode)
	}

	if header != nil {
		*header = resp.Header
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gitlab response: %w", err)
	}
	return nil
}
