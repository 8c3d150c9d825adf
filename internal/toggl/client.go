package toggl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Tiliavir/togglpie/internal/model"
)

const timeEntriesPath = "/api/v9/me/time_entries"

// Source yields the time entries tracked in [since, until].
type Source interface {
	ListTimeEntries(ctx context.Context, since, until time.Time) ([]model.TimeEntry, error)
}

// Client is a Toggl Track API client authenticated with a personal API token.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL, apiToken string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ListTimeEntries fetches the entries in [since, until] with a single request.
// The API returns the whole range in one payload; there is no paging.
func (c *Client) ListTimeEntries(ctx context.Context, since, until time.Time) ([]model.TimeEntry, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	u.Path = timeEntriesPath
	q := u.Query()
	q.Set("start_date", since.Format(time.RFC3339))
	q.Set("end_date", until.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.apiToken, "api_token")
	req.Header.Set("Accept", "application/json")

	c.log.Debug("fetching time entries", slog.String("url", u.String()))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("toggl API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if len(body) > 4096 {
			body = body[:4096]
		}
		return nil, fmt.Errorf("toggl API error %d: %s", resp.StatusCode, string(body))
	}

	var entries []model.TimeEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decoding toggl response: %w", err)
	}
	c.log.Debug("fetched time entries", slog.Int("count", len(entries)))
	for _, e := range entries {
		c.log.Debug("time entry",
			slog.Int64("id", e.ID),
			slog.Time("start", e.Start),
			slog.Int64("duration", e.Duration),
		)
	}
	return entries, nil
}
