package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gracefm/model"
)

// Client pushes local state to the sync server and pulls aggregates back.
// Every call returns its error so callers decide the drop policy; the sync
// path is fire-and-forget, so callers log failures and move on without
// retrying.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a sync client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Push upserts the identity's streak, bookmarks and last-visit date. The
// server leaves listening stats untouched.
func (c *Client) Push(ctx context.Context, identity string, payload model.SyncPayload) error {
	return c.postJSON(ctx, c.userURL(identity, "/sync"), payload)
}

// ReportListening appends one listening event to the identity's history.
func (c *Client) ReportListening(ctx context.Context, identity string, payload model.ListenPayload) error {
	return c.postJSON(ctx, c.userURL(identity, "/listen"), payload)
}

// FetchUser returns the identity's aggregate; a never-seen identity comes
// back as the zero-valued default, not an error.
func (c *Client) FetchUser(ctx context.Context, identity string) (*model.UserAggregate, error) {
	var aggregate model.UserAggregate
	if err := c.getJSON(ctx, c.userURL(identity, ""), &aggregate); err != nil {
		return nil, err
	}
	aggregate.Normalize()
	return &aggregate, nil
}

// FetchWrapped returns the identity's derived listening summary.
func (c *Client) FetchWrapped(ctx context.Context, identity string) (*model.WrappedStats, error) {
	var stats model.WrappedStats
	if err := c.getJSON(ctx, c.userURL(identity, "/wrapped"), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) userURL(identity, suffix string) string {
	return c.BaseURL + "/api/user/" + url.PathEscape(identity) + suffix
}

func (c *Client) postJSON(ctx context.Context, requestURL string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sync server returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, requestURL string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sync server returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
