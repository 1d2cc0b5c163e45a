package wordpress

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

	"gracefm/logger"
	"gracefm/model"
)

// Client talks to the upstream CMS REST API. The base URL normally points at
// the same-origin proxy prefix rather than the CMS host directly; the proxy
// is a pass-through and adds no semantics.
//
// Fetchers return errors so callers can see transport failures; HTTP-facing
// callers degrade to empty results per the error policy.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a CMS client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchSermons returns one normalized page of posts. A page shorter than
// perPage is the has-more-pages termination signal for the caller.
// categoryID filters by category when non-zero.
func (c *Client) FetchSermons(ctx context.Context, page, perPage int, categoryID int64) ([]model.Sermon, error) {
	query := url.Values{}
	query.Set("_embed", "")
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	if categoryID != 0 {
		query.Set("categories", strconv.FormatInt(categoryID, 10))
	}

	var posts []RawPost
	if err := c.getJSON(ctx, "/posts", query, &posts); err != nil {
		return nil, fmt.Errorf("fetch sermons page %d: %w", page, err)
	}
	return NormalizeSermons(posts, false), nil
}

// FetchSermonByID returns one normalized post, or nil when the CMS has no
// such post.
func (c *Client) FetchSermonByID(ctx context.Context, id int64) (*model.Sermon, error) {
	query := url.Values{}
	query.Set("_embed", "")

	var post RawPost
	if err := c.getJSON(ctx, fmt.Sprintf("/posts/%d", id), query, &post); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch sermon %d: %w", id, err)
	}
	sermon := NormalizeSermon(post, false)
	return &sermon, nil
}

// FetchSermonsByIDs returns the normalized posts for an id set, decoded for
// display outside rich rendering (bookmark listings).
func (c *Client) FetchSermonsByIDs(ctx context.Context, ids []int64) ([]model.Sermon, error) {
	if len(ids) == 0 {
		return []model.Sermon{}, nil
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	query := url.Values{}
	query.Set("_embed", "")
	query.Set("include", strings.Join(parts, ","))

	var posts []RawPost
	if err := c.getJSON(ctx, "/posts", query, &posts); err != nil {
		return nil, fmt.Errorf("fetch sermons by ids: %w", err)
	}
	return NormalizeSermons(posts, true), nil
}

// SearchSermons runs a full-text search. Titles and excerpts come back
// entity-decoded since search results render as plain text.
func (c *Client) SearchSermons(ctx context.Context, searchTerm string) ([]model.Sermon, error) {
	query := url.Values{}
	query.Set("_embed", "")
	query.Set("search", searchTerm)
	query.Set("per_page", "20")

	var posts []RawPost
	if err := c.getJSON(ctx, "/posts", query, &posts); err != nil {
		return nil, fmt.Errorf("search sermons: %w", err)
	}
	return NormalizeSermons(posts, true), nil
}

// FetchPlaylists returns one normalized page of playlist records.
func (c *Client) FetchPlaylists(ctx context.Context, page, perPage int) ([]model.Playlist, error) {
	query := url.Values{}
	query.Set("_embed", "")
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var raws []RawPlaylist
	if err := c.getJSON(ctx, "/sr_playlist", query, &raws); err != nil {
		return nil, fmt.Errorf("fetch playlists page %d: %w", page, err)
	}
	return NormalizePlaylists(raws), nil
}

// FetchQuotes returns one normalized page of quote records.
func (c *Client) FetchQuotes(ctx context.Context, page, perPage int) ([]model.Quote, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var raws []RawQuote
	if err := c.getJSON(ctx, "/quote", query, &raws); err != nil {
		return nil, fmt.Errorf("fetch quotes page %d: %w", page, err)
	}
	return NormalizeQuotes(raws), nil
}

// statusError marks a non-2xx upstream response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.code)
}

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

// getJSON performs a GET against the CMS and decodes the response body.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, v interface{}) error {
	requestURL := c.BaseURL + endpoint
	if encoded := query.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

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
		logger.Warn("upstream CMS error",
			logger.String("url", requestURL),
			logger.Int("status", resp.StatusCode))
		return &statusError{code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
