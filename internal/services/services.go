package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// Paginated is the backend's envelope for paginated listings.
type Paginated[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// PageOf converts the envelope's counters into pagination math.
func (p Paginated[T]) PageOf() shared.Page {
	return shared.Page{Number: p.Page, Size: p.PageSize, Total: p.Total}
}

// Client is the typed Blossom API client.
//
// One Client serves all backend areas; the bearer credential is attached per request.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client for the given base URL and bearer token.
// A nil httpClient gets a 30 second timeout default.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
	}
}

// SetToken replaces the bearer credential used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer credential.
func (c *Client) Token() string {
	return c.token
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ProgressStreamURL builds the progress stream endpoint with the query-string token
// the stream transport authenticates with.
func (c *Client) ProgressStreamURL(path string) string {
	if path == "" {
		path = "/api/analysis/trending/progress"
	}
	return fmt.Sprintf("%s%s?token=%s", c.baseURL, path, url.QueryEscape(c.token))
}

// apiError is the backend's error envelope; the optional error string is surfaced verbatim.
type apiError struct {
	Error string `json:"error"`
}

// doRequest performs an authenticated JSON request against the backend.
//
// Non-2xx responses map onto sentinel errors: 401/403 to ErrNotAuthenticated, 404 to
// ErrNotFound, everything else to ErrAPIRequest carrying the backend's error string.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	apiURL := c.baseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: status %d", shared.ErrNotAuthenticated, resp.StatusCode)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", shared.ErrNotFound, endpoint)
		}

		if apiErr.Error != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
