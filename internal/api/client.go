// ABOUTME: HTTP client for the catalog backend API
// ABOUTME: Attaches the bearer token and clears the session on 401 responses

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"catalogctl/internal/session"
)

// SessionStore is the session surface the client depends on.
// Token feeds the Authorization header; Clear is the 401 side effect;
// SaveLogin persists a session after a successful login.
type SessionStore interface {
	Token() string
	Clear() error
	Login(session.Session) error
}

// Client is the API client for the catalog backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionStore
}

// New creates a new API client with the given base URL and session store
func New(baseURL string, sessions SessionStore) *Client {
	return &Client{
		baseURL:  baseURL,
		sessions: sessions,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do is the single dispatch helper for all API requests. It attaches the
// bearer token when a session token exists, translates transport failures
// and non-2xx statuses into *Error, and returns the raw response body.
//
// On a 401 the persisted session is cleared before the error is returned.
// That is the only side effect this layer performs; it never navigates.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.sessions.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(c.baseURL, ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Credentials are invalid or expired. Clearing here lets the
		// guard observe the anonymous state on the next render.
		_ = c.sessions.Clear()
		return nil, errorFromResponse(resp)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

// get issues a GET and decodes the JSON response into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// pageQuery builds the page/size query parameters
func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("size", fmt.Sprintf("%d", size))
	return q
}
