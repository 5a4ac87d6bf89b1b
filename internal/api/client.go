// Package api provides the typed HTTP client for the Alexis Autos backend.
// One method per endpoint; the reactive store owns all local state and calls
// through here for anything that touches the network.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TokenSource yields the current bearer token, or "" when anonymous. The
// session layer owns the token; the client never caches it.
type TokenSource func() string

// Client is an HTTP client for the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a new API client rooted at baseURL (".../api", no
// trailing slash). tokens may be nil for a client that only makes public
// calls.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
	}
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

// IsUnreachable reports whether err means no response was received at all
// (DNS, refused connection, timeout), as opposed to an HTTP error status.
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	return !errors.As(err, &apiErr)
}

// IsServerError reports a 5xx response.
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}

// IsAuthError reports a 401 or 403 response.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

func (c *Client) get(ctx context.Context, path string, auth bool, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, auth, result)
}

func (c *Client) post(ctx context.Context, path string, auth bool, body, result any) error {
	return c.send(ctx, http.MethodPost, path, auth, body, result)
}

func (c *Client) put(ctx context.Context, path string, auth bool, body, result any) error {
	return c.send(ctx, http.MethodPut, path, auth, body, result)
}

func (c *Client) send(ctx context.Context, method, path string, auth bool, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, auth, result)
}

func (c *Client) delete(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, true, result)
}

func (c *Client) do(req *http.Request, auth bool, result any) error {
	// Sent on every request so tunneling proxies (ngrok, localtunnel) skip
	// their interstitial page.
	req.Header.Set("ngrok-skip-browser-warning", "true")
	req.Header.Set("Bypass-Tunnel-Reminder", "true")

	if auth && c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
