// Package supabase is a minimal client for the hosted data+auth service:
// the PostgREST query surface under /rest/v1 and the GoTrue auth surface
// under /auth/v1. One client is constructed per process lifetime and
// reused for every request.
package supabase

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the process-lifetime handle to the hosted service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client from the two connection secrets. Both are required;
// construction on partial credentials is refused.
func New(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("supabase: url and key are required")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// apiError is the error envelope both service surfaces return.
type apiError struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *apiError) text() string {
	for _, s := range []string{e.Message, e.Msg, e.ErrorDescription, e.ErrorCode} {
		if s != "" {
			return s
		}
	}
	return ""
}

// do executes a request with the service headers attached and returns the
// response body. Non-2xx responses are converted to a single error carrying
// whatever message the service included.
func (c *Client) do(req *http.Request, bearer string) ([]byte, http.Header, error) {
	req.Header.Set("apikey", c.apiKey)
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("supabase: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("supabase: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.text() != "" {
			return nil, nil, fmt.Errorf("supabase: %s (status %d)", apiErr.text(), resp.StatusCode)
		}
		return nil, nil, fmt.Errorf("supabase: unexpected status %d", resp.StatusCode)
	}

	return body, resp.Header, nil
}
