// Package client implements the Mission Control API client: a thin HTTP
// layer, a connectivity status cell, and the fallback engine that substitutes
// an equivalent local computation when the server cannot be reached.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every API call unless overridden per call. The server
// may be cold-starting, hence the generous default.
const DefaultTimeout = 30 * time.Second

// HealthTimeout is the short bound used for heartbeat pings.
const HealthTimeout = 2 * time.Second

// Client performs one HTTP call against the server API.
type Client struct {
	base     string
	password string
	http     *http.Client
}

// NewClient builds a client for the API at base (e.g. "http://localhost:3000").
// The password, when set, is sent as a bearer token.
func NewClient(base, password string) *Client {
	return &Client{
		base:     strings.TrimRight(base, "/"),
		password: password,
		http:     &http.Client{},
	}
}

type requestOptions struct {
	timeout time.Duration
	body    any
}

// request performs one call and decodes the JSON response into out (when out
// is non-nil). Transport failures come back as *TransportError, non-2xx
// responses as *APIError carrying the server's message.
func (c *Client) request(ctx context.Context, method, path string, opts requestOptions, out any) error {
	timeout := opts.timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if opts.body != nil {
		data, err := json.Marshal(opts.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.password != "" {
		req.Header.Set("Authorization", "Bearer "+c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: apiMessage(resp.Body)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiMessage extracts the error message from a JSON error payload, falling
// back to the raw body.
func apiMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(data))
}
