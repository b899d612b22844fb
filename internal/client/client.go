// Package client talks to the pizza backend REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Config holds what a Client needs to reach the backend
type Config struct {
	// BaseURL is the backend address, e.g. http://localhost:9002
	BaseURL string
	// HTTPClient is used for every request. Defaults to a client without timeout.
	HTTPClient *http.Client
	// UserAgent is sent with every request when set
	UserAgent string
}

// Client performs JSON requests against the backend
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

// RequestOption customizes an outgoing request
type RequestOption func(*http.Request)

// WithHeader sets a request header, overriding the JSON default for that key
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// New creates a Client for the configured backend
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("client: base URL is required")
	}
	parsed, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("client: invalid base URL %q", cfg.BaseURL)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      httpClient,
		userAgent: cfg.UserAgent,
	}, nil
}

// BaseURL returns the backend address this client targets
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends body as JSON to path and decodes the response into out.
// A nil body sends no payload, a nil out discards the response.
// An empty or 204 response leaves out untouched.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(req)
	}
	return c.send(req, path, out)
}

// send executes req and applies the shared response policy
func (c *Client) send(req *http.Request, path string, out any) error {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s %s response: %w", ErrTransport, req.Method, path, err)
	}

	log.WithFields(log.Fields{
		"method":   req.Method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("Backend request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Method: req.Method, Path: path, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 || out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Method: req.Method, Path: path, Body: string(raw), Err: err}
	}
	return nil
}
