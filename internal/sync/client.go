// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Doer is the subset of http.Client the fetcher needs. Tests substitute
// a stub transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Paths of the kiosk documents on the content server.
const (
	PathConfig      = "/api/kiosk/config"
	PathSlides      = "/api/kiosk/slides"
	PathServices    = "/api/kiosk/services"
	PathRunningText = "/api/kiosk/running-text"
	PathTrack       = "/api/kiosk/analytics/track"
)

// maxDocumentBytes bounds document bodies read from the server.
const maxDocumentBytes = 4 << 20

// ErrServerStatus wraps non-2xx responses from the content server.
var ErrServerStatus = errors.New("sync: unexpected server status")

// Client fetches kiosk documents over HTTP.
type Client struct {
	baseURL string
	doer    Doer
	timeout time.Duration
}

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL is the content server root, e.g. http://127.0.0.1:8311.
	BaseURL string

	// Timeout bounds each request. Defaults to 10 seconds.
	Timeout time.Duration

	// Doer overrides the HTTP client. Defaults to http.DefaultClient
	// with Timeout applied per request.
	Doer Doer
}

// NewClient creates a document fetcher for the given server.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("sync: base URL must not be empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	doer := cfg.Doer
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		doer:    doer,
		timeout: cfg.Timeout,
	}, nil
}

// FetchRaw retrieves the document at path and returns its raw JSON body.
func (c *Client) FetchRaw(ctx context.Context, path string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("sync: build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sync: fetch %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDocumentBytes))
		return nil, fmt.Errorf("%w: %s returned %d", ErrServerStatus, path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("sync: read %s: %w", path, err)
	}

	// Reject bodies that are not valid JSON before they reach the cache.
	if !json.Valid(body) {
		return nil, fmt.Errorf("sync: %s returned invalid JSON", path)
	}

	return body, nil
}

// Ping probes the server's liveness endpoint.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz/live", nil)
	if err != nil {
		return fmt.Errorf("sync: build ping: %w", err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("sync: ping: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ping returned %d", ErrServerStatus, resp.StatusCode)
	}
	return nil
}

// PostEvent submits an analytics event to the content server.
// timestamp is the client clock in unix milliseconds at the time the
// event happened.
func (c *Client) PostEvent(ctx context.Context, event string, data map[string]any, timestamp int64) error {
	payload, err := json.Marshal(map[string]any{
		"event":     event,
		"data":      data,
		"timestamp": timestamp,
	})
	if err != nil {
		return fmt.Errorf("sync: encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathTrack, strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("sync: build track request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("sync: post event: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: track returned %d", ErrServerStatus, resp.StatusCode)
	}
	return nil
}
