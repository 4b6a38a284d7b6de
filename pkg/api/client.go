// Package api implements the JSON client for the portfolio REST API: CRUD and
// reorder per collection, auth, contact messages, page-view analytics,
// settings, and multipart uploads. The remote API is a black box; this
// package only shapes requests and interprets responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/pkg/authctx"
)

// DefaultBaseURL matches the local development server.
const DefaultBaseURL = "http://localhost:8000/api"

const (
	defaultTimeout = 30 * time.Second
	// uploads of project videos can be large; mirror the generous limit the
	// server applies on its side
	defaultUploadTimeout = 10 * time.Minute
)

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client used for CRUD calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithAuth injects the auth context whose token is attached as a bearer
// credential on every request.
func WithAuth(auth *authctx.Context) Option {
	return func(c *Client) {
		c.auth = auth
	}
}

// WithLogger sets the structured logger. The default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithUploadTimeout overrides the extended timeout applied to file uploads.
func WithUploadTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.uploadTimeout = timeout
		}
	}
}

// WithUnauthorizedHook registers a callback invoked after a 401 response has
// evicted the stored token. UIs use it to return to the login view.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// Client talks to the portfolio REST API.
type Client struct {
	baseURL        string
	http           *http.Client
	auth           *authctx.Context
	log            *zap.Logger
	uploadTimeout  time.Duration
	onUnauthorized func()
}

// New constructs a client for baseURL, applying any options. An empty
// baseURL falls back to DefaultBaseURL.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:          &http.Client{Timeout: defaultTimeout},
		log:           zap.NewNop(),
		uploadTimeout: defaultUploadTimeout,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// BaseURL reports the resolved API root.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) token() string {
	if c.auth == nil {
		return ""
	}
	return c.auth.Token()
}

func (c *Client) evictToken() {
	if c.auth != nil {
		if err := c.auth.Clear(); err != nil {
			c.log.Warn("evict token", zap.Error(err))
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// do issues one JSON round-trip. A nil body sends no payload; a non-nil out
// receives the decoded response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if ctx == nil {
		return errors.New("api: context is required")
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
	)

	return c.decodeResponse(method, path, res, out)
}

func (c *Client) authorize(req *http.Request) {
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) decodeResponse(method, path string, res *http.Response, out any) error {
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("api: %s %s: read response: %w", method, path, err)
	}

	if res.StatusCode == http.StatusUnauthorized {
		c.evictToken()
		return fmt.Errorf("api: %s %s: %w", method, path, ErrUnauthorized)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return parseErrorBody(res.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: %s %s: decode response: %w", method, path, err)
	}
	return nil
}
