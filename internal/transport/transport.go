// Package transport issues HTTP calls against the Ark API. It owns URL
// normalization, authentication headers, and response size caps; payload
// semantics and error classification stay with the callers.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Ark endpoint used when no base URL is configured.
const DefaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"

const versionSegment = "v3"

// Config carries the connection settings for a single call.
type Config struct {
	APIKey  string
	BaseURL string
}

// ConfigSource yields the current Config. The transport consults it on
// every call, so rotated credentials and endpoint moves take effect without
// rebuilding the client.
type ConfigSource interface {
	Config() (Config, error)
}

// StaticConfig is a ConfigSource with fixed values.
type StaticConfig Config

// Config implements ConfigSource.
func (s StaticConfig) Config() (Config, error) { return Config(s), nil }

// Client performs JSON and SSE requests against the provider endpoint.
type Client struct {
	source     ConfigSource
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The default client
// carries no timeout; streaming responses stay open until the context ends.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimiter gates outbound calls on the given limiter.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header for outbound calls.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a transport client reading connection settings from source.
func New(source ConfigSource, opts ...Option) *Client {
	c := &Client{
		source:     source,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post sends payload as JSON to the endpoint path and returns the raw
// response. Callers own the body and the status handling.
func (c *Client) Post(ctx context.Context, path string, payload any) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, payload, "application/json")
}

// PostStream issues a POST that expects a text/event-stream response.
func (c *Client) PostStream(ctx context.Context, path string, payload any) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, payload, "text/event-stream")
}

// Get issues a GET against the endpoint path.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, payload any, accept string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	// Settings are read per call, never cached across calls.
	cfg, err := c.source.Config()
	if err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is empty")
	}

	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url := ResolveURL(base, path)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Authorization and Content-Type ride on every call, GETs included.
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("provider request",
		"method", method,
		"url", url,
		"request_id", requestID,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// ResolveURL joins the endpoint path to the base URL, appending the v3
// version segment when the base does not already end with it. The segment
// appears exactly once however the base was written.
func ResolveURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	if !strings.HasSuffix(base, "/"+versionSegment) {
		base += "/" + versionSegment
	}
	return base + "/" + strings.TrimLeft(path, "/")
}
