package doubao

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/crescendochat/doubao/catalog"
	"github.com/crescendochat/doubao/internal/transport"
)

// DefaultBaseURL is the Ark endpoint used when no base URL is configured.
const DefaultBaseURL = transport.DefaultBaseURL

// Config carries the connection settings for the Ark endpoint.
type Config struct {
	// APIKey is sent as a Bearer token on every call.
	APIKey string

	// BaseURL is the endpoint base. Empty selects DefaultBaseURL. The v3
	// version segment is appended when missing and never duplicated.
	BaseURL string
}

// ConfigSource yields the connection settings for each call. The client
// consults it before every request, so rotated credentials and endpoint
// moves take effect without rebuilding the client.
type ConfigSource interface {
	Config() (Config, error)
}

// StaticConfig is a ConfigSource with fixed values.
type StaticConfig Config

// Config implements ConfigSource.
func (s StaticConfig) Config() (Config, error) { return Config(s), nil }

// sourceAdapter bridges the public ConfigSource to the transport layer.
type sourceAdapter struct {
	source ConfigSource
}

func (a sourceAdapter) Config() (transport.Config, error) {
	cfg, err := a.source.Config()
	if err != nil {
		return transport.Config{}, err
	}
	return transport.Config(cfg), nil
}

// ClientConfig holds all configuration for the doubao client.
type ClientConfig struct {
	// Connection settings. Source overrides APIKey and BaseURL when set.
	APIKey  string
	BaseURL string
	Source  ConfigSource

	// HTTP
	HTTPClient *http.Client
	UserAgent  string

	// Outbound rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Model capability table
	Catalog catalog.Source

	// Streaming
	StreamBuffer int

	// Logging
	Logger *slog.Logger

	// Tracing
	TracerProvider trace.TracerProvider
}

// Option is a function that configures the Client.
type Option func(*ClientConfig)

// defaultConfig returns sensible defaults.
func defaultConfig() *ClientConfig {
	return &ClientConfig{
		StreamBuffer: defaultStreamBuffer,
		Logger:       slog.Default(),
	}
}

// WithAPIKey sets a fixed API key.
// Use WithConfigSource when credentials rotate at runtime.
func WithAPIKey(key string) Option {
	return func(c *ClientConfig) {
		c.APIKey = key
	}
}

// WithBaseURL sets a fixed endpoint base URL.
// The v3 version segment is appended when the URL does not already end
// with it, so "https://host", "https://host/" and "https://host/v3" all
// address the same endpoint.
func WithBaseURL(url string) Option {
	return func(c *ClientConfig) {
		c.BaseURL = url
	}
}

// WithConfigSource reads connection settings from source before every call.
// This overrides WithAPIKey and WithBaseURL.
//
// Example:
//
//	source := myvault.NewArkCredentials()
//	client, err := doubao.New(doubao.WithConfigSource(source))
func WithConfigSource(source ConfigSource) Option {
	return func(c *ClientConfig) {
		c.Source = source
	}
}

// WithHTTPClient replaces the underlying HTTP client. The default client
// carries no timeout so streams can stay open; bound individual calls
// through their context instead.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *ClientConfig) {
		c.HTTPClient = hc
	}
}

// WithUserAgent sets the User-Agent header for outbound calls.
func WithUserAgent(ua string) Option {
	return func(c *ClientConfig) {
		c.UserAgent = ua
	}
}

// WithRateLimit caps the outbound request rate across all calls of the
// client. rps is the sustained requests per second, burst the extra calls
// allowed to pass at once. A burst below 1 is raised to 1.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *ClientConfig) {
		c.RateLimitRPS = rps
		c.RateLimitBurst = burst
	}
}

// WithCatalog replaces the embedded model capability table. Pass a
// *catalog.Catalog for a fixed table or a *catalog.Manager to follow a
// table file on disk.
//
// Example:
//
//	mgr, err := catalog.NewManager("models.yaml", logger)
//	if err != nil {
//	    return err
//	}
//	client, err := doubao.New(
//	    doubao.WithAPIKey(key),
//	    doubao.WithCatalog(mgr),
//	)
func WithCatalog(source catalog.Source) Option {
	return func(c *ClientConfig) {
		c.Catalog = source
	}
}

// WithStreamBuffer sets how many decoded chunks the stream producer may
// run ahead of Recv. Values below 1 select the default.
func WithStreamBuffer(n int) Option {
	return func(c *ClientConfig) {
		c.StreamBuffer = n
	}
}

// WithLogger sets the logger for the client.
// The logger is used for debug, info, and error messages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *ClientConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithTracerProvider sets the provider used to create the client tracer.
// Defaults to the global OpenTelemetry provider, which is a no-op unless
// the host installs an SDK.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *ClientConfig) {
		c.TracerProvider = tp
	}
}
