package doubao

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/crescendochat/doubao/catalog"
	"github.com/crescendochat/doubao/internal/metrics"
	"github.com/crescendochat/doubao/internal/modelid"
	"github.com/crescendochat/doubao/internal/openaiwire"
	"github.com/crescendochat/doubao/internal/transport"
	llmerrors "github.com/crescendochat/doubao/pkg/errors"
	"github.com/crescendochat/doubao/pkg/types"
)

// tracerName identifies the client tracer.
const tracerName = "github.com/crescendochat/doubao"

// Metric label values for the adapter operations.
const (
	opChat       = "chat"
	opChatStream = "chat_stream"
	opEmbeddings = "embeddings"

	statusOK    = "ok"
	statusError = "error"
)

// Client is the entry point of the adapter. It decodes thinking-mode
// suffixes, builds OpenAI-compatible payloads, and executes chat and
// embeddings calls against the Ark endpoint.
//
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	transport    *transport.Client
	catalog      catalog.Source
	logger       *slog.Logger
	tracer       trace.Tracer
	streamBuffer int
}

// Compile-time capability checks.
var (
	_ StreamCompleter = (*Client)(nil)
	_ Embedder        = (*Client)(nil)
)

// New creates a doubao client with the given options.
//
// Example:
//
//	client, err := doubao.New(
//	    doubao.WithAPIKey(os.Getenv("ARK_API_KEY")),
//	    doubao.WithRateLimit(10, 20),
//	)
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	source := cfg.Source
	if source == nil {
		source = StaticConfig{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL}
	}

	transportOpts := []transport.Option{
		transport.WithLogger(cfg.Logger),
	}
	if cfg.HTTPClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.UserAgent != "" {
		transportOpts = append(transportOpts, transport.WithUserAgent(cfg.UserAgent))
	}
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
		transportOpts = append(transportOpts, transport.WithRateLimiter(limiter))
	}

	table := cfg.Catalog
	if table == nil {
		table = catalog.Default()
	}

	tracer := otel.Tracer(tracerName)
	if cfg.TracerProvider != nil {
		tracer = cfg.TracerProvider.Tracer(tracerName)
	}

	c := &Client{
		transport:    transport.New(sourceAdapter{source}, transportOpts...),
		catalog:      table,
		logger:       cfg.Logger,
		tracer:       tracer,
		streamBuffer: cfg.StreamBuffer,
	}

	c.logger.Debug("doubao client initialized",
		"models", c.catalog.Catalog().Len(),
	)

	return c, nil
}

// StreamCompletion sends a streaming chat completion request and returns a
// ChunkStream for consuming the response incrementally.
//
// The model name may carry a thinking suffix: "-thinking" enables thinking
// mode, "-non-thinking" disables it. The suffix is stripped before the call
// and the decoded mode is written into the payload.
func (c *Client) StreamCompletion(ctx context.Context, req *types.ChatRequest) (_ *ChunkStream, err error) {
	if req == nil {
		return nil, fmt.Errorf("request is nil")
	}
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("messages is required")
	}

	model, mode := modelid.Decode(req.Model)

	ctx, span := c.tracer.Start(ctx, "doubao.StreamCompletion",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.model", model),
			attribute.String("llm.thinking", mode.String()),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() { recordCall(opChatStream, model, start, err) }()

	payload, err := c.chatPayload(req, model, mode, true)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	resp, err := c.transport.PostStream(ctx, "chat/completions", payload)
	if err != nil {
		err = llmerrors.Classify(ProviderName, model, err)
		span.RecordError(err)
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err = c.apiError(resp, model)
		span.RecordError(err)
		return nil, err
	}

	c.logger.Debug("stream opened", "model", model, "thinking", mode.String())

	return newChunkStream(ctx, resp.Body, model, c.streamBuffer), nil
}

// ChatCompletion sends a non-streaming chat completion request. Thinking
// suffixes on the model name are decoded the same way as in StreamCompletion.
func (c *Client) ChatCompletion(ctx context.Context, req *types.ChatRequest) (_ *types.ChatResponse, err error) {
	if req == nil {
		return nil, fmt.Errorf("request is nil")
	}
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("messages is required")
	}

	model, mode := modelid.Decode(req.Model)

	ctx, span := c.tracer.Start(ctx, "doubao.ChatCompletion",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.model", model),
			attribute.String("llm.thinking", mode.String()),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() { recordCall(opChat, model, start, err) }()

	payload, err := c.chatPayload(req, model, mode, false)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	resp, err := c.transport.Post(ctx, "chat/completions", payload)
	if err != nil {
		err = llmerrors.Classify(ProviderName, model, err)
		span.RecordError(err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		err = c.apiError(resp, model)
		span.RecordError(err)
		return nil, err
	}

	body, err := transport.ReadLimitedBody(resp.Body, transport.DefaultMaxResponseBodyBytes)
	if err != nil {
		err = llmerrors.Classify(ProviderName, model, err)
		span.RecordError(err)
		return nil, err
	}

	out, err := openaiwire.ParseChatResponse(body)
	if err != nil {
		err = llmerrors.Classify(ProviderName, model, err)
		span.RecordError(err)
		return nil, err
	}

	if out.Usage != nil {
		metrics.ObserveUsage(model, out.Usage.PromptTokens, out.Usage.CompletionTokens)
	}

	return out, nil
}

// Models lists every model registered in the capability table, in stable
// name order.
func (c *Client) Models() []types.ModelInfo {
	return c.catalog.Catalog().Models()
}

// ModelInfo resolves capability information for a model name. Thinking
// suffixes are decoded first, so "doubao-seed-1-6-250615-thinking" resolves
// to its canonical table entry. Unknown models fail with a typed
// model_not_found error.
func (c *Client) ModelInfo(name string) (types.ModelInfo, error) {
	model, _ := modelid.Decode(name)
	return c.catalog.Catalog().Lookup(model)
}

// RefreshModels reloads the capability table when the configured catalog
// source supports it. Static catalogs are already current, so the call is
// a no-op.
func (c *Client) RefreshModels() error {
	reloader, ok := c.catalog.(interface{ Reload() error })
	if !ok {
		return nil
	}
	return reloader.Reload()
}

// chatPayload builds the wire payload for a chat call. The decoded thinking
// mode is applied after the Extra merge, so it wins over a raw "thinking"
// extra field.
func (c *Client) chatPayload(req *types.ChatRequest, model string, mode types.ThinkingMode, stream bool) (map[string]any, error) {
	wire := *req
	wire.Model = model
	wire.Stream = stream

	payload, err := openaiwire.ChatPayload(&wire)
	if err != nil {
		return nil, fmt.Errorf("build payload: %w", err)
	}
	if cfg := mode.Config(); cfg != nil {
		payload["thinking"] = cfg
	}
	return payload, nil
}

// apiError turns a non-2xx response into the matching typed error. The
// body is drained so the connection can be reused.
func (c *Client) apiError(resp *http.Response, model string) error {
	body := transport.ReadErrorBody(resp)
	message := openaiwire.ErrorMessage(body)
	return llmerrors.FromStatusCode(ProviderName, model, resp.StatusCode, message)
}

// recordCall updates the request counters after a call finishes. Duration
// is only observed for successful calls; for streams it covers the time to
// response headers.
func recordCall(operation, model string, start time.Time, err error) {
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(operation, model, statusError).Inc()
		return
	}
	metrics.RequestsTotal.WithLabelValues(operation, model, statusOK).Inc()
	metrics.RequestDuration.WithLabelValues(operation, model).Observe(time.Since(start).Seconds())
}
