package doubao

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/crescendochat/doubao/internal/metrics"
	"github.com/crescendochat/doubao/internal/openaiwire"
	"github.com/crescendochat/doubao/internal/transport"
	llmerrors "github.com/crescendochat/doubao/pkg/errors"
	"github.com/crescendochat/doubao/pkg/types"
)

// Embeddings computes embedding vectors for the request input. A single
// string input yields one vector; an array input yields one vector per
// element in input order, whatever order the provider returned them in.
func (c *Client) Embeddings(ctx context.Context, req *types.EmbeddingRequest) (_ *types.EmbeddingResult, err error) {
	if req == nil {
		return nil, fmt.Errorf("request is nil")
	}
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	ctx, span := c.tracer.Start(ctx, "doubao.Embeddings",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("llm.model", req.Model)),
	)
	defer span.End()

	start := time.Now()
	defer func() { recordCall(opEmbeddings, req.Model, start, err) }()

	payload, err := openaiwire.EmbeddingPayload(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	resp, err := c.transport.Post(ctx, "embeddings", payload)
	if err != nil {
		err = llmerrors.Classify(ProviderName, req.Model, err)
		span.RecordError(err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		err = c.apiError(resp, req.Model)
		span.RecordError(err)
		return nil, err
	}

	body, err := transport.ReadLimitedBody(resp.Body, transport.DefaultMaxResponseBodyBytes)
	if err != nil {
		err = llmerrors.Classify(ProviderName, req.Model, err)
		span.RecordError(err)
		return nil, err
	}

	parsed, err := openaiwire.ParseEmbeddingResponse(body)
	if err != nil {
		err = llmerrors.Classify(ProviderName, req.Model, err)
		span.RecordError(err)
		return nil, err
	}

	// Providers may answer batch items out of order; the index field is
	// authoritative.
	sort.SliceStable(parsed.Data, func(i, j int) bool {
		return parsed.Data[i].Index < parsed.Data[j].Index
	})

	vectors := make([][]float64, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		vectors = append(vectors, item.Embedding)
	}

	usage := parsed.Usage
	metrics.ObserveUsage(req.Model, usage.PromptTokens, usage.CompletionTokens)

	return &types.EmbeddingResult{
		Model:   parsed.Model,
		Vectors: vectors,
		Usage:   &usage,
	}, nil
}
