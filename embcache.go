package doubao

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/goccy/go-json"
	gocache "github.com/patrickmn/go-cache"

	"github.com/crescendochat/doubao/pkg/types"
)

// defaultEmbeddingTTL bounds how long cached vectors stay valid.
const defaultEmbeddingTTL = time.Hour

// CachedEmbedder wraps an Embedder with an in-memory TTL cache. Embedding
// calls are deterministic for a given model and input, so repeated lookups
// of the same text skip the provider round trip.
type CachedEmbedder struct {
	inner Embedder
	cache *gocache.Cache
}

var _ Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder wraps inner with a cache holding results for ttl.
// A non-positive ttl selects the one hour default.
//
// Example:
//
//	embedder := doubao.NewCachedEmbedder(client, 15*time.Minute)
//	result, err := embedder.Embeddings(ctx, req)
func NewCachedEmbedder(inner Embedder, ttl time.Duration) *CachedEmbedder {
	if ttl <= 0 {
		ttl = defaultEmbeddingTTL
	}
	return &CachedEmbedder{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Embeddings returns the cached result when the same request was seen
// before, calling through otherwise. Errors are never cached.
func (e *CachedEmbedder) Embeddings(ctx context.Context, req *types.EmbeddingRequest) (*types.EmbeddingResult, error) {
	key, ok := embeddingKey(req)
	if !ok {
		return e.inner.Embeddings(ctx, req)
	}

	if hit, found := e.cache.Get(key); found {
		if result, ok := hit.(*types.EmbeddingResult); ok {
			return result, nil
		}
	}

	result, err := e.inner.Embeddings(ctx, req)
	if err != nil {
		return nil, err
	}
	e.cache.Set(key, result, gocache.DefaultExpiration)
	return result, nil
}

// embeddingKey derives a stable cache key from the request wire form.
// Requests that cannot marshal are handed to the inner embedder untouched,
// so its validation reports the failure.
func embeddingKey(req *types.EmbeddingRequest) (string, bool) {
	if req == nil {
		return "", false
	}
	raw, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(raw)
	return "embeddings:" + hex.EncodeToString(sum[:]), true
}
