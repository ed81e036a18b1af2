package doubao

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/crescendochat/doubao/internal/metrics"
	"github.com/crescendochat/doubao/internal/openaiwire"
	llmerrors "github.com/crescendochat/doubao/pkg/errors"
	"github.com/crescendochat/doubao/pkg/types"
)

// defaultStreamBuffer is how many decoded chunks the producer may run
// ahead of the consumer.
const defaultStreamBuffer = 16

// maxStreamLineBytes caps a single SSE data line. Reasoning deltas can run
// far past bufio's default token size, so the cap is generous.
const maxStreamLineBytes = 1 << 20

// streamItem carries one decoded chunk or the terminal error from the
// producer to Recv.
type streamItem struct {
	chunk *types.StreamChunk
	err   error
}

// ChunkStream is the consumer side of a streaming completion. A producer
// goroutine reads the SSE response body, decodes chunks lazily, and hands
// them over a bounded channel; Recv pulls them one at a time.
//
// Example:
//
//	stream, err := client.StreamCompletion(ctx, req)
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//
//	for {
//	    chunk, err := stream.Recv()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(chunk.Choices[0].Delta.Content)
//	}
type ChunkStream struct {
	items  chan streamItem
	ctx    context.Context
	cancel context.CancelFunc
	body   io.ReadCloser
	model  string

	mu         sync.Mutex
	closed     bool
	firstChunk bool
	start      time.Time
	ttft       time.Duration
}

// newChunkStream starts the producer goroutine over the response body.
// Cancelling ctx stops the producer; Close stops it by closing the body,
// which also lets go of the underlying connection.
func newChunkStream(ctx context.Context, body io.ReadCloser, model string, buffer int) *ChunkStream {
	if buffer < 1 {
		buffer = defaultStreamBuffer
	}
	sctx, cancel := context.WithCancel(ctx)

	s := &ChunkStream{
		items:      make(chan streamItem, buffer),
		ctx:        sctx,
		cancel:     cancel,
		body:       body,
		model:      model,
		firstChunk: true,
		start:      time.Now(),
	}

	metrics.ActiveStreams.Inc()
	go s.produce(sctx, body)

	return s
}

// produce reads SSE lines until the done marker, the body ends, or the
// context is cancelled. Decoded chunks block on the bounded channel, so a
// slow consumer backpressures the read instead of buffering the response.
func (s *ChunkStream) produce(ctx context.Context, body io.ReadCloser) {
	defer close(s.items)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 4096), maxStreamLineBytes)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if openaiwire.IsDone(line) {
			return
		}

		chunk, err := openaiwire.DecodeChunk(line)
		if err != nil || chunk == nil {
			// Skip unparseable lines (comments, keep-alives).
			continue
		}

		select {
		case s.items <- streamItem{chunk: chunk}:
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		item := streamItem{err: llmerrors.Classify(ProviderName, s.model, err)}
		select {
		case s.items <- item:
		case <-ctx.Done():
		}
	}
}

// Recv returns the next chunk from the stream.
// Returns io.EOF when the stream is complete, the context error when the
// governing context was cancelled, and the classified stream error when
// the connection failed mid-stream.
func (s *ChunkStream) Recv() (*types.StreamChunk, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, io.EOF
	}

	if err := s.ctx.Err(); err != nil {
		s.shutdown()
		return nil, err
	}

	select {
	case item, ok := <-s.items:
		if !ok {
			s.shutdown()
			return nil, io.EOF
		}
		if item.err != nil {
			s.shutdown()
			return nil, item.err
		}
		s.observe(item.chunk)
		return item.chunk, nil
	case <-s.ctx.Done():
		err := s.ctx.Err()
		s.shutdown()
		return nil, err
	}
}

// Close stops the producer and releases the response body along with its
// connection. It's safe to call Close multiple times.
func (s *ChunkStream) Close() error {
	return s.shutdown()
}

// TTFT returns the time between the stream opening and the first chunk.
// Returns 0 if no chunks have been received yet.
func (s *ChunkStream) TTFT() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ttft
}

// observe records per-chunk metrics on the consumer side.
func (s *ChunkStream) observe(chunk *types.StreamChunk) {
	s.mu.Lock()
	if s.firstChunk {
		s.firstChunk = false
		s.ttft = time.Since(s.start)
		metrics.TimeToFirstToken.WithLabelValues(s.model).Observe(s.ttft.Seconds())
	}
	s.mu.Unlock()

	metrics.StreamChunks.WithLabelValues(s.model).Inc()
	if chunk.Usage != nil {
		metrics.ObserveUsage(s.model, chunk.Usage.PromptTokens, chunk.Usage.CompletionTokens)
	}
}

// shutdown cancels the producer once, closes the response body so a blocked
// read releases the connection, and settles the stream gauge.
func (s *ChunkStream) shutdown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	// Cancel before closing the body: the woken producer then sees the
	// context as done and drops the read error instead of classifying it.
	s.cancel()
	err := s.body.Close()
	metrics.ActiveStreams.Dec()
	return err
}
