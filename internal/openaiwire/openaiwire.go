// Package openaiwire implements the OpenAI-compatible wire codec shared by
// the chat and embeddings pipelines: payload construction from typed
// requests, null stripping, SSE chunk decoding, and error body parsing.
package openaiwire

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/crescendochat/doubao/pkg/types"
)

// ChatPayload converts a chat request into the generic payload map sent on
// the wire. Extra fields merge in without overriding typed fields, and every
// null-valued member is stripped so unset options never reach the provider.
func ChatPayload(req *types.ChatRequest) (map[string]any, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("rebuild payload: %w", err)
	}

	return Prune(payload), nil
}

// EmbeddingPayload converts an embeddings request into the wire payload map.
func EmbeddingPayload(req *types.EmbeddingRequest) (map[string]any, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid embedding request: %w", err)
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("rebuild payload: %w", err)
	}

	return Prune(payload), nil
}

// Prune removes null-valued members from the payload at every depth. The
// map is modified in place and returned for chaining.
func Prune(payload map[string]any) map[string]any {
	for key, value := range payload {
		switch v := value.(type) {
		case nil:
			delete(payload, key)
		case map[string]any:
			payload[key] = Prune(v)
		case []any:
			payload[key] = pruneSlice(v)
		}
	}
	return payload
}

func pruneSlice(values []any) []any {
	pruned := values[:0]
	for _, value := range values {
		switch v := value.(type) {
		case nil:
			continue
		case map[string]any:
			pruned = append(pruned, Prune(v))
		case []any:
			pruned = append(pruned, pruneSlice(v))
		default:
			pruned = append(pruned, v)
		}
	}
	return pruned
}

// DecodeChunk parses a single SSE line into a stream chunk. It returns
// (nil, nil) for empty lines and the [DONE] sentinel so the caller can skip
// non-content events without special cases.
func DecodeChunk(data []byte) (*types.StreamChunk, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte(doneMarker)) {
		return nil, nil
	}

	if bytes.HasPrefix(trimmed, []byte(dataPrefix)) {
		trimmed = bytes.TrimSpace(bytes.TrimPrefix(trimmed, []byte(dataPrefix)))
	}

	if bytes.Equal(trimmed, []byte(doneMarker)) {
		return nil, nil
	}

	var chunk types.StreamChunk
	if err := json.Unmarshal(trimmed, &chunk); err != nil {
		return nil, fmt.Errorf("unmarshal chunk: %w", err)
	}

	return &chunk, nil
}

const (
	dataPrefix = "data:"
	doneMarker = "[DONE]"
)

// IsDone reports whether an SSE line is the stream end sentinel.
func IsDone(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if bytes.HasPrefix(trimmed, []byte(dataPrefix)) {
		trimmed = bytes.TrimSpace(bytes.TrimPrefix(trimmed, []byte(dataPrefix)))
	}
	return bytes.Equal(trimmed, []byte(doneMarker))
}

// ParseEmbeddingResponse decodes the embeddings response body.
func ParseEmbeddingResponse(body []byte) (*types.EmbeddingResponse, error) {
	var resp types.EmbeddingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &resp, nil
}

// ParseChatResponse decodes a non-streaming chat completion body.
func ParseChatResponse(body []byte) (*types.ChatResponse, error) {
	var resp types.ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &resp, nil
}

// ErrorMessage extracts the human-readable message from an OpenAI-style
// error body. Falls back to the raw body text, then to a generic message.
func ErrorMessage(body []byte) string {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return "unknown error"
}
