// Package doubao provides a Go client for the Doubao model family served
// by Volcengine Ark. It speaks the OpenAI-compatible chat and embeddings
// surface of the Ark API, decodes thinking-mode suffixes from model names,
// and answers capability questions from an injectable model catalog.
//
// Basic usage:
//
//	client, err := doubao.New(
//	    doubao.WithAPIKey(os.Getenv("ARK_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stream, err := client.StreamCompletion(ctx, &doubao.ChatRequest{
//	    Model: "doubao-seed-1-6-250615-thinking",
//	    Messages: []doubao.ChatMessage{
//	        doubao.TextMessage("user", "Hello!"),
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//
//	for {
//	    chunk, err := stream.Recv()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(chunk.Choices[0].Delta.Content)
//	}
package doubao

import (
	"context"

	"github.com/crescendochat/doubao/internal/modelid"
	llmerrors "github.com/crescendochat/doubao/pkg/errors"
	"github.com/crescendochat/doubao/pkg/types"
)

// Version is the current version of the adapter.
const Version = "0.4.0"

// ProviderName tags errors and metrics emitted by this adapter.
const ProviderName = "doubao"

// StreamCompleter produces streaming chat completions. Hosts that only
// stream can depend on this instead of the full *Client.
type StreamCompleter interface {
	StreamCompletion(ctx context.Context, req *ChatRequest) (*ChunkStream, error)
}

// Embedder produces embedding vectors. CachedEmbedder wraps any Embedder
// with an in-memory cache.
type Embedder interface {
	Embeddings(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResult, error)
}

// DecodeModelName splits a user-facing model name into the canonical id
// sent on the wire and the thinking mode its suffix encodes. Names without
// a thinking suffix pass through unchanged with ThinkingUnspecified.
func DecodeModelName(name string) (string, ThinkingMode) {
	return modelid.Decode(name)
}

// Re-export core request/response types for convenience.
// Users can write doubao.ChatRequest instead of types.ChatRequest.
type (
	// ChatRequest represents an OpenAI-compatible chat completion request.
	ChatRequest = types.ChatRequest

	// ChatResponse represents a non-streaming chat completion response.
	ChatResponse = types.ChatResponse

	// ChatMessage represents a single message in the conversation.
	ChatMessage = types.ChatMessage

	// ChoiceMessage is the assistant message inside a completion choice.
	ChoiceMessage = types.ChoiceMessage

	// Choice represents a single completion choice.
	Choice = types.Choice

	// StreamChunk represents a single chunk in a streaming response.
	StreamChunk = types.StreamChunk

	// StreamChoice represents a choice in a streaming response.
	StreamChoice = types.StreamChoice

	// StreamDelta contains the incremental content in a stream chunk.
	StreamDelta = types.StreamDelta

	// Tool represents a function that the model can call.
	Tool = types.Tool

	// ToolCall represents a function call made by the model.
	ToolCall = types.ToolCall

	// ToolFunction describes a callable function.
	ToolFunction = types.ToolFunction

	// ToolCallFunction contains the function name and arguments.
	ToolCallFunction = types.ToolCallFunction

	// Usage contains token usage statistics for the request.
	Usage = types.Usage

	// ResponseFormat specifies the output format for the model.
	ResponseFormat = types.ResponseFormat

	// StreamOptions specifies options for streaming responses.
	StreamOptions = types.StreamOptions
)

// Re-export thinking-mode types.
type (
	// ThinkingMode is the tri-state mode decoded from a model name suffix.
	ThinkingMode = types.ThinkingMode

	// Thinking is the wire form of an explicit thinking setting.
	Thinking = types.Thinking
)

// Re-export thinking-mode constants.
const (
	// ThinkingUnspecified leaves the choice to the provider default.
	ThinkingUnspecified = types.ThinkingUnspecified

	// ThinkingEnabled requests reasoning before the answer.
	ThinkingEnabled = types.ThinkingEnabled

	// ThinkingDisabled suppresses reasoning on hybrid models.
	ThinkingDisabled = types.ThinkingDisabled
)

// Re-export embeddings types.
type (
	// EmbeddingRequest represents an embeddings request.
	EmbeddingRequest = types.EmbeddingRequest

	// EmbeddingInput is the request input: one string or an array.
	EmbeddingInput = types.EmbeddingInput

	// EmbeddingResult is the caller-facing outcome of an embeddings call.
	EmbeddingResult = types.EmbeddingResult
)

// Re-export model catalog types.
type (
	// ModelInfo describes capabilities of a registered model.
	ModelInfo = types.ModelInfo

	// ModelKind distinguishes chat models from embedding models.
	ModelKind = types.ModelKind
)

// Re-export model kind constants.
const (
	ModelKindChat      = types.ModelKindChat
	ModelKindEmbedding = types.ModelKindEmbedding
)

// Re-export error types.
type (
	// LLMError represents a standardized error from the adapter.
	LLMError = llmerrors.LLMError

	// ErrorKind tags the error variant.
	ErrorKind = llmerrors.Kind
)

// Re-export error kind constants.
const (
	KindModelNotFound      = llmerrors.KindModelNotFound
	KindAPIRequestFailed   = llmerrors.KindAPIRequestFailed
	KindAuthentication     = llmerrors.KindAuthentication
	KindRateLimit          = llmerrors.KindRateLimit
	KindInvalidRequest     = llmerrors.KindInvalidRequest
	KindNotFound           = llmerrors.KindNotFound
	KindTimeout            = llmerrors.KindTimeout
	KindServiceUnavailable = llmerrors.KindServiceUnavailable
	KindInternal           = llmerrors.KindInternal
)

// Re-export error helpers.
var (
	// AsLLMError extracts an *LLMError from err's chain.
	AsLLMError = llmerrors.AsLLMError

	// IsKind reports whether err carries an *LLMError of the given kind.
	IsKind = llmerrors.IsKind

	// IsRetryable reports whether err is a typed error marked retryable.
	IsRetryable = llmerrors.IsRetryable
)

// Re-export message and input constructors.
var (
	// TextMessage builds a plain-text chat message.
	TextMessage = types.TextMessage

	// NewEmbeddingInputFromString builds a single-text embeddings input.
	NewEmbeddingInputFromString = types.NewEmbeddingInputFromString

	// NewEmbeddingInputFromStrings builds a batch embeddings input.
	NewEmbeddingInputFromStrings = types.NewEmbeddingInputFromStrings
)
