package types

import "fmt"

const MaxModelNameLength = 256

// ValidateModelName checks that a model name is within acceptable bounds.
func ValidateModelName(model string) error {
	if len(model) > MaxModelNameLength {
		return fmt.Errorf("model is too long (max %d characters)", MaxModelNameLength)
	}
	return nil
}

// ModelKind distinguishes chat models from embedding models.
type ModelKind string

const (
	ModelKindChat      ModelKind = "chat"
	ModelKindEmbedding ModelKind = "embedding"
)

// ModelInfo describes a registered model and its capabilities. Values are
// built at catalog refresh time and never mutated afterwards; MaxTokens of
// zero means the context window is unknown.
type ModelInfo struct {
	Name               string    `json:"name"`
	Kind               ModelKind `json:"kind"`
	MaxTokens          int       `json:"max_tokens,omitempty"`
	SupportsToolCalls  bool      `json:"supports_tool_calls"`
	SupportsImageInput bool      `json:"supports_image_input"`
}
