package types

import (
	"fmt"

	"github.com/goccy/go-json"
)

// EmbeddingInput is the input of an embedding request: a single string or an
// array of strings. Custom JSON marshaling picks the wire form automatically,
// so callers never deal with the string-vs-array distinction.
type EmbeddingInput struct {
	// Text is a single string input.
	Text *string `json:"-"`
	// Texts is an array of string inputs.
	Texts []string `json:"-"`
}

// UnmarshalJSON infers the input form: string first, then []string.
func (e *EmbeddingInput) UnmarshalJSON(data []byte) error {
	e.Text = nil
	e.Texts = nil

	if string(data) == "null" {
		return fmt.Errorf("input cannot be null")
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Text = &s
		return nil
	}

	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		e.Texts = ss
		return nil
	}

	return fmt.Errorf("input must be string or []string")
}

// MarshalJSON enforces that exactly one field is set.
func (e *EmbeddingInput) MarshalJSON() ([]byte, error) {
	switch {
	case e.Text != nil && e.Texts != nil:
		return nil, fmt.Errorf("embedding input must set exactly one field")
	case e.Text != nil:
		return json.Marshal(*e.Text)
	case e.Texts != nil:
		return json.Marshal(e.Texts)
	default:
		return nil, fmt.Errorf("embedding input is empty")
	}
}

// Validate checks that the embedding input is non-empty.
func (e *EmbeddingInput) Validate() error {
	if e.Text != nil {
		if *e.Text == "" {
			return fmt.Errorf("input string cannot be empty")
		}
		return nil
	}
	if e.Texts != nil {
		if len(e.Texts) == 0 {
			return fmt.Errorf("input array cannot be empty")
		}
		for i, s := range e.Texts {
			if s == "" {
				return fmt.Errorf("input array contains empty string at index %d", i)
			}
		}
		return nil
	}
	return fmt.Errorf("input cannot be nil")
}

// Count returns how many texts the input carries.
func (e *EmbeddingInput) Count() int {
	if e.Text != nil {
		return 1
	}
	return len(e.Texts)
}

// NewEmbeddingInputFromString creates an EmbeddingInput from a single string.
func NewEmbeddingInputFromString(s string) *EmbeddingInput {
	return &EmbeddingInput{Text: &s}
}

// NewEmbeddingInputFromStrings creates an EmbeddingInput from a string slice.
func NewEmbeddingInputFromStrings(ss []string) *EmbeddingInput {
	return &EmbeddingInput{Texts: ss}
}

// EmbeddingRequest represents an embedding request.
type EmbeddingRequest struct {
	// Model is the ID of the embedding model to use.
	Model string `json:"model"`

	// Input is the text to embed.
	Input *EmbeddingInput `json:"input"`

	// EncodingFormat is the format to return the embeddings in.
	// Can be "float" or "base64". Defaults to "float".
	EncodingFormat string `json:"encoding_format,omitempty"`

	// User is a unique identifier representing the end-user.
	User string `json:"user,omitempty"`

	// Dimensions is the number of dimensions the output embeddings
	// should have, for models that support shortening.
	Dimensions int `json:"dimensions,omitempty"`
}

// Validate checks if the embedding request is valid.
func (r *EmbeddingRequest) Validate() error {
	if err := ValidateModelName(r.Model); err != nil {
		return err
	}
	if r.Input == nil {
		return fmt.Errorf("input cannot be nil")
	}
	return r.Input.Validate()
}

// EmbeddingResponse is the provider wire format of an embeddings response.
type EmbeddingResponse struct {
	Object string            `json:"object"`
	Data   []EmbeddingObject `json:"data"`
	Model  string            `json:"model"`
	Usage  Usage             `json:"usage"`
}

// EmbeddingObject represents a single embedding object.
type EmbeddingObject struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// EmbeddingResult is the caller-facing outcome of an embeddings call.
// Vectors follow the order of the request input regardless of how the
// provider ordered its response.
type EmbeddingResult struct {
	Model   string
	Vectors [][]float64
	Usage   *Usage
}

// Vector returns the single vector of a one-text request.
func (r *EmbeddingResult) Vector() []float64 {
	if len(r.Vectors) == 0 {
		return nil
	}
	return r.Vectors[0]
}
