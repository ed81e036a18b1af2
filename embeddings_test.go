package doubao

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	llmerrors "github.com/crescendochat/doubao/pkg/errors"
)

func TestClient_Embeddings_SingleVector(t *testing.T) {
	pathCh := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pathCh <- r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"object":"embedding","embedding":[0.1,0.2,0.3],"index":0}],"model":"doubao-embedding-text-240715","usage":{"prompt_tokens":4,"total_tokens":4}}`))
	}))
	defer server.Close()

	client, err := New(WithAPIKey("sk-test"), WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := client.Embeddings(context.Background(), &EmbeddingRequest{
		Model: "doubao-embedding-text-240715",
		Input: NewEmbeddingInputFromString("hello world"),
	})
	if err != nil {
		t.Fatalf("Embeddings() error = %v", err)
	}

	if got := <-pathCh; got != "/v3/embeddings" {
		t.Errorf("path = %q, want %q", got, "/v3/embeddings")
	}
	if result.Model != "doubao-embedding-text-240715" {
		t.Errorf("model = %q, want %q", result.Model, "doubao-embedding-text-240715")
	}
	if want := []float64{0.1, 0.2, 0.3}; !reflect.DeepEqual(result.Vector(), want) {
		t.Errorf("vector = %v, want %v", result.Vector(), want)
	}
	if result.Usage == nil || result.Usage.TotalTokens != 4 {
		t.Errorf("usage = %+v, want total 4", result.Usage)
	}
}

func TestClient_Embeddings_BatchOrderedByIndex(t *testing.T) {
	// The provider answers out of order; the index field wins.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"object":"embedding","embedding":[3],"index":2},{"object":"embedding","embedding":[1],"index":0},{"object":"embedding","embedding":[2],"index":1}],"model":"doubao-embedding-text-240715","usage":{"prompt_tokens":9,"total_tokens":9}}`))
	}))
	defer server.Close()

	client, err := New(WithAPIKey("sk-test"), WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := client.Embeddings(context.Background(), &EmbeddingRequest{
		Model: "doubao-embedding-text-240715",
		Input: NewEmbeddingInputFromStrings([]string{"a", "b", "c"}),
	})
	if err != nil {
		t.Fatalf("Embeddings() error = %v", err)
	}

	want := [][]float64{{1}, {2}, {3}}
	if !reflect.DeepEqual(result.Vectors, want) {
		t.Errorf("vectors = %v, want %v", result.Vectors, want)
	}
}

func TestClient_Embeddings_InvalidInput(t *testing.T) {
	client, err := New(WithAPIKey("sk-test"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Embeddings(context.Background(), &EmbeddingRequest{
		Model: "doubao-embedding-text-240715",
		Input: NewEmbeddingInputFromStrings(nil),
	})
	if err == nil || !strings.Contains(err.Error(), "input cannot be nil") {
		t.Fatalf("Embeddings() error = %v, want input validation failure", err)
	}

	_, err = client.Embeddings(context.Background(), &EmbeddingRequest{
		Model: "doubao-embedding-text-240715",
		Input: NewEmbeddingInputFromStrings([]string{"ok", ""}),
	})
	if err == nil || !strings.Contains(err.Error(), "empty string at index 1") {
		t.Fatalf("Embeddings() error = %v, want element validation failure", err)
	}
}

func TestClient_Embeddings_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"dimensions not supported for this model"}}`))
	}))
	defer server.Close()

	client, err := New(WithAPIKey("sk-test"), WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Embeddings(context.Background(), &EmbeddingRequest{
		Model:      "doubao-embedding-text-240715",
		Input:      NewEmbeddingInputFromString("hello"),
		Dimensions: 4096,
	})
	if !llmerrors.IsKind(err, llmerrors.KindInvalidRequest) {
		t.Fatalf("Embeddings() error = %v, want kind %s", err, llmerrors.KindInvalidRequest)
	}
}
