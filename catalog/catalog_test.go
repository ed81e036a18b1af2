package catalog

import (
	"testing"

	llmerrors "github.com/crescendochat/doubao/pkg/errors"
	"github.com/crescendochat/doubao/pkg/types"
)

func testFile() File {
	return File{
		Models: map[string]int{
			"doubao-seed-1-6-250615":             262144,
			"doubao-pro-32k":                     32768,
			"doubao-lite-32k":                    32768,
			"doubao-1-5-thinking-vision-pro":     131072,
			"doubao-embedding-large-text-240915": 4096,
		},
		NoToolCalls:       []string{"doubao-lite-32k", "doubao-1-5-thinking-vision-pro"},
		ImageInputMarkers: []string{"vision", "seed-1-6"},
	}
}

func TestNewRejectsEmptyTable(t *testing.T) {
	if _, err := New(File{}); err == nil {
		t.Fatal("expected error for empty table")
	}
}

func TestLookup(t *testing.T) {
	c, err := New(testFile())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name string
		want types.ModelInfo
	}{
		{
			name: "doubao-seed-1-6-250615",
			want: types.ModelInfo{
				Name:               "doubao-seed-1-6-250615",
				Kind:               types.ModelKindChat,
				MaxTokens:          262144,
				SupportsToolCalls:  true,
				SupportsImageInput: true,
			},
		},
		{
			name: "doubao-pro-32k",
			want: types.ModelInfo{
				Name:              "doubao-pro-32k",
				Kind:              types.ModelKindChat,
				MaxTokens:         32768,
				SupportsToolCalls: true,
			},
		},
		{
			name: "doubao-lite-32k",
			want: types.ModelInfo{
				Name:      "doubao-lite-32k",
				Kind:      types.ModelKindChat,
				MaxTokens: 32768,
			},
		},
		{
			name: "doubao-1-5-thinking-vision-pro",
			want: types.ModelInfo{
				Name:               "doubao-1-5-thinking-vision-pro",
				Kind:               types.ModelKindChat,
				MaxTokens:          131072,
				SupportsImageInput: true,
			},
		},
		{
			name: "doubao-embedding-large-text-240915",
			want: types.ModelInfo{
				Name:      "doubao-embedding-large-text-240915",
				Kind:      types.ModelKindEmbedding,
				MaxTokens: 4096,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLookupUnknownModel(t *testing.T) {
	c, err := New(testFile())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	info, err := c.Lookup("gpt-4o")
	if err == nil {
		t.Fatal("expected error for unregistered model")
	}
	if !llmerrors.IsKind(err, llmerrors.KindModelNotFound) {
		t.Errorf("error kind = %v, want model_not_found", err)
	}
	if info != (types.ModelInfo{}) {
		t.Errorf("failed lookup must not return a partial result, got %+v", info)
	}
}

func TestModelsStableOrderAndRepeatable(t *testing.T) {
	c, err := New(testFile())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first := c.Models()
	second := c.Models()

	if len(first) != c.Len() {
		t.Fatalf("Models() returned %d entries, want %d", len(first), c.Len())
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Name >= first[i].Name {
			t.Fatalf("Models() not in name order: %q before %q", first[i-1].Name, first[i].Name)
		}
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Models() not repeatable at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestDefaultTableParses(t *testing.T) {
	c := Default()

	if c.Len() == 0 {
		t.Fatal("embedded table is empty")
	}

	info, err := c.Lookup("doubao-seed-1-6-250615")
	if err != nil {
		t.Fatalf("Lookup on embedded table: %v", err)
	}
	if info.Kind != types.ModelKindChat || info.MaxTokens == 0 {
		t.Errorf("unexpected embedded entry: %+v", info)
	}

	emb, err := c.Lookup("doubao-embedding-large-text-240915")
	if err != nil {
		t.Fatalf("Lookup embedding model: %v", err)
	}
	if emb.Kind != types.ModelKindEmbedding {
		t.Errorf("embedding model kind = %v", emb.Kind)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load([]byte("models: [not a map")); err == nil {
		t.Fatal("expected parse error")
	}
}
