package types_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crescendochat/doubao/pkg/types"
)

func TestEmbeddingInput_UnmarshalJSON_String(t *testing.T) {
	var input types.EmbeddingInput
	err := json.Unmarshal([]byte(`"Hello, world!"`), &input)

	require.NoError(t, err)
	require.NotNil(t, input.Text)
	assert.Equal(t, "Hello, world!", *input.Text)
	assert.Nil(t, input.Texts)
}

func TestEmbeddingInput_UnmarshalJSON_StringArray(t *testing.T) {
	var input types.EmbeddingInput
	err := json.Unmarshal([]byte(`["Hello", "World"]`), &input)

	require.NoError(t, err)
	assert.Nil(t, input.Text)
	assert.Equal(t, []string{"Hello", "World"}, input.Texts)
}

func TestEmbeddingInput_UnmarshalJSON_Null(t *testing.T) {
	var input types.EmbeddingInput
	err := json.Unmarshal([]byte(`null`), &input)

	assert.Error(t, err)
}

func TestEmbeddingInput_UnmarshalJSON_UnsupportedShape(t *testing.T) {
	var input types.EmbeddingInput
	err := json.Unmarshal([]byte(`{"text": "hi"}`), &input)

	assert.Error(t, err)
}

func TestEmbeddingInput_MarshalJSON_String(t *testing.T) {
	input := types.NewEmbeddingInputFromString("hello")

	data, err := json.Marshal(input)
	require.NoError(t, err)
	assert.JSONEq(t, `"hello"`, string(data))
}

func TestEmbeddingInput_MarshalJSON_StringArray(t *testing.T) {
	input := types.NewEmbeddingInputFromStrings([]string{"a", "b"})

	data, err := json.Marshal(input)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))
}

func TestEmbeddingInput_MarshalJSON_Empty(t *testing.T) {
	var input types.EmbeddingInput

	_, err := json.Marshal(&input)
	assert.Error(t, err)
}

func TestEmbeddingInput_MarshalJSON_BothSet(t *testing.T) {
	s := "hello"
	input := types.EmbeddingInput{Text: &s, Texts: []string{"a"}}

	_, err := json.Marshal(&input)
	assert.Error(t, err)
}

func TestEmbeddingInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   *types.EmbeddingInput
		wantErr bool
	}{
		{"single string", types.NewEmbeddingInputFromString("hi"), false},
		{"string array", types.NewEmbeddingInputFromStrings([]string{"a", "b"}), false},
		{"empty string", types.NewEmbeddingInputFromString(""), true},
		{"empty array", types.NewEmbeddingInputFromStrings([]string{}), true},
		{"array with empty element", types.NewEmbeddingInputFromStrings([]string{"a", ""}), true},
		{"nothing set", &types.EmbeddingInput{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEmbeddingInput_Count(t *testing.T) {
	assert.Equal(t, 1, types.NewEmbeddingInputFromString("hi").Count())
	assert.Equal(t, 3, types.NewEmbeddingInputFromStrings([]string{"a", "b", "c"}).Count())
	assert.Equal(t, 0, (&types.EmbeddingInput{}).Count())
}

func TestEmbeddingRequest_Validate_NilInput(t *testing.T) {
	req := types.EmbeddingRequest{Model: "doubao-embedding"}

	assert.Error(t, req.Validate())
}

func TestEmbeddingResult_Vector(t *testing.T) {
	result := types.EmbeddingResult{
		Model:   "doubao-embedding",
		Vectors: [][]float64{{0.1, 0.2}, {0.3, 0.4}},
	}
	assert.Equal(t, []float64{0.1, 0.2}, result.Vector())

	empty := types.EmbeddingResult{}
	assert.Nil(t, empty.Vector())
}
