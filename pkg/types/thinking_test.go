package types

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThinkingModeString(t *testing.T) {
	assert.Equal(t, "enabled", ThinkingEnabled.String())
	assert.Equal(t, "disabled", ThinkingDisabled.String())
	assert.Equal(t, "unspecified", ThinkingUnspecified.String())
}

func TestThinkingModeConfig(t *testing.T) {
	assert.Nil(t, ThinkingUnspecified.Config())

	enabled := ThinkingEnabled.Config()
	require.NotNil(t, enabled)
	data, err := json.Marshal(enabled)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"enabled"}`, string(data))

	disabled := ThinkingDisabled.Config()
	require.NotNil(t, disabled)
	data, err = json.Marshal(disabled)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"disabled"}`, string(data))
}
