// Package modelid decodes caller-facing model identifiers. Hosts select a
// model and its deep-thinking toggle with a single identifier; a -thinking
// or -non-thinking suffix picks the toggle and is stripped before the name
// goes on the wire.
package modelid

import (
	"strings"

	"github.com/crescendochat/doubao/pkg/types"
)

const (
	thinkingWord      = "thinking"
	thinkingSuffix    = "-thinking"
	nonThinkingSuffix = "-non-thinking"
)

// Decode splits a model identifier into the canonical wire id and the
// requested thinking mode. Identifiers that contain "thinking" mid-name
// (doubao-1-5-thinking-pro and friends) name models that always think, so
// the identifier passes through unchanged with the mode set.
//
// A name whose trailing "thinking" is not dash-separated keeps its name;
// only the -thinking and -non-thinking suffixes are stripped.
func Decode(model string) (string, types.ThinkingMode) {
	if !strings.Contains(model, thinkingWord) {
		return model, types.ThinkingUnspecified
	}
	if !strings.HasSuffix(model, thinkingWord) {
		return model, types.ThinkingEnabled
	}

	mode := types.ThinkingEnabled
	if strings.Contains(model, nonThinkingSuffix) {
		mode = types.ThinkingDisabled
	}

	// Order matters: -non-thinking first, so its tail is not mistaken
	// for a plain -thinking suffix.
	canonical := strings.TrimSuffix(model, nonThinkingSuffix)
	canonical = strings.TrimSuffix(canonical, thinkingSuffix)
	return canonical, mode
}
