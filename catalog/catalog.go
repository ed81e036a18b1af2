// Package catalog holds the model capability table of the adapter. The
// table is a data asset, not code: a YAML document maps model ids to
// context window sizes, with rule lists refining tool-call and image-input
// capabilities. Hosts inject their own table or watch one on disk.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	llmerrors "github.com/crescendochat/doubao/pkg/errors"
	"github.com/crescendochat/doubao/pkg/types"
)

const providerName = "doubao"

// File is the on-disk shape of a model table.
type File struct {
	// Models maps a model id to its context window size in tokens.
	// Zero means the window is unknown.
	Models map[string]int `yaml:"models"`

	// NoToolCalls lists chat models that reject the tools parameter.
	NoToolCalls []string `yaml:"no_tool_calls"`

	// ImageInputMarkers lists substrings marking models that accept
	// image input.
	ImageInputMarkers []string `yaml:"image_input_markers"`
}

// Catalog answers capability questions about registered models. It is
// immutable after construction; refreshes build a new Catalog.
type Catalog struct {
	limits       map[string]int
	noTools      map[string]struct{}
	imageMarkers []string
}

// New builds a catalog from a model table.
func New(file File) (*Catalog, error) {
	if len(file.Models) == 0 {
		return nil, fmt.Errorf("model table is empty")
	}

	noTools := make(map[string]struct{}, len(file.NoToolCalls))
	for _, name := range file.NoToolCalls {
		noTools[name] = struct{}{}
	}

	limits := make(map[string]int, len(file.Models))
	for name, limit := range file.Models {
		limits[name] = limit
	}

	return &Catalog{
		limits:       limits,
		noTools:      noTools,
		imageMarkers: append([]string(nil), file.ImageInputMarkers...),
	}, nil
}

// Source yields the current catalog. A *Catalog is its own Source; Manager
// implements Source by swapping catalogs when the backing file changes.
type Source interface {
	Catalog() *Catalog
}

// Catalog implements Source.
func (c *Catalog) Catalog() *Catalog { return c }

// Len returns the number of registered models.
func (c *Catalog) Len() int { return len(c.limits) }

// Models recomputes the capability list from the table. The result is a
// fresh slice in stable name order; calling it repeatedly has no side
// effects.
func (c *Catalog) Models() []types.ModelInfo {
	infos := make([]types.ModelInfo, 0, len(c.limits))
	for name := range c.limits {
		infos = append(infos, c.describe(name))
	}
	sort.SliceStable(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Lookup resolves a single model id. Unknown ids fail with the typed
// model_not_found error and never return a partial description.
func (c *Catalog) Lookup(name string) (types.ModelInfo, error) {
	if _, ok := c.limits[name]; !ok {
		return types.ModelInfo{}, llmerrors.NewModelNotFoundError(providerName, name)
	}
	return c.describe(name), nil
}

func (c *Catalog) describe(name string) types.ModelInfo {
	kind := types.ModelKindChat
	if strings.Contains(name, "embedding") {
		kind = types.ModelKindEmbedding
	}

	info := types.ModelInfo{
		Name:      name,
		Kind:      kind,
		MaxTokens: c.limits[name],
	}

	if kind == types.ModelKindChat {
		_, excluded := c.noTools[name]
		info.SupportsToolCalls = !excluded
	}

	for _, marker := range c.imageMarkers {
		if marker != "" && strings.Contains(name, marker) {
			info.SupportsImageInput = true
			break
		}
	}

	return info
}
