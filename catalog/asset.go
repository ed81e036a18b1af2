package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/models.yaml
var defaultTable []byte

// Default returns a catalog built from the embedded model table.
func Default() *Catalog {
	c, err := Load(defaultTable)
	if err != nil {
		// The embedded table ships with the binary; failing to parse
		// it is a packaging bug.
		panic(fmt.Sprintf("catalog: embedded model table is broken: %v", err))
	}
	return c
}

// Load builds a catalog from YAML bytes.
func Load(data []byte) (*Catalog, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse model table: %w", err)
	}
	return New(file)
}

// LoadFile builds a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model table: %w", err)
	}
	return Load(data)
}
