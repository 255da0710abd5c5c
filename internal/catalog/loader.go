package catalog

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML content pack and merges it over the built-in catalog.
// Only sections present in the pack replace their defaults; an absent
// section keeps the built-in content. Unknown keys are an error so typos
// in a pack surface immediately.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content pack: %w", err)
	}
	return Parse(raw)
}

// Parse merges YAML content-pack bytes over the built-in catalog.
func Parse(raw []byte) (*Catalog, error) {
	var sections map[string]any
	if err := yaml.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("parsing content pack: %w", err)
	}

	cat := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      cat,
		TagName:     "yaml",
		ErrorUnused: true,
		ZeroFields:  true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(sections); err != nil {
		return nil, fmt.Errorf("invalid content pack: %w", err)
	}
	return cat, nil
}
