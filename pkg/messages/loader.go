package messages

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Messages map[string]string `json:"messages" yaml:"messages"`
}

// ParseCatalog decodes a YAML (or JSON, YAML being a superset here) catalog
// document of the form:
//
//	messages:
//	  required: "Please provide {0}."
//	  range: "{0} must be between {1} and {2}."
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("messages: parse catalog: %w", err)
	}

	catalog := NewCatalog()
	for kind, template := range doc.Messages {
		if err := catalog.Set(kind, template); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// LoadCatalog reads and parses a catalog file from disk.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("messages: read catalog %q: %w", path, err)
	}
	return ParseCatalog(data)
}
