package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a mapping document from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping document %s: %w", path, err)
	}
	return doc, nil
}

// Parse parses a mapping document from YAML bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func validate(doc *Document) error {
	for i, cm := range doc.Classes {
		if cm == nil || cm.Name == "" {
			return Structuralf("class at index %d has no name", i)
		}
		for j, fm := range cm.Fields {
			if fm == nil || fm.Name == "" {
				return Structuralf("field at index %d of class %q has no name", j, cm.Name)
			}
		}
	}
	for i, def := range doc.KeyGenerators {
		if def.Name == "" {
			return Structuralf("key generator at index %d has no strategy name", i)
		}
	}
	return nil
}
