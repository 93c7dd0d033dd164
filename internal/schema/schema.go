// SPDX-License-Identifier: Apache-2.0

// Package schema loads the hint schema that tells the extractor how to read
// an issue form.
package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/issuepage/issuepage/internal/extract"
)

// DefaultName is used for target directories when the schema has no name.
const DefaultName = "page"

// Schema is the parsed hint file. It is read-only once loaded.
type Schema struct {
	Name   string              `yaml:"name"`
	Prefix string              `yaml:"prefix"`
	Body   []extract.FieldHint `yaml:"body"`
	Extra  map[string]any      `yaml:"extra"`
}

// DirName returns the schema name or DefaultName.
func (s *Schema) DirName() string {
	if s == nil || strings.TrimSpace(s.Name) == "" {
		return DefaultName
	}
	return strings.TrimSpace(s.Name)
}

// HasHints reports whether the schema declares any body hints.
func (s *Schema) HasHints() bool {
	return s != nil && len(s.Body) > 0
}

// Load reads and validates the schema at path. A missing file is not an
// error: it returns a nil Schema, which disables hint resolution.
func Load(path string) (*Schema, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %q: %w", path, err)
	}
	s, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates schema content.
func Parse(content []byte) (*Schema, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}

	var s Schema
	if err := yaml.Unmarshal(content, &s); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	for i, hint := range s.Body {
		ft, err := extract.ParseFieldType(string(hint.Type))
		if err != nil {
			return nil, fmt.Errorf("%w: body[%d]: %v", ErrInvalid, i, err)
		}
		s.Body[i].Type = ft
	}
	return &s, nil
}
