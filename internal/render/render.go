// SPDX-License-Identifier: Apache-2.0

// Package render renders context records with pongo2 templates.
package render

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/issuepage/issuepage/internal/extract"
)

//go:embed templates/default.md.tpl
var defaultTemplate string

// Renderer renders a single compiled template.
type Renderer struct {
	tpl *pongo2.Template
}

// New loads the template at path. Includes and extends resolve relative to
// the template's directory. An empty path selects the built-in template.
func New(path string) (*Renderer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return FromString(defaultTemplate)
	}

	loader, err := pongo2.NewLocalFileSystemLoader(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("render: create loader: %w", err)
	}
	set := pongo2.NewSet("issuepage", loader)
	tpl, err := set.FromFile(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", path, err)
	}
	return &Renderer{tpl: tpl}, nil
}

// FromString compiles src.
func FromString(src string) (*Renderer, error) {
	tpl, err := pongo2.FromString(src)
	if err != nil {
		return nil, fmt.Errorf("render: compile template: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render executes the template with record as its context.
func (r *Renderer) Render(_ context.Context, record map[string]any) (string, error) {
	if r == nil || r.tpl == nil {
		return "", errors.New("render: no template")
	}
	out, err := r.tpl.Execute(pongo2.Context(Normalize(record)))
	if err != nil {
		return "", fmt.Errorf("render: execute template: %w", err)
	}
	return out, nil
}

// Normalize converts typed record values (links, flags, dates) into plain
// maps keyed by their YAML names so templates can write "image.url".
func Normalize(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch value := v.(type) {
	case extract.Link:
		return map[string]any{"name": value.Name, "url": value.URL}
	case extract.Flag:
		return map[string]any{"flag": value.Flag, "name": value.Name}
	case extract.DateTime:
		return map[string]any{"date": value.Date, "time": value.Time}
	case []extract.Link:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = normalizeValue(item)
		}
		return out
	case []extract.Flag:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
