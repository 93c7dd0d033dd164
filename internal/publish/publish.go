// SPDX-License-Identifier: Apache-2.0

// Package publish turns ready issues into rendered pages on disk.
package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Issue is the subset of an issue the publisher needs.
type Issue struct {
	ID        string
	Number    int
	Title     string
	Body      string
	Author    string
	CreatedAt string
	Labels    []string
}

// HasLabel reports whether the issue carries label.
func (i Issue) HasLabel(label string) bool {
	for _, l := range i.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// IssueSource lists candidate issues and closes them once published.
type IssueSource interface {
	Issues(ctx context.Context) ([]Issue, error)
	Close(ctx context.Context, issue Issue) error
}

// Renderer renders a context record into page content.
type Renderer interface {
	Render(ctx context.Context, record map[string]any) (string, error)
}

// DirWriter writes files to the local filesystem.
type DirWriter struct{}

func NewDirWriter() *DirWriter {
	return &DirWriter{}
}

// WriteFile writes data to path, creating parent directories as needed.
func (w *DirWriter) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
