// SPDX-License-Identifier: Apache-2.0

// Package attach downloads issue attachments next to the generated page and
// points the issue body at the local copies.
package attach

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/issuepage/issuepage/internal/extract"
	"github.com/issuepage/issuepage/internal/extract/coercers"
)

// FileWriter writes data to path, creating parent directories as needed.
type FileWriter interface {
	WriteFile(path string, data []byte) error
}

// Outcome records what happened to one attachment link.
type Outcome struct {
	Link extract.Link
	// File is the local file name; empty when Err is set.
	File string
	Err  error
}

// Rewriter materializes attachment links found in issue bodies.
type Rewriter struct {
	fetcher  Fetcher
	writer   FileWriter
	patterns []*regexp.Regexp
	log      *zap.Logger
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithLegacyRepository also materializes repository-scoped attachments of
// owner/repo.
func WithLegacyRepository(owner, repo string) Option {
	return func(r *Rewriter) {
		if owner == "" || repo == "" {
			return
		}
		r.patterns = append(r.patterns, LegacyPattern(owner, repo))
	}
}

// WithLogger sets the logger used to report failed attachments.
func WithLogger(log *zap.Logger) Option {
	return func(r *Rewriter) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRewriter creates a Rewriter. Current-style attachment URLs are always
// recognized.
func NewRewriter(fetcher Fetcher, writer FileWriter, opts ...Option) *Rewriter {
	r := &Rewriter{
		fetcher:  fetcher,
		writer:   writer,
		patterns: []*regexp.Regexp{CurrentPattern},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Matches returns the attachment links of body in processing order: every
// link matching the first pattern, then every link matching the next one.
// A link matching several patterns is listed once per pattern.
func (r *Rewriter) Matches(body string) []extract.Link {
	links := coercers.Links(body)
	var matched []extract.Link
	for _, pattern := range r.patterns {
		for _, link := range links {
			if pattern.MatchString(link.URL) {
				matched = append(matched, link)
			}
		}
	}
	return matched
}

// Rewrite downloads every attachment of body into dir and replaces each
// attachment URL with the local file name. Attachments are handled one at a
// time; a failed attachment keeps its URL and does not stop the others.
func (r *Rewriter) Rewrite(ctx context.Context, body, dir string) (string, []Outcome) {
	matched := r.Matches(body)
	outcomes := make([]Outcome, 0, len(matched))
	written := make(map[string]string, len(matched))
	for _, link := range matched {
		outcome := r.materialize(ctx, link, dir)
		if outcome.Err != nil {
			r.log.Warn("attachment skipped",
				zap.String("name", link.Name),
				zap.String("url", link.URL),
				zap.Error(outcome.Err))
		} else {
			if prev, ok := written[outcome.File]; ok && prev != link.URL {
				r.log.Warn("attachment name reused, earlier file overwritten",
					zap.String("file", outcome.File),
					zap.String("url", link.URL),
					zap.String("previous_url", prev))
			}
			written[outcome.File] = link.URL
			body = strings.ReplaceAll(body, link.URL, outcome.File)
			r.log.Debug("attachment stored",
				zap.String("url", link.URL),
				zap.String("file", outcome.File))
		}
		outcomes = append(outcomes, outcome)
	}
	return body, outcomes
}

func (r *Rewriter) materialize(ctx context.Context, link extract.Link, dir string) Outcome {
	attachment, err := r.fetcher.Fetch(ctx, link.URL)
	if err != nil {
		return Outcome{Link: link, Err: err}
	}
	name := FileName(link.Name, attachment)
	path := filepath.Join(dir, name)
	if !within(dir, path) {
		return Outcome{Link: link, Err: fmt.Errorf("attachment name %q escapes %s", name, dir)}
	}
	if err := r.writer.WriteFile(path, attachment.Data); err != nil {
		return Outcome{Link: link, Err: fmt.Errorf("write %s: %w", name, err)}
	}
	return Outcome{Link: link, File: name}
}
