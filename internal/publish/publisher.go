// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/issuepage/issuepage/internal/attach"
	"github.com/issuepage/issuepage/internal/extract"
	"github.com/issuepage/issuepage/internal/extract/coercers"
	"github.com/issuepage/issuepage/internal/schema"
)

// IndexFile is the name of the rendered page inside an issue's directory.
const IndexFile = "index.md"

// ErrCloseIssue is wrapped when a published issue could not be closed.
var ErrCloseIssue = errors.New("close issue")

// Config holds the per-run publishing options.
type Config struct {
	// Schema may be nil, in which case the whole body is published as is.
	Schema       *schema.Schema
	TargetFolder string
	// PublishLabel marks issues ready for publishing. When empty no issue is
	// ready unless PublishAll is set.
	PublishLabel string
	// PublishAll treats every issue as ready regardless of labels.
	PublishAll  bool
	CloseIssues bool
	Logger      *zap.Logger
}

// Publisher turns issues into rendered pages, one issue at a time.
type Publisher struct {
	source   IssueSource
	renderer Renderer
	writer   attach.FileWriter
	rewriter *attach.Rewriter
	resolver *extract.Resolver
	cfg      Config
	log      *zap.Logger
}

// NewPublisher creates a Publisher. rewriter may be nil to leave attachment
// links untouched.
func NewPublisher(source IssueSource, renderer Renderer, writer attach.FileWriter, rewriter *attach.Rewriter, cfg Config) *Publisher {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := &Publisher{
		source:   source,
		renderer: renderer,
		writer:   writer,
		rewriter: rewriter,
		cfg:      cfg,
		log:      log,
	}
	if cfg.Schema.HasHints() {
		p.resolver = extract.NewResolver(cfg.Schema.Body, coercers.Default()...)
	}
	return p
}

// Result describes the outcome for a single issue.
type Result struct {
	Number    int
	Dir       string
	Published bool
	Closed    bool
	// SkipReason is set when Published is false.
	SkipReason  string
	Attachments []attach.Outcome
}

// Run publishes every issue returned by the source, in order. Render and
// write failures stop the run. Close failures are reported once all issues
// have been processed.
func (p *Publisher) Run(ctx context.Context) error {
	issues, err := p.source.Issues(ctx)
	if err != nil {
		return fmt.Errorf("list issues: %w", err)
	}
	p.log.Info("issues loaded", zap.Int("count", len(issues)))

	var closeErrs []error
	for _, issue := range issues {
		result, err := p.PublishIssue(ctx, issue)
		if errors.Is(err, ErrCloseIssue) {
			closeErrs = append(closeErrs, err)
			continue
		}
		if err != nil {
			return err
		}
		if !result.Published {
			p.log.Debug("issue skipped",
				zap.Int("issue", issue.Number),
				zap.String("reason", result.SkipReason))
		}
	}
	return errors.Join(closeErrs...)
}

// PublishIssue renders one issue into its target directory.
func (p *Publisher) PublishIssue(ctx context.Context, issue Issue) (Result, error) {
	result := Result{Number: issue.Number}
	if !p.ready(issue) {
		result.SkipReason = "not ready for publishing"
		return result, nil
	}
	if issue.Body == "" {
		result.SkipReason = "empty body"
		return result, nil
	}

	result.Dir = p.targetDir(issue)
	body := issue.Body
	if p.rewriter != nil {
		body, result.Attachments = p.rewriter.Rewrite(ctx, body, result.Dir)
	}
	if strings.TrimSpace(body) == "" {
		result.SkipReason = "empty body"
		return result, nil
	}

	fields := p.Fields(body)
	if !hasContent(fields[extract.BodyKey]) {
		result.SkipReason = "no body field"
		return result, nil
	}

	page, err := p.renderer.Render(ctx, p.Record(issue, fields))
	if err != nil {
		return result, fmt.Errorf("render issue %d: %w", issue.Number, err)
	}
	if err := p.writer.WriteFile(filepath.Join(result.Dir, IndexFile), []byte(page)); err != nil {
		return result, fmt.Errorf("write issue %d: %w", issue.Number, err)
	}
	result.Published = true
	p.log.Info("issue published",
		zap.Int("issue", issue.Number),
		zap.String("dir", result.Dir),
		zap.Int("attachments", len(result.Attachments)))

	if !p.cfg.CloseIssues {
		return result, nil
	}
	if err := p.source.Close(ctx, issue); err != nil {
		p.log.Error("failed to close published issue", zap.Int("issue", issue.Number), zap.Error(err))
		return result, fmt.Errorf("%w %d: %v", ErrCloseIssue, issue.Number, err)
	}
	result.Closed = true
	p.log.Info("issue closed", zap.Int("issue", issue.Number))
	return result, nil
}

// Fields extracts the typed fields of an issue body. Without schema hints the
// body is returned unchanged under extract.BodyKey. It returns nil when no
// hinted section yields a value.
func (p *Publisher) Fields(body string) map[string]any {
	if p.resolver == nil {
		return map[string]any{extract.BodyKey: body}
	}
	fields, ok := p.resolver.Resolve(extract.Segment(body))
	if !ok {
		return nil
	}
	return fields
}

// Record assembles the template context for issue. Schema extras are merged
// last and win over computed fields.
func (p *Publisher) Record(issue Issue, fields map[string]any) map[string]any {
	var prefix string
	if p.cfg.Schema != nil {
		prefix = p.cfg.Schema.Prefix
	}
	title := strings.TrimSpace(issue.Title)
	if prefix != "" {
		title = strings.TrimSpace(strings.TrimPrefix(title, prefix))
	}
	created := extract.SplitDateTime(issue.CreatedAt)

	record := map[string]any{
		"title":  extract.Protect(title),
		"date":   created.Date,
		"time":   created.Time,
		"author": issue.Author,
	}
	for k, v := range fields {
		record[k] = v
	}
	if p.cfg.Schema != nil {
		for k, v := range p.cfg.Schema.Extra {
			record[k] = v
		}
	}
	return record
}

func (p *Publisher) ready(issue Issue) bool {
	if p.cfg.PublishAll {
		return true
	}
	return p.cfg.PublishLabel != "" && issue.HasLabel(p.cfg.PublishLabel)
}

func (p *Publisher) targetDir(issue Issue) string {
	name := p.cfg.Schema.DirName() + "_" + strconv.Itoa(issue.Number)
	return filepath.Join(p.cfg.TargetFolder, name)
}

func hasContent(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(value) != ""
	default:
		return true
	}
}
