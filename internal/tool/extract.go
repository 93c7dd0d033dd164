// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/issuepage/issuepage/internal/extract"
	"github.com/issuepage/issuepage/internal/extract/coercers"
	"github.com/issuepage/issuepage/internal/schema"
)

// MetadataExtractIssueFields describes the extract_issue_fields tool.
var MetadataExtractIssueFields = &mcp.Tool{
	Name: "extract_issue_fields",
	Description: "Extract typed fields from a GitHub issue-form body. " +
		"The body is split on '### ' headings and each section is matched against the " +
		"optional hint schema (YAML with name, prefix, body and extra keys). " +
		"Supported field types: text, list, image, [image], file, [file], flag, [flag], date, table. " +
		"Without a schema the whole body is returned under the 'body' key.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"body"},
		"properties": map[string]interface{}{
			"body": map[string]interface{}{
				"type":        "string",
				"description": "Raw issue body as submitted through the issue form",
			},
			"schema": map[string]interface{}{
				"type":        "string",
				"description": "Optional hint schema in YAML. Its body list maps section labels to field ids and types.",
			},
		},
	},
}

// InputExtractIssueFields is the input for the ExtractIssueFields tool.
type InputExtractIssueFields struct {
	Body   string `json:"body"`
	Schema string `json:"schema"`
}

// OutputExtractIssueFields is the output for the ExtractIssueFields tool.
type OutputExtractIssueFields struct {
	// Fields maps field ids to their coerced values.
	Fields map[string]any `json:"fields"`
	// Sections lists the section labels found in the body, in order.
	Sections []string `json:"sections"`
	// Publishable is true when Fields holds a non-empty body.
	Publishable bool `json:"publishable"`
}

// ExtractIssueFields runs segmentation and hint resolution over the body.
func ExtractIssueFields(_ context.Context, _ *mcp.CallToolRequest, input InputExtractIssueFields) (*mcp.CallToolResult, OutputExtractIssueFields, error) {
	if input.Body == "" {
		return nil, OutputExtractIssueFields{}, fmt.Errorf("body is required")
	}

	var s *schema.Schema
	if input.Schema != "" {
		parsed, err := schema.Parse([]byte(input.Schema))
		if err != nil {
			return nil, OutputExtractIssueFields{}, err
		}
		s = parsed
	}

	sections := extract.Segment(input.Body)
	labels := make([]string, 0, sections.Len())
	for _, section := range sections.List() {
		labels = append(labels, section.Label)
	}

	fields := map[string]any{extract.BodyKey: input.Body}
	if s.HasHints() {
		resolved, ok := extract.NewResolver(s.Body, coercers.Default()...).Resolve(sections)
		if !ok {
			resolved = map[string]any{}
		}
		fields = resolved
	}

	body, _ := fields[extract.BodyKey].(string)
	return nil, OutputExtractIssueFields{
		Fields:      fields,
		Sections:    labels,
		Publishable: body != "",
	}, nil
}

// NewServer creates an MCP server exposing the extraction tools.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "issuepage", Version: version}, nil)
	mcp.AddTool(server, MetadataExtractIssueFields, ExtractIssueFields)
	return server
}
