// SPDX-License-Identifier: Apache-2.0

// Package github reads open issues and closes published ones through the
// GitHub GraphQL API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/issuepage/issuepage/internal/publish"
)

// DefaultEndpoint is the public GitHub GraphQL endpoint.
const DefaultEndpoint = "https://api.github.com/graphql"

// Ensure interface compliance.
var _ publish.IssueSource = (*Client)(nil)

// Client is a publish.IssueSource for one repository.
type Client struct {
	api    *githubv4.Client
	owner  string
	repo   string
	labels []string
}

type clientOptions struct {
	endpoint string
	http     *http.Client
}

// Option configures a Client.
type Option func(*clientOptions)

// WithEndpoint points the client at another GraphQL endpoint, such as a
// GitHub Enterprise server.
func WithEndpoint(url string) Option {
	return func(o *clientOptions) {
		if url != "" {
			o.endpoint = url
		}
	}
}

// WithHTTPClient sets the base HTTP client. The token is still added to
// every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		if hc != nil {
			o.http = hc
		}
	}
}

// NewClient creates a client for owner/repo. Only issues carrying all of
// labels are listed; no labels lists every open issue.
func NewClient(token, owner, repo string, labels []string, opts ...Option) *Client {
	o := clientOptions{
		endpoint: DefaultEndpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.http
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, o.http)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		hc.Timeout = o.http.Timeout
	}

	return &Client{
		api:    githubv4.NewEnterpriseClient(o.endpoint, hc),
		owner:  owner,
		repo:   repo,
		labels: labels,
	}
}

// SplitRepository splits "owner/repo".
func SplitRepository(s string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q, want owner/repo", s)
	}
	return owner, repo, nil
}

// ParseLabels splits a comma-separated label list, dropping blanks.
func ParseLabels(s string) []string {
	var labels []string
	for _, l := range strings.Split(s, ",") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

type issueNode struct {
	ID        githubv4.ID
	Number    githubv4.Int
	Title     githubv4.String
	CreatedAt githubv4.DateTime
	Body      githubv4.String
	Author    *struct {
		Login githubv4.String
	}
	Labels struct {
		Nodes []struct {
			Name githubv4.String
		}
	} `graphql:"labels(first: 10)"`
}

func (n issueNode) toIssue() publish.Issue {
	id, _ := n.ID.(string)
	issue := publish.Issue{
		ID:        id,
		Number:    int(n.Number),
		Title:     string(n.Title),
		Body:      string(n.Body),
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
	// deleted accounts come back as a null author
	if n.Author != nil {
		issue.Author = string(n.Author.Login)
	}
	for _, l := range n.Labels.Nodes {
		issue.Labels = append(issue.Labels, string(l.Name))
	}
	return issue
}

// Issues lists open issues in the order GitHub returns them.
func (c *Client) Issues(ctx context.Context) ([]publish.Issue, error) {
	var q struct {
		Repository *struct {
			Issues struct {
				Nodes []issueNode
			} `graphql:"issues(states: [OPEN], first: 100, labels: $labels)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	// a null label list disables the filter
	var labels *[]githubv4.String
	if len(c.labels) > 0 {
		list := make([]githubv4.String, 0, len(c.labels))
		for _, l := range c.labels {
			list = append(list, githubv4.String(l))
		}
		labels = &list
	}
	vars := map[string]any{
		"owner":  githubv4.String(c.owner),
		"repo":   githubv4.String(c.repo),
		"labels": labels,
	}

	if err := c.api.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("list issues of %s/%s: %w", c.owner, c.repo, err)
	}
	if q.Repository == nil {
		return nil, fmt.Errorf("repository %s/%s not found", c.owner, c.repo)
	}

	issues := make([]publish.Issue, 0, len(q.Repository.Issues.Nodes))
	for _, n := range q.Repository.Issues.Nodes {
		issues = append(issues, n.toIssue())
	}
	return issues, nil
}

// Close marks issue as closed with reason COMPLETED.
func (c *Client) Close(ctx context.Context, issue publish.Issue) error {
	var m struct {
		CloseIssue struct {
			Issue struct {
				ID     githubv4.ID
				Number githubv4.Int
				State  githubv4.IssueState
			}
		} `graphql:"closeIssue(input: $input)"`
	}
	reason := githubv4.IssueClosedStateReasonCompleted
	input := githubv4.CloseIssueInput{
		IssueID:     githubv4.ID(issue.ID),
		StateReason: &reason,
	}
	if err := c.api.Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("close issue %d: %w", issue.Number, err)
	}

	got := m.CloseIssue.Issue
	if id, _ := got.ID.(string); id != issue.ID || got.State != githubv4.IssueStateClosed {
		return fmt.Errorf("issue %d still %q after close", issue.Number, got.State)
	}
	return nil
}
