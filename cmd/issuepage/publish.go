// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/issuepage/issuepage/internal/attach"
	"github.com/issuepage/issuepage/internal/github"
	"github.com/issuepage/issuepage/internal/publish"
	"github.com/issuepage/issuepage/internal/render"
	"github.com/issuepage/issuepage/internal/schema"
)

type publishOptions struct {
	token        string
	repository   string
	labels       string
	publishLabel string
	targetFolder string
	hints        string
	template     string
	closeIssue   string
	publishAll   bool
}

func newPublishCmd() *cobra.Command {
	opts := publishOptions{}
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render every ready issue into the target folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.token, "token", envOr("", envToken, "GITHUB_TOKEN"), "GitHub token used for the API and attachment downloads")
	f.StringVar(&opts.repository, "repository", envOr("", envRepository), "repository as owner/name")
	f.StringVar(&opts.labels, "label", envOr("", envLabel), "comma-separated labels an issue must carry to be considered")
	f.StringVar(&opts.publishLabel, "publish-label", envOr("", envPublishLabel), "label marking an issue ready for publishing")
	f.StringVar(&opts.targetFolder, "target-folder", envOr(".", envTargetFolder), "folder receiving one directory per issue")
	f.StringVar(&opts.hints, "issue-template", envOr("", envHints), "hint schema file mapping form sections to fields")
	f.StringVar(&opts.template, "template", envOr("", envTemplate), "pongo2 page template (built-in template when empty)")
	f.StringVar(&opts.closeIssue, "close-issue", envOr("", envCloseIssue), "close issues after publishing (true, yes or 1)")
	f.BoolVar(&opts.publishAll, "publish-all", false, "publish issues regardless of the publish label")
	return cmd
}

func runPublish(cmd *cobra.Command, opts publishOptions) error {
	owner, repo, err := github.SplitRepository(opts.repository)
	if err != nil {
		return err
	}
	hints, err := schema.Load(opts.hints)
	if err != nil {
		return err
	}
	renderer, err := render.New(opts.template)
	if err != nil {
		return err
	}

	if opts.publishLabel == "" && !opts.publishAll {
		logger.Warn("no publish label set and --publish-all not given, no issue will be published")
	}

	source := github.NewClient(opts.token, owner, repo, github.ParseLabels(opts.labels))
	writer := publish.NewDirWriter()
	rewriter := attach.NewRewriter(
		attach.NewHTTPFetcher(opts.token),
		writer,
		attach.WithLegacyRepository(owner, repo),
		attach.WithLogger(logger),
	)

	publisher := publish.NewPublisher(source, renderer, writer, rewriter, publish.Config{
		Schema:       hints,
		TargetFolder: opts.targetFolder,
		PublishLabel: opts.publishLabel,
		PublishAll:   opts.publishAll,
		CloseIssues:  truthy(opts.closeIssue),
		Logger:       logger,
	})
	return publisher.Run(cmd.Context())
}
