// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/issuepage/issuepage/internal/publish"
	"github.com/issuepage/issuepage/internal/render"
	"github.com/issuepage/issuepage/internal/schema"
)

func newExtractCmd() *cobra.Command {
	var hints, title string
	cmd := &cobra.Command{
		Use:   "extract [FILE]",
		Short: "Print the context record extracted from an issue body",
		Long: `extract runs the field extraction on an issue body read from FILE, or
stdin when FILE is omitted or "-", and prints the resulting context record
as YAML. Attachments are not downloaded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, args)
			if err != nil {
				return err
			}
			s, err := schema.Load(hints)
			if err != nil {
				return err
			}
			return printRecord(cmd.OutOrStdout(), s, title, body)
		},
	}
	cmd.Flags().StringVar(&hints, "issue-template", envOr("", envHints), "hint schema file")
	cmd.Flags().StringVar(&title, "title", "", "issue title placed in the record")
	return cmd
}

func readBody(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

func printRecord(w io.Writer, s *schema.Schema, title, body string) error {
	p := publish.NewPublisher(nil, nil, nil, nil, publish.Config{Schema: s, Logger: logger})
	fields := p.Fields(body)
	record := render.Normalize(p.Record(publish.Issue{Title: title}, fields))

	out, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	_, err = w.Write(out)
	return err
}
