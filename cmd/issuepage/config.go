// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"strings"
)

// Environment names follow the GitHub Actions convention for action inputs
// so the binary can run as an action step without extra wiring.
const (
	envToken        = "INPUT_GITHUB-TOKEN"
	envRepository   = "GITHUB_REPOSITORY"
	envLabel        = "INPUT_LABEL"
	envPublishLabel = "INPUT_PUBLISH-LABEL"
	envTargetFolder = "INPUT_TARGET-FOLDER"
	envHints        = "INPUT_ISSUE-TEMPLATE"
	envTemplate     = "INPUT_TEMPLATE"
	envCloseIssue   = "INPUT_CLOSE-ISSUE"
)

// envOr returns the first non-empty environment variable among keys.
func envOr(fallback string, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return fallback
}

// truthy accepts the spellings the action input has always accepted.
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	}
	return false
}
