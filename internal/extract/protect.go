// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	yamlv3 "gopkg.in/yaml.v3"
)

// Protect makes a string safe to place as a single-line scalar value in YAML
// output. Non-string values are returned unchanged.
//
// The result is not meant to be protected a second time.
func Protect(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	// both would otherwise be emitted bare and parse as a sequence/mapping
	switch s {
	case "-", ":":
		return `"` + s + `"`
	}

	out, err := yaml.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	quoted := strings.TrimRight(string(out), "\r\n")
	if strings.HasPrefix(quoted, "|") || strings.HasPrefix(quoted, ">") {
		// block scalars do not survive being folded onto one line
		return strconv.Quote(s)
	}
	quoted = strings.ReplaceAll(quoted, "\r\n", " ")
	quoted = strings.ReplaceAll(quoted, "\n", " ")
	if !readsBack(quoted, s) {
		return strconv.Quote(s)
	}
	return quoted
}

// readsBack reports whether scalar, placed as a mapping value, is read by a
// YAML 1.2 parser as exactly want.
func readsBack(scalar, want string) bool {
	if strings.ContainsAny(scalar, "\u0085\u2028\u2029") {
		return false
	}
	var doc map[string]any
	if err := yamlv3.Unmarshal([]byte("k: "+scalar), &doc); err != nil {
		return false
	}
	got, ok := doc["k"].(string)
	return ok && got == want
}
