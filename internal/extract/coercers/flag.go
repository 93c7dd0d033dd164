// SPDX-License-Identifier: Apache-2.0

package coercers

import (
	"regexp"
	"strings"

	"github.com/issuepage/issuepage/internal/extract"
)

var checkboxPattern = regexp.MustCompile(`(?m)^\s*- \[([ xX]?)\] (.*?)\s*$`)

// FlagCoercer reads checkbox list lines.
type FlagCoercer struct {
	fieldType extract.FieldType
	all       bool
}

// NewFlag creates a FlagCoercer for a single checkbox.
func NewFlag() *FlagCoercer {
	return &FlagCoercer{fieldType: extract.TypeFlag}
}

// NewFlags creates a FlagCoercer for a checkbox list.
func NewFlags() *FlagCoercer {
	return &FlagCoercer{fieldType: extract.TypeFlags, all: true}
}

func (c *FlagCoercer) Type() extract.FieldType {
	return c.fieldType
}

func (c *FlagCoercer) Coerce(text string, _ extract.FieldHint) (any, bool) {
	matches := checkboxPattern.FindAllStringSubmatch(text, -1)
	flags := make([]extract.Flag, 0, len(matches))
	for _, m := range matches {
		flags = append(flags, extract.Flag{
			Flag: strings.ToUpper(strings.TrimSpace(m[1])),
			Name: m[2],
		})
	}
	if c.all {
		return flags, true
	}
	if len(flags) == 0 {
		return nil, false
	}
	return flags[0], true
}
