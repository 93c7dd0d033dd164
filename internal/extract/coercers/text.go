// SPDX-License-Identifier: Apache-2.0

package coercers

import (
	"regexp"
	"strings"

	"github.com/issuepage/issuepage/internal/extract"
)

// subHeading matches headings one level below extract.HeadingPrefix.
var subHeading = regexp.MustCompile(`(?m)^#### `)

// TextCoercer returns free text. Depending on the hint it promotes
// sub-headings, indents continuation lines, or protects the value for YAML.
type TextCoercer struct{}

// NewText creates a new TextCoercer.
func NewText() *TextCoercer {
	return &TextCoercer{}
}

func (c *TextCoercer) Type() extract.FieldType {
	return extract.TypeText
}

func (c *TextCoercer) Coerce(text string, hint extract.FieldHint) (any, bool) {
	if hint.FixHeading {
		text = subHeading.ReplaceAllString(text, extract.HeadingPrefix)
	}
	// indentation and escaping are mutually exclusive
	if hint.Indent > 0 {
		return strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(" ", hint.Indent)), true
	}
	if hint.ID == extract.BodyKey {
		return text, true
	}
	return extract.Protect(text), true
}
