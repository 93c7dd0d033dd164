// SPDX-License-Identifier: Apache-2.0

package coercers

import (
	"strings"

	"github.com/issuepage/issuepage/internal/extract"
)

// ListCoercer collects "- item" lines into a slice of protected strings.
type ListCoercer struct{}

// NewList creates a new ListCoercer.
func NewList() *ListCoercer {
	return &ListCoercer{}
}

func (c *ListCoercer) Type() extract.FieldType {
	return extract.TypeList
}

func (c *ListCoercer) Coerce(text string, _ extract.FieldHint) (any, bool) {
	items := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		item := strings.TrimSpace(strings.TrimPrefix(line, "- "))
		if item == "" {
			continue
		}
		items = append(items, extract.Protect(item).(string))
	}
	return items, true
}
