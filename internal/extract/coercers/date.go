// SPDX-License-Identifier: Apache-2.0

package coercers

import (
	"github.com/issuepage/issuepage/internal/extract"
)

// DateCoercer splits a date-time answer into its date and time parts.
type DateCoercer struct{}

// NewDate creates a new DateCoercer.
func NewDate() *DateCoercer {
	return &DateCoercer{}
}

func (c *DateCoercer) Type() extract.FieldType {
	return extract.TypeDate
}

func (c *DateCoercer) Coerce(text string, _ extract.FieldHint) (any, bool) {
	if text == "" {
		return nil, false
	}
	return extract.SplitDateTime(text), true
}
