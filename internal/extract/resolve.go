// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strings"
)

// Resolver maps segmented sections to typed output fields using a list of
// FieldHints.
//
// Hints are indexed by label once. When several hints share a label only the
// first one in declaration order is ever used; the rest are shadowed.
type Resolver struct {
	byLabel  map[string][]FieldHint
	coercers map[FieldType]Coercer
}

// NewResolver creates a Resolver for hints. Coercers are looked up by their
// Type; a later coercer for the same type replaces an earlier one.
func NewResolver(hints []FieldHint, coercers ...Coercer) *Resolver {
	r := &Resolver{
		byLabel:  make(map[string][]FieldHint, len(hints)),
		coercers: make(map[FieldType]Coercer, len(coercers)),
	}
	for _, h := range hints {
		label := strings.TrimSpace(h.Label)
		r.byLabel[label] = append(r.byLabel[label], h)
	}
	for _, c := range coercers {
		r.coercers[c.Type()] = c
	}
	return r
}

// Hint returns the hint that governs label, if any.
func (r *Resolver) Hint(label string) (FieldHint, bool) {
	hints := r.byLabel[label]
	if len(hints) == 0 {
		return FieldHint{}, false
	}
	return hints[0], true
}

// Resolve coerces every section that has a matching hint. The boolean result
// is false when no section produced a value.
func (r *Resolver) Resolve(sections *Sections) (map[string]any, bool) {
	fields := make(map[string]any)
	for _, section := range sections.List() {
		hint, ok := r.Hint(section.Label)
		if !ok || hint.ID == "" {
			continue
		}
		value, ok := r.coerce(section.Text, hint)
		if !ok {
			continue
		}
		fields[hint.ID] = value
	}
	if len(fields) == 0 {
		return nil, false
	}
	return fields, true
}

func (r *Resolver) coerce(text string, hint FieldHint) (any, bool) {
	text = strings.TrimSpace(text)
	if text == NoResponse {
		return nil, false
	}
	c, ok := r.coercers[hint.FieldType()]
	if !ok {
		return nil, false
	}
	return c.Coerce(text, hint)
}
