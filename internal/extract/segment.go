// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strings"
)

// HeadingPrefix marks the start of a section in an issue-form body.
const HeadingPrefix = "### "

// Sections is an ordered label → text mapping. A label keeps the position of
// its first occurrence; setting it again replaces the text.
type Sections struct {
	order []string
	text  map[string]string
}

// NewSections returns an empty Sections.
func NewSections() *Sections {
	return &Sections{text: make(map[string]string)}
}

// Set stores text under label.
func (s *Sections) Set(label, text string) {
	if _, ok := s.text[label]; !ok {
		s.order = append(s.order, label)
	}
	s.text[label] = text
}

// Get returns the text stored under label.
func (s *Sections) Get(label string) (string, bool) {
	text, ok := s.text[label]
	return text, ok
}

// Len returns the number of distinct labels.
func (s *Sections) Len() int {
	return len(s.order)
}

// List returns the sections in order of first appearance.
func (s *Sections) List() []Section {
	out := make([]Section, 0, len(s.order))
	for _, label := range s.order {
		out = append(out, Section{Label: label, Text: s.text[label]})
	}
	return out
}

type segmentState int

const (
	awaitingHeading segmentState = iota
	inSection
)

// Segment splits an issue body into sections on lines starting with
// HeadingPrefix. Text before the first heading is dropped. A body without
// any heading is returned as a single section under BodyKey.
func Segment(body string) *Sections {
	sections := NewSections()
	lines := strings.Split(body, "\n")

	state := awaitingHeading
	var label string
	var current []string

	flush := func() {
		sections.Set(label, strings.TrimSpace(strings.Join(current, "\n")))
	}

	for _, line := range lines {
		heading, ok := headingLabel(line)
		switch {
		case ok && state == inSection:
			flush()
			fallthrough
		case ok:
			state = inSection
			label = heading
			current = nil
		case state == inSection:
			current = append(current, line)
		}
	}

	if state == awaitingHeading {
		sections.Set(BodyKey, body)
		return sections
	}
	flush()
	return sections
}

func headingLabel(line string) (string, bool) {
	line = strings.TrimRight(line, "\r")
	if !strings.HasPrefix(line, HeadingPrefix) {
		return "", false
	}
	label := strings.TrimSpace(strings.TrimPrefix(line, HeadingPrefix))
	if label == "" {
		return "", false
	}
	return label, true
}
