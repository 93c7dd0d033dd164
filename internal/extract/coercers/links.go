// SPDX-License-Identifier: Apache-2.0

package coercers

import (
	"regexp"

	"github.com/issuepage/issuepage/internal/extract"
)

var (
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
	// also matches the bracketed part of an image reference
	linkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)
)

// LinkCoercer extracts markdown links or images. In single mode it keeps the
// first match, otherwise all of them in order.
type LinkCoercer struct {
	fieldType extract.FieldType
	pattern   *regexp.Regexp
	all       bool
}

// NewImage creates a LinkCoercer returning the first image link.
func NewImage() *LinkCoercer {
	return &LinkCoercer{fieldType: extract.TypeImage, pattern: imagePattern}
}

// NewImages creates a LinkCoercer returning every image link.
func NewImages() *LinkCoercer {
	return &LinkCoercer{fieldType: extract.TypeImages, pattern: imagePattern, all: true}
}

// NewFile creates a LinkCoercer returning the first link.
func NewFile() *LinkCoercer {
	return &LinkCoercer{fieldType: extract.TypeFile, pattern: linkPattern}
}

// NewFiles creates a LinkCoercer returning every link.
func NewFiles() *LinkCoercer {
	return &LinkCoercer{fieldType: extract.TypeFiles, pattern: linkPattern, all: true}
}

func (c *LinkCoercer) Type() extract.FieldType {
	return c.fieldType
}

func (c *LinkCoercer) Coerce(text string, _ extract.FieldHint) (any, bool) {
	links := FindLinks(c.pattern, text)
	if c.all {
		return links, true
	}
	if len(links) == 0 {
		return nil, false
	}
	return links[0], true
}

// FindLinks returns every name/url pair matched by pattern, in order.
func FindLinks(pattern *regexp.Regexp, text string) []extract.Link {
	matches := pattern.FindAllStringSubmatch(text, -1)
	links := make([]extract.Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, extract.Link{Name: m[1], URL: m[2]})
	}
	return links
}

// Links returns every markdown link in text, including image references.
func Links(text string) []extract.Link {
	return FindLinks(linkPattern, text)
}
