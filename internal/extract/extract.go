// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"fmt"
	"strings"
	"unicode"
)

// FieldType selects the coercion applied to a section's text.
type FieldType string

const (
	TypeText   FieldType = "text"
	TypeList   FieldType = "list"
	TypeImage  FieldType = "image"
	TypeImages FieldType = "[image]"
	TypeFile   FieldType = "file"
	TypeFiles  FieldType = "[file]"
	TypeFlag   FieldType = "flag"
	TypeFlags  FieldType = "[flag]"
	TypeDate   FieldType = "date"
	TypeTable  FieldType = "table"
)

// FieldTypes lists every supported FieldType in declaration order.
var FieldTypes = []FieldType{
	TypeText, TypeList,
	TypeImage, TypeImages,
	TypeFile, TypeFiles,
	TypeFlag, TypeFlags,
	TypeDate, TypeTable,
}

// ParseFieldType maps a schema type string to a FieldType. An empty string
// yields TypeText.
func ParseFieldType(s string) (FieldType, error) {
	if s == "" {
		return TypeText, nil
	}
	for _, t := range FieldTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown field type %q", s)
}

// BodyKey is the designated content field. A context record without a
// non-empty value under this key is not publishable.
const BodyKey = "body"

// NoResponse is what GitHub issue forms emit for fields left blank.
const NoResponse = "_No response_"

// FieldHint maps a section label to an output field.
type FieldHint struct {
	Label      string    `yaml:"label" json:"label"`
	ID         string    `yaml:"id" json:"id,omitempty"`
	Type       FieldType `yaml:"type" json:"type,omitempty"`
	Indent     int       `yaml:"indent" json:"indent,omitempty"`
	FixHeading bool      `yaml:"fix_heading" json:"fix_heading,omitempty"`
}

// FieldType returns the hint's declared type, defaulting to TypeText.
func (h FieldHint) FieldType() FieldType {
	if h.Type == "" {
		return TypeText
	}
	return h.Type
}

// Section is one heading-delimited chunk of an issue body.
type Section struct {
	Label string
	Text  string
}

// Link is a markdown link or image reference.
type Link struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Flag is one checkbox line. Flag holds "X" when checked and "" otherwise.
type Flag struct {
	Flag string `yaml:"flag" json:"flag"`
	Name string `yaml:"name" json:"name"`
}

// DateTime is a timestamp split into its date and time parts.
type DateTime struct {
	Date string `yaml:"date" json:"date"`
	Time string `yaml:"time" json:"time"`
}

// Coercer turns a section's trimmed text into a typed value. The boolean
// result is false when the text carries no usable content.
type Coercer interface {
	Type() FieldType
	Coerce(text string, hint FieldHint) (any, bool)
}

// SplitDateTime splits an ISO-like timestamp at the first 'T' or whitespace.
func SplitDateTime(s string) DateTime {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool {
		return r == 'T' || unicode.IsSpace(r)
	})
	if i < 0 {
		return DateTime{Date: s}
	}
	return DateTime{Date: s[:i], Time: strings.TrimSpace(s[i+1:])}
}
