// SPDX-License-Identifier: Apache-2.0

package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/issuepage/issuepage/internal/extract"
	"github.com/issuepage/issuepage/internal/extract/coercers"
)

// ---------------------------------------------------------------------------
// Segment
// ---------------------------------------------------------------------------

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []extract.Section
	}{
		{
			name: "headings split sections in order",
			body: "### Summary\nHello\n\n### Details\nline one\nline two\n",
			want: []extract.Section{
				{Label: "Summary", Text: "Hello"},
				{Label: "Details", Text: "line one\nline two"},
			},
		},
		{
			name: "text before the first heading is dropped",
			body: "preamble text\n### Only\nvalue",
			want: []extract.Section{{Label: "Only", Text: "value"}},
		},
		{
			name: "no heading yields a single body section",
			body: "just some text\nwith lines",
			want: []extract.Section{{Label: "body", Text: "just some text\nwith lines"}},
		},
		{
			name: "labels are trimmed",
			body: "###    Padded Label   \nx",
			want: []extract.Section{{Label: "Padded Label", Text: "x"}},
		},
		{
			name: "deeper headings stay inside the section",
			body: "### Top\n#### Nested\ntext",
			want: []extract.Section{{Label: "Top", Text: "#### Nested\ntext"}},
		},
		{
			name: "empty heading text is not a heading",
			body: "###   \n### Real\nvalue",
			want: []extract.Section{{Label: "Real", Text: "value"}},
		},
		{
			name: "heading without content yields empty text",
			body: "### Empty\n### Next\nvalue",
			want: []extract.Section{
				{Label: "Empty", Text: ""},
				{Label: "Next", Text: "value"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.Segment(tt.body)
			assert.Equal(t, tt.want, got.List())
		})
	}
}

func TestSegment_CountMatchesHeadings(t *testing.T) {
	for k := 1; k <= 5; k++ {
		var b strings.Builder
		for i := 0; i < k; i++ {
			b.WriteString("### Label ")
			b.WriteByte(byte('A' + i))
			b.WriteString("\ncontent\n")
		}
		sections := extract.Segment(b.String())
		require.Equal(t, k, sections.Len())
		assert.Equal(t, "Label A", sections.List()[0].Label)
	}
}

func TestSegment_RepeatedLabelOverwrites(t *testing.T) {
	sections := extract.Segment("### Name\nfirst\n### Other\nx\n### Name\nsecond")

	require.Equal(t, 2, sections.Len())
	text, ok := sections.Get("Name")
	require.True(t, ok)
	assert.Equal(t, "second", text)
	// position is that of the first occurrence
	assert.Equal(t, "Name", sections.List()[0].Label)
}

// ---------------------------------------------------------------------------
// Protect
// ---------------------------------------------------------------------------

func TestProtect(t *testing.T) {
	assert.Equal(t, `"-"`, extract.Protect("-"))
	assert.Equal(t, `":"`, extract.Protect(":"))
	assert.Equal(t, "hello world", extract.Protect("hello world"))
	assert.Equal(t, 42, extract.Protect(42))
	assert.Equal(t, true, extract.Protect(true))
	assert.Nil(t, extract.Protect(nil))
}

func TestProtect_NeverMultiline(t *testing.T) {
	inputs := []string{
		"line one\nline two",
		"trailing newline\n",
		"\n\n",
		"windows\r\nline",
		"key: value\nother: thing",
		"- item\n- item",
		"quote \" and 'single'\nnext",
		"",
	}
	for _, in := range inputs {
		out, ok := extract.Protect(in).(string)
		require.True(t, ok, "input %q", in)
		assert.NotContains(t, out, "\n", "input %q", in)
	}
}

func TestProtect_ReadsBackAsScalar(t *testing.T) {
	inputs := []string{
		"plain value",
		"-",
		":",
		"? q",
		"?",
		"a\u2028b",
		"a\u2029b",
		"next\u0085line",
		"key: value",
		"# comment",
		"value # trailing",
		"- item",
		"[flow]",
		"{flow: map}",
		"&anchor",
		"*alias",
		"!tag",
		"|literal",
		">folded",
		"%directive",
		"@reserved",
		"`backtick",
		"true",
		"null",
		"~",
		"42",
		"0x1F",
		"1e3",
		"2024-03-01",
		" leading space",
		"trailing space ",
		"tab\there",
		"bell\a",
		"quote \" and 'single'",
		"line one\nline two",
		"windows\r\nline",
		"",
	}
	for _, in := range inputs {
		out, ok := extract.Protect(in).(string)
		require.True(t, ok, "input %q", in)
		assert.NotContains(t, out, "\n", "input %q", in)

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal([]byte("k: "+out), &doc), "input %q output %q", in, out)
		assert.Equal(t, in, doc["k"], "input %q output %q", in, out)
	}
}

// ---------------------------------------------------------------------------
// SplitDateTime / ParseFieldType
// ---------------------------------------------------------------------------

func TestSplitDateTime(t *testing.T) {
	assert.Equal(t, extract.DateTime{Date: "2024-03-01", Time: "12:30:00Z"}, extract.SplitDateTime("2024-03-01T12:30:00Z"))
	assert.Equal(t, extract.DateTime{Date: "2024-03-01", Time: "12:30"}, extract.SplitDateTime("2024-03-01 12:30"))
	assert.Equal(t, extract.DateTime{Date: "2024-03-01"}, extract.SplitDateTime("2024-03-01"))
}

func TestParseFieldType(t *testing.T) {
	for _, ft := range extract.FieldTypes {
		got, err := extract.ParseFieldType(string(ft))
		require.NoError(t, err)
		assert.Equal(t, ft, got)
	}

	got, err := extract.ParseFieldType("")
	require.NoError(t, err)
	assert.Equal(t, extract.TypeText, got)

	_, err = extract.ParseFieldType("radio")
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// Resolver
// ---------------------------------------------------------------------------

func newResolver(hints ...extract.FieldHint) *extract.Resolver {
	return extract.NewResolver(hints, coercers.Default()...)
}

func TestResolver_Resolve(t *testing.T) {
	r := newResolver(
		extract.FieldHint{Label: "Summary", ID: "body"},
		extract.FieldHint{Label: "Tags", ID: "tags", Type: extract.TypeList},
		extract.FieldHint{Label: "When", ID: "when", Type: extract.TypeDate},
	)
	sections := extract.Segment("### Summary\nHello\nWorld\n### Tags\n- a\n- b\n### When\n2024-01-02T10:00\n### Unknown\nignored")

	fields, ok := r.Resolve(sections)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"body": "Hello\nWorld",
		"tags": []string{"a", "b"},
		"when": extract.DateTime{Date: "2024-01-02", Time: "10:00"},
	}, fields)
}

func TestResolver_HintWithoutIDIsInert(t *testing.T) {
	r := newResolver(extract.FieldHint{Label: "Title"})

	for _, text := range []string{"anything", "- a\n- b", "", "### nested"} {
		fields, ok := r.Resolve(extract.Segment("### Title\n" + text))
		assert.False(t, ok)
		assert.Nil(t, fields)
	}
}

func TestResolver_NoResponseIsDropped(t *testing.T) {
	r := newResolver(
		extract.FieldHint{Label: "Summary", ID: "body"},
		extract.FieldHint{Label: "Tags", ID: "tags", Type: extract.TypeList},
	)
	fields, ok := r.Resolve(extract.Segment("### Summary\nHi\n### Tags\n_No response_"))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"body": "Hi"}, fields)
}

func TestResolver_NothingKept(t *testing.T) {
	r := newResolver(extract.FieldHint{Label: "Summary", ID: "body"})
	fields, ok := r.Resolve(extract.Segment("### Other\nvalue"))
	assert.False(t, ok)
	assert.Nil(t, fields)
}

// Duplicate labels: the first declared hint shadows the others. This may not
// be what schema authors expect, so it is pinned here.
func TestResolver_FirstHintWins(t *testing.T) {
	r := newResolver(
		extract.FieldHint{Label: "Name", ID: "first"},
		extract.FieldHint{Label: "Name", ID: "second", Type: extract.TypeList},
	)
	fields, ok := r.Resolve(extract.Segment("### Name\nplain value"))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"first": "plain value"}, fields)

	hint, ok := r.Hint("Name")
	require.True(t, ok)
	assert.Equal(t, "first", hint.ID)
}

func TestResolver_ShadowingHintWithoutID(t *testing.T) {
	r := newResolver(
		extract.FieldHint{Label: "Name"},
		extract.FieldHint{Label: "Name", ID: "name"},
	)
	_, ok := r.Resolve(extract.Segment("### Name\nvalue"))
	assert.False(t, ok)
}

func TestResolver_HintLabelIsTrimmed(t *testing.T) {
	r := newResolver(extract.FieldHint{Label: "  Summary ", ID: "body"})
	fields, ok := r.Resolve(extract.Segment("### Summary\nHi"))
	require.True(t, ok)
	assert.Equal(t, "Hi", fields["body"])
}

func TestResolver_UnregisteredTypeIsDropped(t *testing.T) {
	r := extract.NewResolver([]extract.FieldHint{{Label: "Tags", ID: "tags", Type: extract.TypeList}}, coercers.NewText())
	_, ok := r.Resolve(extract.Segment("### Tags\n- a"))
	assert.False(t, ok)
}
