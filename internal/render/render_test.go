// SPDX-License-Identifier: Apache-2.0

package render_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issuepage/issuepage/internal/extract"
	"github.com/issuepage/issuepage/internal/render"
)

func TestDefaultTemplate(t *testing.T) {
	r, err := render.New("")
	require.NoError(t, err)

	out, err := r.Render(context.Background(), map[string]any{
		"title":  "Hello",
		"date":   "2024-01-02",
		"time":   "03:04:05Z",
		"author": "octocat",
		"body":   "Some <b>markup</b> & text",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "title: Hello\n")
	assert.Contains(t, out, "author: octocat\n")
	assert.Contains(t, out, "Some <b>markup</b> & text")
}

func TestFromString_TypedValues(t *testing.T) {
	r, err := render.FromString(`{{ image.url }}|{% for f in flags %}{{ f.flag }}:{{ f.name }};{% endfor %}|{{ when.date }}|{{ missing }}`)
	require.NoError(t, err)

	out, err := r.Render(context.Background(), map[string]any{
		"image": extract.Link{Name: "shot", URL: "shot.png"},
		"flags": []extract.Flag{{Flag: "X", Name: "Yes"}, {Name: "No"}},
		"when":  extract.DateTime{Date: "2024-01-02", Time: "10:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, "shot.png|X:Yes;:No;|2024-01-02|", out)
}

func TestNew_FromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.tpl"), []byte("[{% block content %}{% endblock %}]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.tpl"), []byte(`{% extends "base.tpl" %}{% block content %}{{ title }}{% endblock %}`), 0o644))

	r, err := render.New(filepath.Join(dir, "page.tpl"))
	require.NoError(t, err)
	out, err := r.Render(context.Background(), map[string]any{"title": "T"})
	require.NoError(t, err)
	assert.Equal(t, "[T]", out)
}

func TestNew_Errors(t *testing.T) {
	_, err := render.New(filepath.Join(t.TempDir(), "missing.tpl"))
	require.Error(t, err)

	_, err = render.FromString("{% if %}")
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	got := render.Normalize(map[string]any{
		"files": []extract.Link{{Name: "a", URL: "a.pdf"}},
		"plain": "x",
	})
	assert.Equal(t, map[string]any{
		"files": []any{map[string]any{"name": "a", "url": "a.pdf"}},
		"plain": "x",
	}, got)
}
