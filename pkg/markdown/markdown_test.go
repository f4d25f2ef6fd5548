package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	html, err := ToHTML("# Title\n\nsome **bold** text")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestToHTMLStripsScripts(t *testing.T) {
	html, err := ToHTML("hello\n\n<script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\" onclick=\"x()\">link</a>")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "alert(1)</script>")
	assert.NotContains(t, html, "onclick")
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "hello")
}

func TestToHTMLEmpty(t *testing.T) {
	html, err := ToHTML("   \n")
	require.NoError(t, err)
	assert.Empty(t, html)
}

func TestExcerpt(t *testing.T) {
	text, err := Excerpt("<h1>Title</h1><p>first   paragraph</p>", 0)
	require.NoError(t, err)
	assert.Equal(t, "Titlefirst paragraph", strings.TrimSpace(text))

	short, err := Excerpt("<p>博客正文内容</p>", 2)
	require.NoError(t, err)
	assert.Equal(t, "博客...", short)
}
