package portabletext

import (
	"strings"
	"testing"

	"github.com/daniilsolovey/old-ruins/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textBlock(style, text string, marks ...string) content.Block {
	return content.Block{
		Type:     "block",
		Style:    style,
		Children: []content.Span{{Type: "span", Text: text, Marks: marks}},
	}
}

func listItem(kind string, level int, text string) content.Block {
	b := textBlock("normal", text)
	b.ListItem = kind
	b.Level = level
	return b
}

func TestToHTML_Styles(t *testing.T) {
	tests := []struct {
		name     string
		block    content.Block
		expected string
	}{
		{"paragraph", textBlock("normal", "Hello"), "<p>Hello</p>"},
		{"heading", textBlock("h2", "Grace"), "<h2>Grace</h2>"},
		{"blockquote", textBlock("blockquote", "Quoted"), "<blockquote>Quoted</blockquote>"},
		{"unknown style", textBlock("fancy", "Plain"), "<p>Plain</p>"},
		{"empty style", textBlock("", "Plain"), "<p>Plain</p>"},
		{"strong", textBlock("normal", "bold", "strong"), "<p><strong>bold</strong></p>"},
		{"nested marks", textBlock("normal", "both", "strong", "em"), "<p><strong><em>both</em></strong></p>"},
		{"code", textBlock("normal", "x := 1", "code"), "<p><code>x := 1</code></p>"},
		{"line break", textBlock("normal", "one\ntwo"), "<p>one<br>two</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToHTML([]content.Block{tt.block}))
		})
	}
}

func TestToHTML_EscapesText(t *testing.T) {
	out := ToHTML([]content.Block{textBlock("normal", "<script>alert(1)</script> & more")})

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "&amp; more")
}

func TestToHTML_Links(t *testing.T) {
	b := content.Block{
		Type:  "block",
		Style: "normal",
		Children: []content.Span{
			{Type: "span", Text: "Read "},
			{Type: "span", Text: "the creed", Marks: []string{"l1"}},
			{Type: "span", Text: " and ", Marks: []string{"missing"}},
			{Type: "span", Text: "this", Marks: []string{"l2"}},
		},
		MarkDefs: []content.MarkDef{
			{Key: "l1", Type: "link", Href: "https://example.com/creed"},
			{Key: "l2", Type: "link", Href: "javascript:alert(1)"},
		},
	}

	out := ToHTML([]content.Block{b})
	assert.Contains(t, out, `href="https://example.com/creed"`)
	assert.Contains(t, out, ">the creed</a>")
	assert.Contains(t, out, " and ")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "this")
}

func TestToHTML_Lists(t *testing.T) {
	blocks := []content.Block{
		textBlock("normal", "Intro"),
		listItem("bullet", 1, "one"),
		listItem("bullet", 1, "two"),
		listItem("bullet", 2, "two-a"),
		listItem("number", 1, "first"),
		textBlock("normal", "Outro"),
	}

	expected := "<p>Intro</p>" +
		"<ul><li>one</li><li>two</li><ul><li>two-a</li></ul></ul>" +
		"<ol><li>first</li></ol>" +
		"<p>Outro</p>"
	assert.Equal(t, expected, ToHTML(blocks))
}

func TestToHTML_SkipsNonTextBlocks(t *testing.T) {
	blocks := []content.Block{
		{Type: "image", Key: "img1"},
		textBlock("normal", "After image"),
	}
	assert.Equal(t, "<p>After image</p>", ToHTML(blocks))
	assert.Empty(t, ToHTML(nil))
}

func TestPlainText(t *testing.T) {
	blocks := []content.Block{
		textBlock("h2", "Title"),
		{Type: "image"},
		textBlock("normal", "  "),
		textBlock("normal", "Body <b>text</b>"),
	}
	assert.Equal(t, "Title\n\nBody <b>text</b>", PlainText(blocks))
}

func TestSummary(t *testing.T) {
	blocks := []content.Block{textBlock("normal", "The quick brown fox jumps over the lazy dog.")}

	assert.Equal(t, "The quick brown fox jumps over the lazy dog.", Summary(blocks, 100))
	assert.Equal(t, "The quick brown…", Summary(blocks, 18))
	assert.Equal(t, "The quick brown fox jumps over the lazy dog.", Summary(blocks, 0))
}

func TestMarkdownToHTML(t *testing.T) {
	out, err := MarkdownToHTML([]byte("# About\n\nA **small** site.\n\n<script>alert(1)</script>\n"))
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 id="about">About</h1>`)
	assert.Contains(t, out, "<strong>small</strong>")
	assert.False(t, strings.Contains(out, "<script>"))
}
