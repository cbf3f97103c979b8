package portabletext

import (
	"html"
	"strings"

	"github.com/daniilsolovey/old-ruins/internal/content"
	"github.com/microcosm-cc/bluemonday"
)

var policy *bluemonday.Policy

func init() {
	policy = bluemonday.UGCPolicy()
	policy.AllowElements("u", "s")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
}

var blockTags = map[string]string{
	"normal":     "p",
	"h1":         "h1",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"h5":         "h5",
	"h6":         "h6",
	"blockquote": "blockquote",
}

var decoratorTags = map[string]string{
	"strong":         "strong",
	"em":             "em",
	"code":           "code",
	"underline":      "u",
	"strike-through": "s",
}

// ToHTML renders body blocks to sanitized HTML. Unknown block types are
// skipped, unknown styles render as paragraphs.
func ToHTML(blocks []content.Block) string {
	var r renderer
	for _, b := range blocks {
		if b.Type != "" && b.Type != "block" {
			continue
		}
		r.block(b)
	}
	r.closeLists(0)

	return policy.Sanitize(r.sb.String())
}

// PlainText returns the text of the body, one paragraph per block.
func PlainText(blocks []content.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Type != "" && b.Type != "block" {
			continue
		}
		if text := strings.TrimSpace(b.Text()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Summary returns at most n runes of the plain text, cut at a word boundary.
func Summary(blocks []content.Block, n int) string {
	text := strings.Join(strings.Fields(PlainText(blocks)), " ")
	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return text
	}

	cut := string(runes[:n])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, ",.;: ") + "…"
}

type renderer struct {
	sb strings.Builder
	// lists holds the open list tag per nesting level.
	lists []string
}

func (r *renderer) block(b content.Block) {
	if b.ListItem == "" {
		r.closeLists(0)
		tag, ok := blockTags[b.Style]
		if !ok {
			tag = "p"
		}
		r.sb.WriteString("<" + tag + ">")
		r.spans(b)
		r.sb.WriteString("</" + tag + ">")
		return
	}

	level := max(b.Level, 1)
	tag := "ul"
	if b.ListItem == "number" {
		tag = "ol"
	}

	r.closeLists(level)
	if len(r.lists) == level && r.lists[level-1] != tag {
		r.closeLists(level - 1)
	}
	for len(r.lists) < level {
		r.sb.WriteString("<" + tag + ">")
		r.lists = append(r.lists, tag)
	}

	r.sb.WriteString("<li>")
	r.spans(b)
	r.sb.WriteString("</li>")
}

// closeLists closes open lists deeper than level.
func (r *renderer) closeLists(level int) {
	for len(r.lists) > level {
		last := len(r.lists) - 1
		r.sb.WriteString("</" + r.lists[last] + ">")
		r.lists = r.lists[:last]
	}
}

func (r *renderer) spans(b content.Block) {
	links := make(map[string]string, len(b.MarkDefs))
	for _, d := range b.MarkDefs {
		if d.Type == "link" && d.Href != "" {
			links[d.Key] = d.Href
		}
	}

	for _, s := range b.Children {
		var closing []string
		for _, m := range s.Marks {
			if tag, ok := decoratorTags[m]; ok {
				r.sb.WriteString("<" + tag + ">")
				closing = append(closing, "</"+tag+">")
			} else if href, ok := links[m]; ok {
				r.sb.WriteString(`<a href="` + html.EscapeString(href) + `">`)
				closing = append(closing, "</a>")
			}
		}

		r.sb.WriteString(strings.ReplaceAll(html.EscapeString(s.Text), "\n", "<br>"))

		for i := len(closing) - 1; i >= 0; i-- {
			r.sb.WriteString(closing[i])
		}
	}
}
