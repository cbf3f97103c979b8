package content

import (
	"context"
	"strings"
)

// Category is a category document as authored in the studio.
type Category struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Post is a post document with its category reference resolved.
// Empty strings mean the optional field is absent.
type Post struct {
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	PublishedAt   string  `json:"publishedAt,omitempty"`
	Excerpt       string  `json:"excerpt,omitempty"`
	Author        string  `json:"author,omitempty"`
	CategorySlug  string  `json:"categorySlug,omitempty"`
	CategoryTitle string  `json:"categoryLabel,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	Body          []Block `json:"body,omitempty"`
}

// PostList is one slice of the newest-first post list plus the overall count.
type PostList struct {
	Items []Post `json:"items"`
	Total int    `json:"total"`
}

// Block is a Portable Text block. Only "block" typed entries carry Children.
type Block struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key,omitempty"`
	Style    string    `json:"style,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`
}

// Span is an inline run of text inside a Block.
type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key,omitempty"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// MarkDef is an annotation referenced from Span.Marks by key.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}

// Text joins the text of all spans in the block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Children {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Store is the read-only query surface of a content backend.
// Lookups that match nothing return nil and no error.
type Store interface {
	// Posts returns posts ordered by publishedAt descending, sliced [start, end).
	Posts(ctx context.Context, start, end int) (*PostList, error)
	CategoryBySlug(ctx context.Context, slug string) (*Category, error)
	// PostsByCategory returns every post in the category, newest first.
	PostsByCategory(ctx context.Context, slug string) ([]Post, error)
	PostBySlug(ctx context.Context, slug string) (*Post, error)
	Categories(ctx context.Context) ([]Category, error)
}
