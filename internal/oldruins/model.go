package oldruins

import "github.com/daniilsolovey/old-ruins/internal/content"

// PostPreview is the list-card view model of a post. Every field is populated.
type PostPreview struct {
	Title         string
	Slug          string
	Excerpt       string
	Author        string
	PublishedAt   string
	CategorySlug  string
	CategoryLabel string
	Cover         Cover
}

// PostDetail is the single-post view model. Body blocks are passed through
// untouched for the block renderer.
type PostDetail struct {
	PostPreview
	Body []content.Block
}

// PostPage is one page of the full post list.
type PostPage struct {
	Posts      []PostPreview
	Pagination Pagination
}

// CategoryPage is a category header plus every post in it.
type CategoryPage struct {
	Slug        string
	Title       string
	Description string
	// Found is false when no category document matches Slug.
	Found bool
	Posts []PostPreview
}

// Category is a navigation entry.
type Category struct {
	Slug        string
	Title       string
	Description string
}
