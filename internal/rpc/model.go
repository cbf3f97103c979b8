package rpc

import "github.com/daniilsolovey/old-ruins/internal/content"

type PostSummary struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"`
	Author        string `json:"author"`
	PublishedAt   string `json:"publishedAt"`
	CategorySlug  string `json:"categorySlug"`
	CategoryLabel string `json:"categoryLabel"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`
	CoverCSS      string `json:"coverCss"`
}

type Post struct {
	PostSummary
	Body     []content.Block `json:"body"`
	BodyHTML string          `json:"bodyHtml"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PostPage struct {
	Posts      []PostSummary `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

type Category struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CategoryPage struct {
	Category
	//found is false when no category document matches the slug
	Found bool          `json:"found"`
	Posts []PostSummary `json:"posts"`
}
