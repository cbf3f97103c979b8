package rest

import "github.com/daniilsolovey/old-ruins/internal/content"

type Cover struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Gradient string `json:"gradient,omitempty"`
	CSS      string `json:"css"`
}

type PostSummary struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"`
	Author        string `json:"author"`
	PublishedAt   string `json:"publishedAt"`
	CategorySlug  string `json:"categorySlug"`
	CategoryLabel string `json:"categoryLabel"`
	Cover         Cover  `json:"cover"`
}

type Post struct {
	PostSummary
	Body     []content.Block `json:"body"`
	BodyHTML string          `json:"bodyHtml"`
}

type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
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
	Found bool          `json:"found"`
	Posts []PostSummary `json:"posts"`
}
