package oldruins

import (
	"strings"

	"github.com/daniilsolovey/old-ruins/internal/content"
)

const (
	// DefaultAuthor is shown when a post has no author.
	DefaultAuthor = "Joseph"
	// UncategorizedLabel is shown when a post's category did not resolve.
	UncategorizedLabel = "Uncategorized"

	defaultCategoryTitle       = "Category"
	defaultCategoryDescription = "Posts in this category."
)

// NewPostPreview maps a post document to a fully populated preview.
func NewPostPreview(p content.Post) PostPreview {
	preview := PostPreview{
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Author:        p.Author,
		PublishedAt:   truncateDate(p.PublishedAt),
		CategorySlug:  p.CategorySlug,
		CategoryLabel: p.CategoryTitle,
		Cover:         NewCover(p.ImageURL, p.CategorySlug),
	}

	if preview.Author == "" {
		preview.Author = DefaultAuthor
	}
	if preview.CategoryLabel == "" {
		preview.CategoryLabel = UncategorizedLabel
	}

	return preview
}

// NewPostDetail maps a post document to the single-post view model.
func NewPostDetail(p content.Post) PostDetail {
	body := p.Body
	if body == nil {
		body = []content.Block{}
	}

	return PostDetail{
		PostPreview: NewPostPreview(p),
		Body:        body,
	}
}

func NewPostPreviews(posts []content.Post) []PostPreview {
	result := make([]PostPreview, len(posts))
	for i := range posts {
		result[i] = NewPostPreview(posts[i])
	}
	return result
}

func NewCategory(c content.Category) Category {
	return Category{
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,
	}
}

func NewCategories(list []content.Category) []Category {
	result := make([]Category, len(list))
	for i := range list {
		result[i] = NewCategory(list[i])
	}
	return result
}

// NewCategoryPage builds the category header. A missing document or missing
// fields fall back to a label derived from the slug and a fixed description.
func NewCategoryPage(slug string, c *content.Category, posts []content.Post) CategoryPage {
	page := CategoryPage{
		Slug:        slug,
		Title:       categoryTitleFromSlug(slug),
		Description: defaultCategoryDescription,
		Posts:       NewPostPreviews(posts),
	}

	if c != nil {
		page.Found = true
		if c.Title != "" {
			page.Title = c.Title
		}
		if c.Description != "" {
			page.Description = c.Description
		}
	}

	return page
}

func categoryTitleFromSlug(slug string) string {
	if slug == "" {
		return defaultCategoryTitle
	}
	return strings.ReplaceAll(slug, "-", " ")
}
