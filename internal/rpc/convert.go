package rpc

import (
	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	"github.com/daniilsolovey/old-ruins/internal/portabletext"
)

func NewPostSummary(p oldruins.PostPreview) PostSummary {
	return PostSummary{
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Author:        p.Author,
		PublishedAt:   p.PublishedAt,
		CategorySlug:  p.CategorySlug,
		CategoryLabel: p.CategoryLabel,
		CoverImageURL: p.Cover.ImageURL,
		CoverCSS:      p.Cover.CSS(),
	}
}

func NewPostSummaries(list []oldruins.PostPreview) []PostSummary {
	result := make([]PostSummary, len(list))
	for i := range list {
		result[i] = NewPostSummary(list[i])
	}
	return result
}

func NewPost(p oldruins.PostDetail) Post {
	return Post{
		PostSummary: NewPostSummary(p.PostPreview),
		Body:        p.Body,
		BodyHTML:    portabletext.ToHTML(p.Body),
	}
}

func NewPostPage(p oldruins.PostPage) PostPage {
	return PostPage{
		Posts: NewPostSummaries(p.Posts),
		Pagination: Pagination{
			Page:       p.Pagination.Page,
			PageSize:   p.Pagination.PageSize,
			Total:      p.Pagination.Total,
			TotalPages: p.Pagination.TotalPages,
		},
	}
}

func NewCategory(c oldruins.Category) Category {
	return Category{
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,
	}
}

func NewCategories(list []oldruins.Category) []Category {
	result := make([]Category, len(list))
	for i := range list {
		result[i] = NewCategory(list[i])
	}
	return result
}

func NewCategoryPage(c oldruins.CategoryPage) CategoryPage {
	return CategoryPage{
		Category: Category{
			Slug:        c.Slug,
			Title:       c.Title,
			Description: c.Description,
		},
		Found: c.Found,
		Posts: NewPostSummaries(c.Posts),
	}
}
