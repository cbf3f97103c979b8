package rest

import (
	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	"github.com/daniilsolovey/old-ruins/internal/portabletext"
)

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewCover(c oldruins.Cover) Cover {
	return Cover{
		ImageURL: c.ImageURL,
		Gradient: c.Gradient,
		CSS:      c.CSS(),
	}
}

func NewPostSummary(p oldruins.PostPreview) PostSummary {
	return PostSummary{
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Author:        p.Author,
		PublishedAt:   p.PublishedAt,
		CategorySlug:  p.CategorySlug,
		CategoryLabel: p.CategoryLabel,
		Cover:         NewCover(p.Cover),
	}
}

func NewPost(p oldruins.PostDetail) Post {
	return Post{
		PostSummary: NewPostSummary(p.PostPreview),
		Body:        p.Body,
		BodyHTML:    portabletext.ToHTML(p.Body),
	}
}

func NewPagination(p oldruins.Pagination) Pagination {
	return Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
	}
}

func NewPostPage(p oldruins.PostPage) PostPage {
	return PostPage{
		Posts:      Map(p.Posts, NewPostSummary),
		Pagination: NewPagination(p.Pagination),
	}
}

func NewCategory(c oldruins.Category) Category {
	return Category{
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,
	}
}

func NewCategoryPage(c oldruins.CategoryPage) CategoryPage {
	return CategoryPage{
		Category: Category{
			Slug:        c.Slug,
			Title:       c.Title,
			Description: c.Description,
		},
		Found: c.Found,
		Posts: Map(c.Posts, NewPostSummary),
	}
}
