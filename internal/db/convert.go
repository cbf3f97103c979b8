package db

import (
	"github.com/daniilsolovey/old-ruins/internal/content"
)

func NewContentCategory(c Category) content.Category {
	return content.Category{
		Slug:        c.Slug,
		Title:       c.Title,
		Description: deref(c.Description),
	}
}

func NewContentCategories(list []Category) []content.Category {
	result := make([]content.Category, len(list))
	for i := range list {
		result[i] = NewContentCategory(list[i])
	}
	return result
}

func NewContentPost(p Post) content.Post {
	post := content.Post{
		Title:       p.Title,
		Slug:        p.Slug,
		PublishedAt: deref(p.PublishedAt),
		Excerpt:     deref(p.Excerpt),
		Author:      deref(p.Author),
		ImageURL:    deref(p.ImageURL),
		Body:        p.Body,
	}

	if p.Category != nil {
		post.CategorySlug = p.Category.Slug
		post.CategoryTitle = p.Category.Title
	}

	return post
}

func NewContentPosts(list []Post) []content.Post {
	result := make([]content.Post, len(list))
	for i := range list {
		result[i] = NewContentPost(list[i])
	}
	return result
}

func NewCategory(c content.Category) Category {
	return Category{
		Slug:        c.Slug,
		Title:       c.Title,
		Description: ptr(c.Description),
	}
}

func NewPost(p content.Post, categoryID *int) Post {
	body := p.Body
	if body == nil {
		body = []content.Block{}
	}

	return Post{
		Slug:        p.Slug,
		CategoryID:  categoryID,
		Title:       p.Title,
		PublishedAt: ptr(p.PublishedAt),
		Excerpt:     ptr(p.Excerpt),
		Author:      ptr(p.Author),
		ImageURL:    ptr(p.ImageURL),
		Body:        body,
	}
}

// ptr maps an absent optional string to NULL.
func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
