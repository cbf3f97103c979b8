package sanity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daniilsolovey/old-ruins/internal/content"
)

// postProjection resolves the category reference and cover image URL.
const postProjection = `{
    title,
    "slug": slug.current,
    publishedAt,
    excerpt,
    author,
    "categorySlug": category->slug.current,
    "categoryLabel": category->title,
    "imageUrl": heroImage.asset->url
  }`

const postDetailProjection = `{
    title,
    "slug": slug.current,
    publishedAt,
    excerpt,
    author,
    "categorySlug": category->slug.current,
    "categoryLabel": category->title,
    "imageUrl": heroImage.asset->url,
    body
  }`

const categoryProjection = `{
    title,
    "slug": slug.current,
    description
  }`

var (
	listQuery = `{
  "total": count(*[_type == "post"]),
  "items": *[_type == "post"] | order(publishedAt desc)[$start...$end]` + postProjection + `
}`

	categoryBySlugQuery = `*[_type == "category" && slug.current == $slug][0]` + categoryProjection

	postsByCategoryQuery = `*[_type == "post" && category->slug.current == $slug] | order(publishedAt desc)` + postProjection

	postBySlugQuery = `*[_type == "post" && slug.current == $slug][0]` + postDetailProjection

	categoriesQuery = `*[_type == "category"] | order(title asc)` + categoryProjection

	// allPostsQuery is used by the mirror sync and includes the body.
	allPostsQuery = `*[_type == "post"] | order(publishedAt desc)` + postDetailProjection
)

// Store implements content.Store over the content API.
type Store struct {
	client *Client
	log    *slog.Logger
}

var _ content.Store = (*Store)(nil)

func NewStore(client *Client, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		log:    logger,
	}
}

func (s *Store) Posts(ctx context.Context, start, end int) (*content.PostList, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid slice bounds: start=%d, end=%d", start, end)
	}

	var list content.PostList
	params := map[string]any{"start": start, "end": end}
	if err := s.client.Fetch(ctx, "posts", listQuery, params, &list); err != nil {
		return nil, err
	}

	s.log.Debug("fetched posts", "start", start, "end", end, "items", len(list.Items), "total", list.Total)
	return &list, nil
}

func (s *Store) CategoryBySlug(ctx context.Context, slug string) (*content.Category, error) {
	var category *content.Category
	if err := s.client.Fetch(ctx, "category by slug", categoryBySlugQuery, map[string]any{"slug": slug}, &category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *Store) PostsByCategory(ctx context.Context, slug string) ([]content.Post, error) {
	posts := []content.Post{}
	if err := s.client.Fetch(ctx, "posts by category", postsByCategoryQuery, map[string]any{"slug": slug}, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *Store) PostBySlug(ctx context.Context, slug string) (*content.Post, error) {
	var post *content.Post
	if err := s.client.Fetch(ctx, "post by slug", postBySlugQuery, map[string]any{"slug": slug}, &post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *Store) Categories(ctx context.Context) ([]content.Category, error) {
	categories := []content.Category{}
	if err := s.client.Fetch(ctx, "categories", categoriesQuery, nil, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// AllPosts returns every post with its body, newest first.
func (s *Store) AllPosts(ctx context.Context) ([]content.Post, error) {
	posts := []content.Post{}
	if err := s.client.Fetch(ctx, "all posts", allPostsQuery, nil, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}
