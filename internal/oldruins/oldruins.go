package oldruins

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daniilsolovey/old-ruins/internal/content"
	"github.com/daniilsolovey/old-ruins/internal/search"
	"golang.org/x/sync/errgroup"
)

type Manager struct {
	store content.Store
	index *search.Index
	log   *slog.Logger
}

// NewManager creates a Manager. index may be nil, which disables search.
func NewManager(store content.Store, index *search.Index, logger *slog.Logger) *Manager {
	return &Manager{
		store: store,
		index: index,
		log:   logger,
	}
}

// Latest returns the n newest posts.
func (m *Manager) Latest(ctx context.Context, n int) ([]PostPreview, error) {
	if n < 1 {
		return []PostPreview{}, nil
	}

	list, err := m.store.Posts(ctx, 0, n)
	if err != nil {
		return nil, fmt.Errorf("store get latest posts: %w", err)
	}

	return NewPostPreviews(list.Items), nil
}

// ListPage returns one page of the newest-first post list. A page beyond the
// last one is clamped and its slice fetched again, so the result never holds
// an out-of-range slice.
func (m *Manager) ListPage(ctx context.Context, page int) (*PostPage, error) {
	page = max(page, 1)
	start := (page - 1) * PageSize

	list, err := m.store.Posts(ctx, start, start+PageSize)
	if err != nil {
		return nil, fmt.Errorf("store get posts: %w", err)
	}

	pagination := NewPagination(page, list.Total)
	if pagination.Page != page {
		m.log.Debug("requested page out of range", "page", page, "clamped", pagination.Page, "total", list.Total)

		list, err = m.store.Posts(ctx, pagination.Start(), pagination.End())
		if err != nil {
			return nil, fmt.Errorf("store get posts: %w", err)
		}
		pagination = NewPagination(pagination.Page, list.Total)
	}

	items := list.Items
	if len(items) > pagination.PageSize {
		items = items[:pagination.PageSize]
	}

	return &PostPage{
		Posts:      NewPostPreviews(items),
		Pagination: pagination,
	}, nil
}

// CategoryPage fetches the category document and its posts concurrently and
// returns once both are done.
func (m *Manager) CategoryPage(ctx context.Context, slug string) (*CategoryPage, error) {
	var (
		category *content.Category
		posts    []content.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := m.store.CategoryBySlug(gctx, slug)
		if err != nil {
			return fmt.Errorf("store get category: %w", err)
		}
		category = c
		return nil
	})
	g.Go(func() error {
		list, err := m.store.PostsByCategory(gctx, slug)
		if err != nil {
			return fmt.Errorf("store get category posts: %w", err)
		}
		posts = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	page := NewCategoryPage(slug, category, posts)
	return &page, nil
}

// PostDetail returns the post with the given slug, or nil when none exists.
func (m *Manager) PostDetail(ctx context.Context, slug string) (*PostDetail, error) {
	post, err := m.store.PostBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("store get post by slug: %w", err)
	} else if post == nil {
		return nil, nil
	}

	detail := NewPostDetail(*post)
	return &detail, nil
}

func (m *Manager) Categories(ctx context.Context) ([]Category, error) {
	list, err := m.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("store get categories: %w", err)
	}

	return NewCategories(list), nil
}

// Search returns previews of the posts matching q, best match first.
func (m *Manager) Search(ctx context.Context, q string) ([]PostPreview, error) {
	if m.index == nil {
		return []PostPreview{}, nil
	}

	posts, err := m.index.Search(q, search.DefaultLimit)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}

	return NewPostPreviews(posts), nil
}

// Reindex reloads the search index from the store.
func (m *Manager) Reindex(ctx context.Context) error {
	if m.index == nil {
		return nil
	}

	if err := m.index.Rebuild(ctx, m.store); err != nil {
		return fmt.Errorf("rebuild search index: %w", err)
	}

	return nil
}
