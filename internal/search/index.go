package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/daniilsolovey/old-ruins/internal/content"
	"github.com/daniilsolovey/old-ruins/internal/portabletext"
)

// DefaultLimit caps the number of search results.
const DefaultLimit = 20

// Index is an in-memory full-text index over post previews. It is rebuilt
// from the content store as a whole and swapped in atomically.
type Index struct {
	mu    sync.RWMutex
	index bleve.Index
	posts map[string]content.Post
	log   *slog.Logger
}

type document struct {
	Title    string
	Excerpt  string
	Author   string
	Category string
	Body     string
}

// bodyLoader is implemented by stores that can list posts with their bodies.
type bodyLoader interface {
	AllPosts(ctx context.Context) ([]content.Post, error)
}

func New(logger *slog.Logger) *Index {
	return &Index{
		posts: map[string]content.Post{},
		log:   logger,
	}
}

func buildIndexMapping() mapping.IndexMapping {
	english := bleve.NewTextFieldMapping()
	english.Analyzer = "en"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("Title", english)
	docMapping.AddFieldMappingsAt("Excerpt", english)
	docMapping.AddFieldMappingsAt("Author", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("Category", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("Body", english)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

// Rebuild loads every post from store into a fresh index and replaces the
// current one. Bodies are indexed when the store can load them.
func (i *Index) Rebuild(ctx context.Context, store content.Store) error {
	if loader, ok := store.(bodyLoader); ok {
		posts, err := loader.AllPosts(ctx)
		if err != nil {
			return fmt.Errorf("load posts: %w", err)
		}
		return i.Load(posts)
	}

	head, err := store.Posts(ctx, 0, 0)
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}

	list, err := store.Posts(ctx, 0, head.Total)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}

	return i.Load(list.Items)
}

// Load replaces the index contents with posts.
func (i *Index) Load(posts []content.Post) error {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	bySlug := make(map[string]content.Post, len(posts))
	batch := idx.NewBatch()
	for _, p := range posts {
		if p.Slug == "" {
			continue
		}

		doc := document{
			Title:    p.Title,
			Excerpt:  p.Excerpt,
			Author:   p.Author,
			Category: p.CategoryTitle,
			Body:     portabletext.PlainText(p.Body),
		}
		if err := batch.Index(p.Slug, doc); err != nil {
			_ = idx.Close()
			return fmt.Errorf("batch index %s: %w", p.Slug, err)
		}

		p.Body = nil
		bySlug[p.Slug] = p
	}

	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return fmt.Errorf("commit batch: %w", err)
	}

	i.mu.Lock()
	old := i.index
	i.index, i.posts = idx, bySlug
	i.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			i.log.Warn("failed to close previous search index", "error", err)
		}
	}

	i.log.Info("search index loaded", "posts", len(bySlug))
	return nil
}

// Search returns the posts matching text, best match first. An empty query
// or an index that was never loaded yields no results.
func (i *Index) Search(text string, limit int) ([]content.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []content.Post{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.index == nil {
		return []content.Post{}, nil
	}

	fields := []string{"Title", "Excerpt", "Author", "Category", "Body"}
	queries := make([]query.Query, 0, len(fields))
	for _, f := range fields {
		q := bleve.NewMatchQuery(text)
		q.SetField(f)
		if f == "Title" {
			q.SetBoost(3)
		}
		queries = append(queries, q)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(queries...), limit, 0, false)
	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	posts := make([]content.Post, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if p, ok := i.posts[hit.ID]; ok {
			posts = append(posts, p)
		}
	}

	return posts, nil
}

// Count returns the number of indexed posts.
func (i *Index) Count() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return len(i.posts)
}
