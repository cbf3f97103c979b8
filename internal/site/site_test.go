package site

import (
	"context"
	"encoding/xml"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/daniilsolovey/old-ruins/internal/content"
	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	"github.com/daniilsolovey/old-ruins/internal/sanity"
	"github.com/daniilsolovey/old-ruins/internal/search"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	postsFunc           func(ctx context.Context, start, end int) (*content.PostList, error)
	categoryBySlugFunc  func(ctx context.Context, slug string) (*content.Category, error)
	postsByCategoryFunc func(ctx context.Context, slug string) ([]content.Post, error)
	postBySlugFunc      func(ctx context.Context, slug string) (*content.Post, error)
	categoriesFunc      func(ctx context.Context) ([]content.Category, error)
}

func (m *mockStore) Posts(ctx context.Context, start, end int) (*content.PostList, error) {
	if m.postsFunc != nil {
		return m.postsFunc(ctx, start, end)
	}
	return &content.PostList{Items: []content.Post{}}, nil
}

func (m *mockStore) CategoryBySlug(ctx context.Context, slug string) (*content.Category, error) {
	if m.categoryBySlugFunc != nil {
		return m.categoryBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockStore) PostsByCategory(ctx context.Context, slug string) ([]content.Post, error) {
	if m.postsByCategoryFunc != nil {
		return m.postsByCategoryFunc(ctx, slug)
	}
	return []content.Post{}, nil
}

func (m *mockStore) PostBySlug(ctx context.Context, slug string) (*content.Post, error) {
	if m.postBySlugFunc != nil {
		return m.postBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockStore) Categories(ctx context.Context) ([]content.Category, error) {
	if m.categoriesFunc != nil {
		return m.categoriesFunc(ctx)
	}
	return []content.Category{}, nil
}

// memoryPages is an in-memory PageStore.
type memoryPages struct {
	mu    sync.Mutex
	pages map[string][]byte
}

func newMemoryPages() *memoryPages {
	return &memoryPages{pages: map[string][]byte{}}
}

func (m *memoryPages) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pages[key]
	return p, ok
}

func (m *memoryPages) Set(ctx context.Context, key string, page []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[key] = page
}

func (m *memoryPages) InvalidateAll(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.pages)
	m.pages = map[string][]byte{}
	return n
}

func (m *memoryPages) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pages)
}

func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testSecret = "s3cret"

func seededPosts(n int) []content.Post {
	posts := make([]content.Post, n)
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := range posts {
		posts[i] = content.Post{
			Title:       "Post " + strconv.Itoa(i+1),
			Slug:        "post-" + strconv.Itoa(i+1),
			PublishedAt: base.AddDate(0, 0, -i).Format("2006-01-02"),
		}
	}
	return posts
}

func sliceStore(posts []content.Post) *mockStore {
	return &mockStore{
		postsFunc: func(ctx context.Context, start, end int) (*content.PostList, error) {
			from := min(start, len(posts))
			to := min(end, len(posts))
			return &content.PostList{Items: posts[from:to], Total: len(posts)}, nil
		},
	}
}

func newTestServer(t *testing.T, store content.Store, cache PageStore) (*echo.Echo, *Site) {
	t.Helper()

	manager := oldruins.NewManager(store, search.New(noOpLogger()), noOpLogger())
	s, err := New(manager, cache, Config{
		SiteName:      "The Old Ruins Reformed",
		SiteURL:       "https://oldruins.example",
		Location:      time.UTC,
		WebhookSecret: testSecret,
	}, noOpLogger())
	require.NoError(t, err)

	e := echo.New()
	SetupMiddleware(e, noOpLogger())
	s.RegisterRoutes(e)

	return e, s
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCategoryPage(t *testing.T) {
	store := &mockStore{
		categoryBySlugFunc: func(ctx context.Context, slug string) (*content.Category, error) {
			if slug != "blogs" {
				return nil, nil
			}
			return &content.Category{Slug: "blogs", Title: "Blogs", Description: "Short-form writing."}, nil
		},
		postsByCategoryFunc: func(ctx context.Context, slug string) ([]content.Post, error) {
			if slug != "blogs" {
				return []content.Post{}, nil
			}
			posts := seededPosts(3)
			for i := range posts {
				posts[i].CategorySlug = "blogs"
				posts[i].CategoryTitle = "Blogs"
			}
			return posts, nil
		},
	}
	e, _ := newTestServer(t, store, nil)

	t.Run("three posts under Blogs", func(t *testing.T) {
		rec := get(e, "/category/blogs")
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "<h1>Blogs</h1>")
		assert.Contains(t, body, "Short-form writing.")
		assert.Equal(t, 3, strings.Count(body, `<article class="card">`))
		assert.Contains(t, body, "Mar 1, 2026")
		assert.Contains(t, body, `href="/article/post-1"`)
	})

	t.Run("unknown category has fallback header", func(t *testing.T) {
		rec := get(e, "/category/field-notes")
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "<h1>field notes</h1>")
		assert.Contains(t, body, "No posts yet in <strong>field notes</strong>.")
	})
}

func TestArticlesPage(t *testing.T) {
	e, _ := newTestServer(t, sliceStore(seededPosts(25)), nil)

	tests := []struct {
		target   string
		page     string
		cards    int
		hasPrev  bool
		hasNext  bool
		firstRef string
	}{
		{"/articles", "1", 10, false, true, "/article/post-1"},
		{"/articles?page=2", "2", 10, true, true, "/article/post-11"},
		{"/articles?page=5", "3", 5, true, false, "/article/post-21"},
		{"/articles?page=0", "1", 10, false, true, "/article/post-1"},
		{"/articles?page=NaN", "1", 10, false, true, "/article/post-1"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(e, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			body := rec.Body.String()
			assert.Contains(t, body, "Page <strong>"+tt.page+"</strong> of <strong>3</strong>")
			assert.Contains(t, body, "25 total")
			assert.Equal(t, tt.cards, strings.Count(body, `<article class="card">`))
			assert.Contains(t, body, tt.firstRef)
			assert.Equal(t, tt.hasPrev, strings.Contains(body, `rel="prev"`))
			assert.Equal(t, tt.hasNext, strings.Contains(body, `rel="next"`))
		})
	}
}

func TestArticlesPage_Empty(t *testing.T) {
	e, _ := newTestServer(t, sliceStore(nil), nil)

	rec := get(e, "/articles")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Page <strong>1</strong> of <strong>1</strong>")
	assert.NotContains(t, body, "total")
	assert.Contains(t, body, "No posts yet.")
}

func TestArticlePage(t *testing.T) {
	store := &mockStore{
		postBySlugFunc: func(ctx context.Context, slug string) (*content.Post, error) {
			if slug != "post-a" {
				return nil, nil
			}
			return &content.Post{
				Title:         "Post A",
				Slug:          "post-a",
				PublishedAt:   "2026-01-02",
				CategorySlug:  "reviews",
				CategoryTitle: "Reviews",
				ImageURL:      "https://cdn.example/a.jpg",
				Body: []content.Block{
					{Type: "block", Style: "h2", Children: []content.Span{{Type: "span", Text: "A Second Heading"}}},
					{Type: "block", Style: "normal", Children: []content.Span{{Type: "span", Text: "<b>not bold</b>"}}},
				},
			}, nil
		},
	}
	e, _ := newTestServer(t, store, nil)

	t.Run("found", func(t *testing.T) {
		rec := get(e, "/article/post-a")
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "<h1>Post A</h1>")
		assert.Contains(t, body, "January 2, 2026")
		assert.Contains(t, body, "Joseph")
		assert.Contains(t, body, `href="/category/reviews"`)
		assert.Contains(t, body, "url(&#34;https://cdn.example/a.jpg&#34;) center/cover no-repeat")
		assert.Contains(t, body, `<meta name="description" content="A Second Heading &lt;b&gt;not bold&lt;/b&gt;">`)
		assert.Contains(t, body, "<h2>A Second Heading</h2>")
		assert.Contains(t, body, "&lt;b&gt;not bold&lt;/b&gt;")
	})

	t.Run("not found", func(t *testing.T) {
		rec := get(e, "/article/post-b")
		require.Equal(t, http.StatusNotFound, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "Post not found")
		assert.Contains(t, body, "post-b")
		assert.Contains(t, body, "Back to Articles")
	})
}

func TestFetchErrorPage(t *testing.T) {
	store := &mockStore{
		postsFunc: func(ctx context.Context, start, end int) (*content.PostList, error) {
			return nil, &sanity.FetchError{Op: "posts", StatusCode: 500, Message: "Internal Server Error"}
		},
	}
	e, _ := newTestServer(t, store, nil)

	rec := get(e, "/articles")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "status 500: Internal Server Error")
}

func TestUnmatchedPaths(t *testing.T) {
	e, _ := newTestServer(t, &mockStore{}, nil)

	for _, target := range []string{"/nope", "/article", "/category/a/b", "/article/x/y", "/category/a/b/c"} {
		rec := get(e, target)
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation), target)
	}

	rec := get(e, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNestedSlugsAreNotCached(t *testing.T) {
	pages := newMemoryPages()
	var fetched int
	store := &mockStore{
		categoryBySlugFunc: func(ctx context.Context, slug string) (*content.Category, error) {
			fetched++
			return nil, nil
		},
		postBySlugFunc: func(ctx context.Context, slug string) (*content.Post, error) {
			fetched++
			return nil, nil
		},
	}
	e, _ := newTestServer(t, store, pages)

	for _, target := range []string{"/category/a/b", "/article/x/y"} {
		rec := get(e, target)
		assert.Equal(t, http.StatusFound, rec.Code, target)
	}

	assert.Zero(t, fetched)
	assert.Zero(t, pages.Len())
}

func TestAboutHomeAndHealth(t *testing.T) {
	e, _ := newTestServer(t, sliceStore(seededPosts(8)), nil)

	rec := get(e, "/about")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Our Mission")

	rec = get(e, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultHomeSize, strings.Count(rec.Body.String(), `<article class="card">`))
	assert.Contains(t, rec.Body.String(), `class="active"`)

	rec = get(e, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestFeedAndSitemap(t *testing.T) {
	store := sliceStore(seededPosts(3))
	store.categoriesFunc = func(ctx context.Context) ([]content.Category, error) {
		return []content.Category{{Slug: "blogs", Title: "Blogs"}}, nil
	}
	e, _ := newTestServer(t, store, nil)

	rec := get(e, "/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/rss+xml")

	var feed rssXML
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed.Channel.Items, 3)
	assert.Equal(t, "https://oldruins.example/article/post-1", feed.Channel.Items[0].Link)
	assert.Equal(t, "Sun, 01 Mar 2026 00:00:00 +0000", feed.Channel.Items[0].PubDate)

	rec = get(e, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)

	var sitemap sitemapURLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &sitemap))
	require.Len(t, sitemap.URLs, 3+1+3)
	assert.Equal(t, "https://oldruins.example/", sitemap.URLs[0].Loc)
	assert.Equal(t, "https://oldruins.example/category/blogs", sitemap.URLs[3].Loc)
	assert.Equal(t, "2026-03-01", sitemap.URLs[4].LastMod)
}

func TestSearchPage(t *testing.T) {
	posts := []content.Post{
		{Slug: "notes-on-grace", Title: "Notes on Grace"},
		{Slug: "why-creeds-still-matter", Title: "Why Creeds Still Matter"},
	}
	e, s := newTestServer(t, sliceStore(posts), nil)
	_, err := s.Revalidate(context.Background())
	require.NoError(t, err)

	rec := get(e, "/search?q=grace")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "1 result for")
	assert.Contains(t, body, `href="/article/notes-on-grace"`)
	assert.NotContains(t, body, "why-creeds-still-matter")
}

func TestPageCache(t *testing.T) {
	cache := newMemoryPages()
	var fetches int
	store := &mockStore{
		postsFunc: func(ctx context.Context, start, end int) (*content.PostList, error) {
			fetches++
			return &content.PostList{Items: seededPosts(2), Total: 2}, nil
		},
	}
	e, _ := newTestServer(t, store, cache)

	rec := get(e, "/articles")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = get(e, "/articles")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, 1, fetches)

	rec = get(e, "/article/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, cache.Len())
}

func TestPageCache_DropsRenderStartedBeforeRevalidate(t *testing.T) {
	cache := newMemoryPages()
	e, s := newTestServer(t, &mockStore{}, cache)

	// The request for post-a starts, then a revalidation arrives before it
	// finishes rendering.
	req := httptest.NewRequest(http.MethodGet, "/article/post-a", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(cacheTokenKey, s.guard.Current())

	_, err := s.Revalidate(context.Background())
	require.NoError(t, err)

	s.storePage(c, []byte("stale post-a"))
	assert.Equal(t, 0, cache.Len())

	// A request that starts after the revalidation is cached.
	req = httptest.NewRequest(http.MethodGet, "/article/post-b", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	c.Set(cacheTokenKey, s.guard.Current())

	s.storePage(c, []byte("fresh post-b"))
	page, ok := cache.Get(context.Background(), "/article/post-b")
	require.True(t, ok)
	assert.Equal(t, "fresh post-b", string(page))
}

func TestRevalidateWebhook(t *testing.T) {
	cache := newMemoryPages()
	cache.Set(context.Background(), "/", []byte("home"))
	e, _ := newTestServer(t, &mockStore{}, cache)

	post := func(secret string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/webhook/revalidate", nil)
		if secret != "" {
			req.Header.Set(WebhookSecretHeader, secret)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := post("wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 1, cache.Len())

	rec = post("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(testSecret)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","invalidated":1}`, rec.Body.String())
	assert.Equal(t, 0, cache.Len())
}

func TestSearchRateLimit(t *testing.T) {
	e, _ := newTestServer(t, &mockStore{}, nil)

	limited := 0
	for range searchBurst * 3 {
		rec := get(e, "/search?q=grace")
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Positive(t, limited)

	rec := get(e, "/articles")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
