package site

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	"github.com/daniilsolovey/old-ruins/internal/portabletext"
	"github.com/labstack/echo/v4"
)

// PageStore caches rendered pages by request URI.
type PageStore interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, page []byte)
	InvalidateAll(ctx context.Context) int
}

type Config struct {
	SiteName string
	SiteURL  string
	// Location is the zone dates are rendered in.
	Location *time.Location
	// WebhookSecret enables POST /api/webhook/revalidate when set.
	WebhookSecret string
	// HomeSize is the number of posts on the home page.
	HomeSize int
	// FeedSize is the number of posts in the RSS feed.
	FeedSize int
}

const (
	defaultHomeSize = 6
	defaultFeedSize = 20
	sitemapLimit    = 5000

	searchRate  = 5
	searchBurst = 10
	hookRate    = 1
	hookBurst   = 5
)

// Site is the HTML front-end.
type Site struct {
	manager *oldruins.Manager
	cache   PageStore
	cfg     Config
	log     *slog.Logger

	pages map[string]*template.Template
	about template.HTML

	// guard and cacheMu keep renders that started before a revalidation
	// out of the page cache.
	guard   oldruins.Guard
	cacheMu sync.RWMutex
}

// New creates the site. cache may be nil.
func New(manager *oldruins.Manager, cache PageStore, cfg Config, logger *slog.Logger) (*Site, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.HomeSize <= 0 {
		cfg.HomeSize = defaultHomeSize
	}
	if cfg.FeedSize <= 0 {
		cfg.FeedSize = defaultFeedSize
	}

	pages, err := parseTemplates(cfg.Location)
	if err != nil {
		return nil, err
	}

	about, err := portabletext.MarkdownToHTML(aboutMarkdown)
	if err != nil {
		return nil, fmt.Errorf("render about page: %w", err)
	}

	return &Site{
		manager: manager,
		cache:   cache,
		cfg:     cfg,
		log:     logger,
		pages:   pages,
		about:   template.HTML(about),
	}, nil
}

// RegisterRoutes mounts the pages, feeds and webhook on e.
func (s *Site) RegisterRoutes(e *echo.Echo) {
	e.GET("/", s.handleHome, s.pageCache)
	e.GET("/articles", s.handleArticles, s.pageCache)
	e.GET("/category/:slug", s.handleCategory, s.pageCache)
	e.GET("/article/:slug", s.handleArticle, s.pageCache)
	e.GET("/about", s.handleAbout, s.pageCache)

	e.GET("/search", s.handleSearch, rateLimit(searchRate, searchBurst))
	e.GET("/feed.xml", s.handleFeed)
	e.GET("/sitemap.xml", s.handleSitemap)
	e.GET("/health", s.handleHealth)

	if s.cfg.WebhookSecret != "" {
		e.POST("/api/webhook/revalidate", s.handleRevalidate, rateLimit(hookRate, hookBurst))
	}

	e.RouteNotFound("/*", s.handleUnmatched)
}

const cacheTokenKey = "site.cacheToken"

// pageCache serves cached pages and records the cache generation the request
// started in.
func (s *Site) pageCache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.cache == nil {
			return next(c)
		}

		key := c.Request().URL.RequestURI()
		if page, ok := s.cache.Get(c.Request().Context(), key); ok {
			c.Response().Header().Set("X-Cache", "HIT")
			return c.HTMLBlob(http.StatusOK, page)
		}

		c.Set(cacheTokenKey, s.guard.Current())
		c.Response().Header().Set("X-Cache", "MISS")
		return next(c)
	}
}

func (s *Site) storePage(c echo.Context, page []byte) {
	token, ok := c.Get(cacheTokenKey).(oldruins.Token)
	if !ok || s.cache == nil {
		return
	}

	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	if !s.guard.Valid(token) {
		s.log.Debug("dropping stale page render", "uri", c.Request().URL.RequestURI())
		return
	}

	s.cache.Set(c.Request().Context(), c.Request().URL.RequestURI(), page)
}

// Revalidate empties the page cache and reloads the search index. Renders
// in flight when it is called are not cached.
func (s *Site) Revalidate(ctx context.Context) (int, error) {
	invalidated := 0

	s.cacheMu.Lock()
	s.guard.Advance()
	if s.cache != nil {
		invalidated = s.cache.InvalidateAll(ctx)
	}
	s.cacheMu.Unlock()

	if err := s.manager.Reindex(ctx); err != nil {
		return invalidated, err
	}

	return invalidated, nil
}
