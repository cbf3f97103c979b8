package site

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	"github.com/daniilsolovey/old-ruins/internal/sanity"
	"github.com/labstack/echo/v4"
)

// WebhookSecretHeader carries the shared secret of the revalidation webhook.
const WebhookSecretHeader = "X-Webhook-Secret"

func (s *Site) handleHome(c echo.Context) error {
	posts, err := s.manager.Latest(c.Request().Context(), s.cfg.HomeSize)
	if err != nil {
		return s.handleError(c, err)
	}

	return s.render(c, http.StatusOK, pageHome, struct{ Posts []oldruins.PostPreview }{posts})
}

func (s *Site) handleArticles(c echo.Context) error {
	page, err := s.manager.ListPage(c.Request().Context(), oldruins.ParsePage(c.QueryParam("page")))
	if err != nil {
		return s.handleError(c, err)
	}

	return s.render(c, http.StatusOK, pageArticles, page)
}

func (s *Site) handleCategory(c echo.Context) error {
	slug := c.Param("slug")
	if !isSlugSegment(slug) {
		return s.handleUnmatched(c)
	}

	page, err := s.manager.CategoryPage(c.Request().Context(), slug)
	if err != nil {
		return s.handleError(c, err)
	}

	return s.render(c, http.StatusOK, pageCategory, page)
}

func (s *Site) handleArticle(c echo.Context) error {
	slug := c.Param("slug")
	if !isSlugSegment(slug) {
		return s.handleUnmatched(c)
	}

	post, err := s.manager.PostDetail(c.Request().Context(), slug)
	if err != nil {
		return s.handleError(c, err)
	} else if post == nil {
		return s.render(c, http.StatusNotFound, pageNotFound, slug)
	}

	return s.render(c, http.StatusOK, pageArticle, post)
}

func (s *Site) handleAbout(c echo.Context) error {
	return s.render(c, http.StatusOK, pageAbout, s.about)
}

func (s *Site) handleSearch(c echo.Context) error {
	posts, err := s.manager.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return s.handleError(c, err)
	}

	return s.render(c, http.StatusOK, pageSearch, posts)
}

func (s *Site) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Site) handleRevalidate(c echo.Context) error {
	secret := c.Request().Header.Get(WebhookSecretHeader)
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.cfg.WebhookSecret)) != 1 {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid webhook secret"})
	}

	invalidated, err := s.Revalidate(c.Request().Context())
	if err != nil {
		s.log.Error("revalidate failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	s.log.Info("content revalidated", "invalidated", invalidated)
	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "invalidated": invalidated})
}

// isSlugSegment reports whether slug is a single non-empty path segment.
func isSlugSegment(slug string) bool {
	return slug != "" && !strings.Contains(slug, "/")
}

// handleUnmatched sends unknown page paths home. API paths keep a 404.
func (s *Site) handleUnmatched(c echo.Context) error {
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/v1/") {
		return echo.ErrNotFound
	}

	return c.Redirect(http.StatusFound, "/")
}

// handleError renders the error page with the failure message.
func (s *Site) handleError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	if sanity.IsFetchError(err) {
		status = http.StatusBadGateway
	}

	s.log.Error("page fetch failed", "path", c.Request().URL.Path, "error", err)
	return s.render(c, status, pageError, err.Error())
}
