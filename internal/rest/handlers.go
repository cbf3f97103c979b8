package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	"github.com/daniilsolovey/old-ruins/internal/sanity"
	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	manager *oldruins.Manager
	log     *slog.Logger
}

func NewPostHandler(manager *oldruins.Manager, log *slog.Logger) *PostHandler {
	return &PostHandler{
		manager: manager,
		log:     log,
	}
}

func (h *PostHandler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, map[string]string{"error": message})
}

// handleFetchError reports upstream failures as 502 and everything else as 500.
func (h *PostHandler) handleFetchError(c echo.Context, err error) error {
	if sanity.IsFetchError(err) {
		return h.handleError(c, err, http.StatusBadGateway, "content fetch failed")
	}
	return h.handleError(c, err, http.StatusInternalServerError, "internal error")
}

// Posts handles GET /api/v1/posts
// @Summary Get a page of posts
// @Description Returns one page of post summaries, newest first. Pages outside [1, totalPages] are clamped.
// @Tags posts
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Success 200 {object} rest.PostPage
// @Failure 500,502 {object} map[string]string
// @Router /api/v1/posts [get]
func (h *PostHandler) Posts(c echo.Context) error {
	page, err := h.manager.ListPage(c.Request().Context(), oldruins.ParsePage(c.QueryParam("page")))
	if err != nil {
		return h.handleFetchError(c, err)
	}

	return c.JSON(http.StatusOK, NewPostPage(*page))
}

// PostBySlug handles GET /api/v1/posts/:slug
// @Summary Get post by slug
// @Description Returns a single post with its body blocks and rendered HTML
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} rest.Post
// @Failure 400,404,500,502 {object} map[string]string
// @Router /api/v1/posts/{slug} [get]
func (h *PostHandler) PostBySlug(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return h.handleError(c, nil, http.StatusBadRequest, "invalid slug")
	}

	post, err := h.manager.PostDetail(c.Request().Context(), slug)
	if err != nil {
		return h.handleFetchError(c, err)
	}
	if post == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
	}

	return c.JSON(http.StatusOK, NewPost(*post))
}

// Categories handles GET /api/v1/categories
// @Summary Get all categories
// @Description Retrieves all categories ordered by title
// @Tags categories
// @Produce json
// @Success 200 {array} rest.Category
// @Failure 500,502 {object} map[string]string
// @Router /api/v1/categories [get]
func (h *PostHandler) Categories(c echo.Context) error {
	categories, err := h.manager.Categories(c.Request().Context())
	if err != nil {
		return h.handleFetchError(c, err)
	}

	return c.JSON(http.StatusOK, Map(categories, NewCategory))
}

// CategoryBySlug handles GET /api/v1/categories/:slug
// @Summary Get category with its posts
// @Description Returns the category header and every post in it. A slug with no category document
// @Description but with posts is returned with found=false; a slug with neither is a 404.
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} rest.CategoryPage
// @Failure 404,500,502 {object} map[string]string
// @Router /api/v1/categories/{slug} [get]
func (h *PostHandler) CategoryBySlug(c echo.Context) error {
	page, err := h.manager.CategoryPage(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.handleFetchError(c, err)
	}
	if !page.Found && len(page.Posts) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "category not found"})
	}

	return c.JSON(http.StatusOK, NewCategoryPage(*page))
}

// Search handles GET /api/v1/search
// @Summary Search posts
// @Description Full-text search over post titles, excerpts, authors and categories
// @Tags posts
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} rest.PostSummary
// @Failure 400,500 {object} map[string]string
// @Router /api/v1/search [get]
func (h *PostHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return h.handleError(c, nil, http.StatusBadRequest, "query is required")
	}

	posts, err := h.manager.Search(c.Request().Context(), q)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, Map(posts, NewPostSummary))
}
