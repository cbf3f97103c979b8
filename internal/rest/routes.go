package rest

import "github.com/labstack/echo/v4"

const apiV1Prefix = "/api/v1"

// RegisterRoutes mounts the JSON API under /api/v1.
func (h *PostHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group(apiV1Prefix)
	api.GET("/posts", h.Posts)
	api.GET("/posts/:slug", h.PostBySlug)
	api.GET("/categories", h.Categories)
	api.GET("/categories/:slug", h.CategoryBySlug)
	api.GET("/search", h.Search)
}
