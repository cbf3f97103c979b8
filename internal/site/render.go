package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/daniilsolovey/old-ruins/internal/content"
	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	"github.com/daniilsolovey/old-ruins/internal/portabletext"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed pages/about.md
var aboutMarkdown []byte

const (
	pageHome     = "home.html"
	pageArticles = "articles.html"
	pageCategory = "category.html"
	pageArticle  = "article.html"
	pageAbout    = "about.html"
	pageSearch   = "search.html"
	pageNotFound = "not_found.html"
	pageError    = "error.html"
)

// summaryLength caps the meta description derived from a post body.
const summaryLength = 160

var pageNames = []string{
	pageHome, pageArticles, pageCategory, pageArticle, pageAbout, pageSearch, pageNotFound, pageError,
}

// navLink is a header navigation entry.
type navLink struct {
	Href   string
	Label  string
	Active bool
}

var navItems = []navLink{
	{Href: "/", Label: "Home"},
	{Href: "/category/devotionals", Label: "Devotionals"},
	{Href: "/category/blogs", Label: "Blogs"},
	{Href: "/category/journal-articles", Label: "Journal Articles"},
	{Href: "/category/reviews", Label: "Reviews"},
	{Href: "/category/resources", Label: "Resources"},
	{Href: "/articles", Label: "All"},
	{Href: "/about", Label: "About"},
}

// pageData is passed to every page template.
type pageData struct {
	SiteName string
	SiteURL  string
	Year     int
	Nav      []navLink
	Query    string
	Data     any
}

func parseTemplates(loc *time.Location) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"date": func(s string) string {
			return oldruins.FormatDateIn(s, loc)
		},
		"longDate": func(s string) string {
			return oldruins.FormatDateLongIn(s, loc)
		},
		"css": func(c oldruins.Cover) template.CSS {
			return template.CSS(c.CSS())
		},
		"body": func(blocks []content.Block) template.HTML {
			return template.HTML(portabletext.ToHTML(blocks))
		},
		"summary": func(blocks []content.Block) string {
			return portabletext.Summary(blocks, summaryLength)
		},
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return pages, nil
}

func (s *Site) newPageData(c echo.Context, data any) pageData {
	path := c.Request().URL.Path
	nav := make([]navLink, len(navItems))
	for i, item := range navItems {
		item.Active = item.Href == path
		nav[i] = item
	}

	return pageData{
		SiteName: s.cfg.SiteName,
		SiteURL:  s.cfg.SiteURL,
		Year:     time.Now().In(s.cfg.Location).Year(),
		Nav:      nav,
		Query:    c.QueryParam("q"),
		Data:     data,
	}
}

// render executes a page and writes it. Successful pages are stored in the
// page cache unless a revalidation happened since the request started.
func (s *Site) render(c echo.Context, status int, page string, data any) error {
	t, ok := s.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", s.newPageData(c, data)); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	if status == http.StatusOK {
		s.storePage(c, buf.Bytes())
	}

	return c.HTMLBlob(status, buf.Bytes())
}
