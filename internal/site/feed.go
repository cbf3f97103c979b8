package site

import (
	"encoding/xml"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	Author      string `xml:"author,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// buildURL joins escaped path segments onto base.
func buildURL(base string, segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	if len(parts) == 0 {
		return base + "/"
	}
	return base + "/" + strings.Join(parts, "/")
}

func (s *Site) handleFeed(c echo.Context) error {
	posts, err := s.manager.Latest(c.Request().Context(), s.cfg.FeedSize)
	if err != nil {
		return s.handleError(c, err)
	}

	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		link := buildURL(s.cfg.SiteURL, "article", p.Slug)
		item := rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Excerpt,
			Category:    p.CategoryLabel,
			Author:      p.Author,
			GUID:        link,
		}
		if t, ok := oldruins.ParsePublished(p.PublishedAt, s.cfg.Location); ok {
			item.PubDate = t.Format(time.RFC1123Z)
		}
		items = append(items, item)
	}

	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       s.cfg.SiteName,
			Link:        buildURL(s.cfg.SiteURL),
			Description: "Newest posts from " + s.cfg.SiteName,
			Items:       items,
		},
	}

	return writeXML(c, "application/rss+xml; charset=utf-8", feed)
}

func (s *Site) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()

	posts, err := s.manager.Latest(ctx, sitemapLimit)
	if err != nil {
		return s.handleError(c, err)
	}

	categories, err := s.manager.Categories(ctx)
	if err != nil {
		return s.handleError(c, err)
	}

	urls := []sitemapURL{
		{Loc: buildURL(s.cfg.SiteURL)},
		{Loc: buildURL(s.cfg.SiteURL, "articles")},
		{Loc: buildURL(s.cfg.SiteURL, "about")},
	}
	for _, cat := range categories {
		urls = append(urls, sitemapURL{Loc: buildURL(s.cfg.SiteURL, "category", cat.Slug)})
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     buildURL(s.cfg.SiteURL, "article", p.Slug),
			LastMod: p.PublishedAt,
		})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	return writeXML(c, "application/xml; charset=utf-8", sitemap)
}

func writeXML(c echo.Context, contentType string, v any) error {
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(v)
}
