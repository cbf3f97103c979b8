package rpc

import (
	"context"
	"net/http"
	"strings"

	"github.com/daniilsolovey/old-ruins/internal/content"
	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	"github.com/daniilsolovey/old-ruins/internal/sanity"
	"github.com/vmkteam/zenrpc/v2"
)

//go:generate zenrpc

// PostService provides RPC methods for posts and categories.
type PostService struct {
	zenrpc.Service
	manager *oldruins.Manager
}

func NewPostService(manager *oldruins.Manager) *PostService {
	return &PostService{manager: manager}
}

// newFetchError keeps upstream failures apart from internal ones.
func newFetchError(err error) error {
	if sanity.IsFetchError(err) {
		return zenrpc.NewStringError(http.StatusBadGateway, err.Error())
	}
	return err
}

// List returns one page of post summaries, newest first. Pages outside
// [1, totalPages] are clamped.
//
//zenrpc:page=1 page number (1-based)
//zenrpc:return page of post summaries with pagination
//zenrpc:500 internal server error
//zenrpc:502 content fetch failed
func (s PostService) List(ctx context.Context, page int) (*PostPage, error) {
	result, err := s.manager.ListPage(ctx, page)
	if err != nil {
		return nil, newFetchError(err)
	}

	list := NewPostPage(*result)
	return &list, nil
}

// ByCategory returns the category header and every post in it.
//
//zenrpc:slug category slug
//zenrpc:return category header with its posts
//zenrpc:400 slug is required
//zenrpc:500 internal server error
//zenrpc:502 content fetch failed
func (s PostService) ByCategory(ctx context.Context, slug string) (*CategoryPage, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, zenrpc.NewStringError(http.StatusBadRequest, "slug is required")
	}

	result, err := s.manager.CategoryPage(ctx, slug)
	if err != nil {
		return nil, newFetchError(err)
	}

	page := NewCategoryPage(*result)
	return &page, nil
}

// BySlug returns a single post with its body blocks and rendered HTML.
//
//zenrpc:slug post slug
//zenrpc:return post with body
//zenrpc:400 slug is required
//zenrpc:404 post not found
//zenrpc:500 internal server error
//zenrpc:502 content fetch failed
func (s PostService) BySlug(ctx context.Context, slug string) (*Post, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, zenrpc.NewStringError(http.StatusBadRequest, "slug is required")
	}

	result, err := s.manager.PostDetail(ctx, slug)
	if err != nil {
		return nil, newFetchError(err)
	} else if result == nil {
		return nil, zenrpc.NewStringError(http.StatusNotFound, "post not found")
	}

	post := NewPost(*result)
	return &post, nil
}

// Categories returns all categories ordered by title.
//
//zenrpc:return list of categories
//zenrpc:500 internal server error
//zenrpc:502 content fetch failed
func (s PostService) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.manager.Categories(ctx)
	if err != nil {
		return nil, newFetchError(err)
	}

	return NewCategories(categories), nil
}

// Schema returns the document types shared with the authoring studio.
//
//zenrpc:return document type definitions
func (s PostService) Schema() []content.DocumentType {
	return content.Schema
}

// Search returns the posts matching q, best match first.
//
//zenrpc:q search text
//zenrpc:return matching post summaries
//zenrpc:500 internal server error
func (s PostService) Search(ctx context.Context, q string) ([]PostSummary, error) {
	posts, err := s.manager.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	return NewPostSummaries(posts), nil
}
