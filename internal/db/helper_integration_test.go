//go:build integration

package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/daniilsolovey/old-ruins/internal/content"
	"github.com/go-pg/pg/v10"
)

func withTx(t *testing.T) (*pg.Tx, context.Context, *Repository) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	repo := New(tx)
	return tx, ctx, repo
}

func resetPublicSchema(ctx context.Context, database *pg.DB) error {
	_, err := database.ExecContext(ctx, `DROP SCHEMA IF EXISTS public CASCADE; CREATE SCHEMA public;`)
	if err != nil {
		return fmt.Errorf("reset public schema: %w", err)
	}
	return nil
}

var testCategories = []content.Category{
	{Slug: "blogs", Title: "Blogs", Description: "Short-form writing."},
	{Slug: "devotionals", Title: "Devotionals"},
	{Slug: "reviews", Title: "Reviews"},
}

// testPosts are listed newest first.
var testPosts = []content.Post{
	{Slug: "recovering-the-reformed-imagination", Title: "Recovering the Reformed Imagination", PublishedAt: "2026-01-10", CategorySlug: "blogs", Author: "Ruth"},
	{Slug: "mid-week-musings", Title: "Mid-Week Musings", PublishedAt: "2026-01-07", CategorySlug: "devotionals"},
	{Slug: "why-creeds-still-matter", Title: "Why Creeds Still Matter", PublishedAt: "2026-01-05", CategorySlug: "blogs"},
	{Slug: "a-review-of-institutes", Title: "A Review of the Institutes", PublishedAt: "2026-01-03", CategorySlug: "reviews", Excerpt: "Book one."},
	{Slug: "notes-on-grace", Title: "Notes on Grace", PublishedAt: "2026-01-02", CategorySlug: "blogs",
		Body: []content.Block{{Type: "block", Style: "normal", Children: []content.Span{{Type: "span", Text: "Grace alone."}}}}},
	{Slug: "unfiled", Title: "Unfiled", PublishedAt: "2025-12-30"},
}

func loadTestData(ctx context.Context, database *pg.DB) error {
	repo := New(database)

	ids := make(map[string]int, len(testCategories))
	for _, c := range testCategories {
		id, err := repo.UpsertCategory(ctx, c)
		if err != nil {
			return err
		}
		ids[c.Slug] = id
	}

	for _, p := range testPosts {
		var categoryID *int
		if id, ok := ids[p.CategorySlug]; ok {
			categoryID = &id
		}
		if _, err := repo.UpsertPost(ctx, p, categoryID); err != nil {
			return err
		}
	}

	return nil
}
