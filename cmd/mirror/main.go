package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/namsral/flag"

	"github.com/daniilsolovey/old-ruins/config"
	"github.com/daniilsolovey/old-ruins/internal/app"
	"github.com/daniilsolovey/old-ruins/internal/content"
	"github.com/daniilsolovey/old-ruins/internal/db"
)

var (
	flConfig = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug  = flag.Bool("debug", false, "enable debug mode")
	flDryRun = flag.Bool("dry-run", false, "fetch and validate without writing to the database")
	lg       *slog.Logger
)

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	cfg, err := config.Load(*flConfig)
	exitOnError(err)

	ctx := context.Background()
	store := app.NewContentStore(cfg.Sanity, lg)

	categories, err := store.Categories(ctx)
	exitOnError(err)

	posts, err := store.AllPosts(ctx)
	exitOnError(err)

	categories, posts = validate(categories, posts)
	lg.Info("content fetched", "categories", len(categories), "posts", len(posts))

	if *flDryRun {
		return
	}

	connConfig, err := db.ConnConfig(&cfg.Database.Options)
	exitOnError(err)
	exitOnError(db.Migrate(ctx, connConfig))

	repo, err := app.ConnectDB(ctx, cfg.Database, lg)
	exitOnError(err)
	defer repo.Close()

	deleted, err := mirror(ctx, repo, categories, posts)
	exitOnError(err)

	lg.Info("mirror synced", "categories", len(categories), "posts", len(posts), "deleted", deleted)
}

// validate drops documents that break the studio schema.
func validate(categories []content.Category, posts []content.Post) ([]content.Category, []content.Post) {
	validCategories := make([]content.Category, 0, len(categories))
	for _, c := range categories {
		if err := content.ValidateCategory(c); err != nil {
			lg.Warn("skipping invalid category", "slug", c.Slug, "error", err)
			continue
		}
		validCategories = append(validCategories, c)
	}

	validPosts := make([]content.Post, 0, len(posts))
	for _, p := range posts {
		if err := content.ValidatePost(p); err != nil {
			lg.Warn("skipping invalid post", "slug", p.Slug, "error", err)
			continue
		}
		validPosts = append(validPosts, p)
	}

	return validCategories, validPosts
}

// mirror writes categories and posts in one transaction and removes posts
// that are no longer published.
func mirror(ctx context.Context, repo *db.Repository, categories []content.Category, posts []content.Post) (int, error) {
	var deleted int
	err := repo.InTx(ctx, func(tx *db.Repository) error {
		categoryIDs := make(map[string]int, len(categories))
		for _, c := range categories {
			id, err := tx.UpsertCategory(ctx, c)
			if err != nil {
				return err
			}
			categoryIDs[c.Slug] = id
		}

		keep := make([]string, 0, len(posts))
		for _, p := range posts {
			var categoryID *int
			if id, ok := categoryIDs[p.CategorySlug]; ok {
				categoryID = &id
			}

			if _, err := tx.UpsertPost(ctx, p, categoryID); err != nil {
				return err
			}
			keep = append(keep, p.Slug)
		}

		n, err := tx.DeleteMissingPosts(ctx, keep)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("mirror content: %w", err)
	}

	return deleted, nil
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("mirror failed", "error", err)
		os.Exit(1)
	}
}
