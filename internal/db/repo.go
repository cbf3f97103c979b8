package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/daniilsolovey/old-ruins/internal/content"
	"github.com/go-pg/pg/v10"
)

type Repository struct {
	db pg.DBI
}

var _ content.Store = (*Repository)(nil)

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

// Ping checks the pool connection. A repository bound to a transaction has
// nothing to ping.
func (r *Repository) Ping(ctx context.Context) error {
	conn, ok := r.db.(*pg.DB)
	if !ok {
		return nil
	}

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close releases the pool. Transactions are closed by their owner.
func (r *Repository) Close() error {
	if conn, ok := r.db.(*pg.DB); ok {
		return conn.Close()
	}
	return nil
}

// InTx runs fn with a repository bound to a single transaction.
func (r *Repository) InTx(ctx context.Context, fn func(*Repository) error) error {
	return r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		return fn(New(tx))
	})
}

// Posts returns posts ordered by publishedAt DESC sliced [start, end), with
// the total count of posts. Body is not loaded.
func (r *Repository) Posts(ctx context.Context, start, end int) (*content.PostList, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid slice bounds: start=%d, end=%d", start, end)
	}

	total, err := r.db.ModelContext(ctx, (*Post)(nil)).Count()
	if err != nil {
		return nil, fmt.Errorf("failed to get posts count: %w", err)
	}

	var posts []Post
	if end > start {
		err = r.db.ModelContext(ctx, &posts).
			ExcludeColumn(Columns.Post.Body).
			Relation(Columns.Post.Category).
			OrderExpr(`"t"."publishedAt" DESC NULLS LAST, "t"."postId" DESC`).
			Limit(end - start).
			Offset(start).
			Select()
		if err != nil {
			return nil, fmt.Errorf("failed to query posts: %w", err)
		}
	}

	return &content.PostList{
		Items: NewContentPosts(posts),
		Total: total,
	}, nil
}

// AllPosts returns every post with its body, newest first.
func (r *Repository) AllPosts(ctx context.Context) ([]content.Post, error) {
	var posts []Post
	err := r.db.ModelContext(ctx, &posts).
		Relation(Columns.Post.Category).
		OrderExpr(`"t"."publishedAt" DESC NULLS LAST, "t"."postId" DESC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query all posts: %w", err)
	}

	return NewContentPosts(posts), nil
}

func (r *Repository) CategoryBySlug(ctx context.Context, slug string) (*content.Category, error) {
	category := &Category{}
	err := r.db.ModelContext(ctx, category).
		Where(`"t"."slug" = ?`, slug).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	c := NewContentCategory(*category)
	return &c, nil
}

func (r *Repository) PostsByCategory(ctx context.Context, slug string) ([]content.Post, error) {
	var posts []Post
	err := r.db.ModelContext(ctx, &posts).
		ExcludeColumn(Columns.Post.Body).
		Relation(Columns.Post.Category).
		Where(`"category"."slug" = ?`, slug).
		OrderExpr(`"t"."publishedAt" DESC NULLS LAST, "t"."postId" DESC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query posts by category: %w", err)
	}

	return NewContentPosts(posts), nil
}

func (r *Repository) PostBySlug(ctx context.Context, slug string) (*content.Post, error) {
	post := &Post{}
	err := r.db.ModelContext(ctx, post).
		Relation(Columns.Post.Category).
		Where(`"t"."slug" = ?`, slug).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	p := NewContentPost(*post)
	return &p, nil
}

func (r *Repository) Categories(ctx context.Context) ([]content.Category, error) {
	var categories []Category
	err := r.db.ModelContext(ctx, &categories).
		OrderExpr(`"t"."title" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	return NewContentCategories(categories), nil
}

// UpsertCategory inserts or updates a category by slug and returns its id.
func (r *Repository) UpsertCategory(ctx context.Context, c content.Category) (int, error) {
	category := NewCategory(c)
	_, err := r.db.ModelContext(ctx, &category).
		OnConflict(`("slug") DO UPDATE`).
		Set(`"title" = EXCLUDED."title"`).
		Set(`"description" = EXCLUDED."description"`).
		Set(`"updatedAt" = NOW()`).
		Returning(`"categoryId"`).
		Insert()

	if err != nil {
		return 0, fmt.Errorf("failed to upsert category %q: %w", c.Slug, err)
	}

	return category.ID, nil
}

// UpsertPost inserts or updates a post by slug. A nil categoryID stores the
// post without a category.
func (r *Repository) UpsertPost(ctx context.Context, p content.Post, categoryID *int) (int, error) {
	post := NewPost(p, categoryID)
	_, err := r.db.ModelContext(ctx, &post).
		OnConflict(`("slug") DO UPDATE`).
		Set(`"categoryId" = EXCLUDED."categoryId"`).
		Set(`"title" = EXCLUDED."title"`).
		Set(`"publishedAt" = EXCLUDED."publishedAt"`).
		Set(`"excerpt" = EXCLUDED."excerpt"`).
		Set(`"author" = EXCLUDED."author"`).
		Set(`"imageUrl" = EXCLUDED."imageUrl"`).
		Set(`"body" = EXCLUDED."body"`).
		Set(`"updatedAt" = NOW()`).
		Returning(`"postId"`).
		Insert()

	if err != nil {
		return 0, fmt.Errorf("failed to upsert post %q: %w", p.Slug, err)
	}

	return post.ID, nil
}

// DeleteMissingPosts removes every post whose slug is not in keep.
func (r *Repository) DeleteMissingPosts(ctx context.Context, keep []string) (int, error) {
	query := r.db.ModelContext(ctx, (*Post)(nil))
	if len(keep) > 0 {
		query = query.Where(`"t"."slug" NOT IN (?)`, pg.In(keep))
	} else {
		query = query.Where("TRUE")
	}

	res, err := query.Delete()
	if err != nil {
		return 0, fmt.Errorf("failed to delete missing posts: %w", err)
	}

	return res.RowsAffected(), nil
}
