// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"

	"github.com/daniilsolovey/old-ruins/internal/content"
)

var Columns = struct {
	Category struct {
		ID, Slug, Title, Description, UpdatedAt string
	}
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	Post struct {
		ID, Slug, CategoryID, Title, PublishedAt, Excerpt, Author, ImageURL, Body, UpdatedAt string

		Category string
	}
}{
	Category: struct {
		ID, Slug, Title, Description, UpdatedAt string
	}{
		ID:          "categoryId",
		Slug:        "slug",
		Title:       "title",
		Description: "description",
		UpdatedAt:   "updatedAt",
	},
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	Post: struct {
		ID, Slug, CategoryID, Title, PublishedAt, Excerpt, Author, ImageURL, Body, UpdatedAt string

		Category string
	}{
		ID:          "postId",
		Slug:        "slug",
		CategoryID:  "categoryId",
		Title:       "title",
		PublishedAt: "publishedAt",
		Excerpt:     "excerpt",
		Author:      "author",
		ImageURL:    "imageUrl",
		Body:        "body",
		UpdatedAt:   "updatedAt",

		Category: "Category",
	},
}

var Tables = struct {
	Category struct {
		Name, Alias string
	}
	GooseDbVersion struct {
		Name, Alias string
	}
	Post struct {
		Name, Alias string
	}
}{
	Category: struct {
		Name, Alias string
	}{
		Name:  "categories",
		Alias: "t",
	},
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	Post: struct {
		Name, Alias string
	}{
		Name:  "posts",
		Alias: "t",
	},
}

type Category struct {
	tableName struct{} `pg:"categories,alias:t,discard_unknown_columns"`

	ID          int       `pg:"categoryId,pk"`
	Slug        string    `pg:"slug,use_zero"`
	Title       string    `pg:"title,use_zero"`
	Description *string   `pg:"description"`
	UpdatedAt   time.Time `pg:"updatedAt"`
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}

type Post struct {
	tableName struct{} `pg:"posts,alias:t,discard_unknown_columns"`

	ID          int             `pg:"postId,pk"`
	Slug        string          `pg:"slug,use_zero"`
	CategoryID  *int            `pg:"categoryId"`
	Title       string          `pg:"title,use_zero"`
	PublishedAt *string         `pg:"publishedAt"`
	Excerpt     *string         `pg:"excerpt"`
	Author      *string         `pg:"author"`
	ImageURL    *string         `pg:"imageUrl"`
	Body        []content.Block `pg:"body,type:jsonb"`
	UpdatedAt   time.Time       `pg:"updatedAt"`

	Category *Category `pg:"fk:categoryId,rel:has-one"`
}
