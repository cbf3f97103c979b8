package content

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	TypePost     = "post"
	TypeCategory = "category"

	SlugMaxLength        = 96
	TitleMaxLength       = 255
	AuthorMaxLength      = 255
	ExcerptMaxLength     = 280
	PublishedAtMaxLength = 32
)

// Field describes one document field in the studio schema.
type Field struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	To        string `json:"to,omitempty"`
	Of        string `json:"of,omitempty"`
	Required  bool   `json:"required,omitempty"`
	MaxLength int    `json:"maxLength,omitempty"`
}

// DocumentType describes a document type in the studio schema.
type DocumentType struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Schema is the wire contract between the authoring studio and the query layer.
var Schema = []DocumentType{
	{
		Name:  TypeCategory,
		Title: "Category",
		Fields: []Field{
			{Name: "title", Title: "Title", Type: "string", Required: true, MaxLength: TitleMaxLength},
			{Name: "slug", Title: "Slug", Type: "slug", Required: true, MaxLength: SlugMaxLength},
			{Name: "description", Title: "Description", Type: "text"},
		},
	},
	{
		Name:  TypePost,
		Title: "Post",
		Fields: []Field{
			{Name: "title", Title: "Title", Type: "string", Required: true, MaxLength: TitleMaxLength},
			{Name: "slug", Title: "Slug", Type: "slug", Required: true, MaxLength: SlugMaxLength},
			{Name: "category", Title: "Category", Type: "reference", To: TypeCategory, Required: true},
			{Name: "publishedAt", Title: "Published date", Type: "date", Required: true, MaxLength: PublishedAtMaxLength},
			{Name: "excerpt", Title: "Excerpt", Type: "text", MaxLength: ExcerptMaxLength},
			{Name: "author", Title: "Author", Type: "string", MaxLength: AuthorMaxLength},
			{Name: "heroImage", Title: "Cover Image", Type: "image"},
			{Name: "body", Title: "Body", Type: "array", Of: "block", Required: true},
		},
	},
}

var (
	ErrRequired = errors.New("required")
	ErrTooLong  = errors.New("too long")
	ErrInvalid  = errors.New("invalid")

	slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// FieldError is a schema rule violation on one field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidatePost checks a post against the post schema and returns all
// violations joined, or nil.
func ValidatePost(p Post) error {
	var errs []error
	add := func(field string, err error) {
		errs = append(errs, &FieldError{Field: field, Err: err})
	}

	if err := checkTitle(p.Title); err != nil {
		add("title", err)
	}
	if err := checkSlug(p.Slug); err != nil {
		add("slug", err)
	}

	if p.CategorySlug == "" {
		add("category", ErrRequired)
	}

	switch {
	case p.PublishedAt == "":
		add("publishedAt", ErrRequired)
	case len(p.PublishedAt) > PublishedAtMaxLength:
		add("publishedAt", ErrTooLong)
	case !dateRe.MatchString(p.PublishedAt):
		add("publishedAt", ErrInvalid)
	}

	if utf8.RuneCountInString(p.Excerpt) > ExcerptMaxLength {
		add("excerpt", ErrTooLong)
	}
	if utf8.RuneCountInString(p.Author) > AuthorMaxLength {
		add("author", ErrTooLong)
	}

	if len(p.Body) == 0 {
		add("body", ErrRequired)
	}

	return errors.Join(errs...)
}

// ValidateCategory checks a category against the category schema.
func ValidateCategory(c Category) error {
	var errs []error
	if err := checkTitle(c.Title); err != nil {
		errs = append(errs, &FieldError{Field: "title", Err: err})
	}
	if err := checkSlug(c.Slug); err != nil {
		errs = append(errs, &FieldError{Field: "slug", Err: err})
	}

	return errors.Join(errs...)
}

func checkTitle(title string) error {
	switch {
	case title == "":
		return ErrRequired
	case utf8.RuneCountInString(title) > TitleMaxLength:
		return ErrTooLong
	}
	return nil
}

func checkSlug(slug string) error {
	switch {
	case slug == "":
		return ErrRequired
	case utf8.RuneCountInString(slug) > SlugMaxLength:
		return ErrTooLong
	case !slugRe.MatchString(slug):
		return ErrInvalid
	}
	return nil
}
