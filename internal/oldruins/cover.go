package oldruins

import (
	"fmt"
	"strings"
)

// DefaultGradient is used when a post has no image and no known category.
const DefaultGradient = "linear-gradient(135deg, rgba(156,199,178,0.45), rgba(20,20,20,0.04))"

var categoryGradients = map[string]string{
	"journal-articles": "linear-gradient(135deg, rgba(156,199,178,0.75), rgba(20,20,20,0.08))",
	"devotionals":      "linear-gradient(135deg, rgba(156,199,178,0.55), rgba(20,20,20,0.05))",
	"blogs":            "linear-gradient(135deg, rgba(156,199,178,0.45), rgba(20,20,20,0.04))",
	"reviews":          "linear-gradient(135deg, rgba(156,199,178,0.40), rgba(20,20,20,0.06))",
	"resources":        "linear-gradient(135deg, rgba(156,199,178,0.35), rgba(20,20,20,0.05))",
}

// cssStringEscaper escapes a value for a double-quoted CSS string.
var cssStringEscaper = strings.NewReplacer(
	`\`, `\5c `,
	`"`, `\22 `,
	"\n", `\a `,
	"\r", `\d `,
	"\f", `\c `,
)

// Cover is either an image fill or a gradient. Exactly one field is set.
type Cover struct {
	ImageURL string
	Gradient string
}

// NewCover picks the cover for a post: the image wins, then the category
// gradient, then DefaultGradient.
func NewCover(imageURL, categorySlug string) Cover {
	if imageURL != "" {
		return Cover{ImageURL: imageURL}
	}

	return Cover{Gradient: CategoryGradient(categorySlug)}
}

// CategoryGradient returns the fixed gradient of a category slug.
func CategoryGradient(slug string) string {
	if g, ok := categoryGradients[slug]; ok {
		return g
	}
	return DefaultGradient
}

// IsImage reports whether the cover is an image fill.
func (c Cover) IsImage() bool {
	return c.ImageURL != ""
}

// CSS returns the value for a CSS background declaration.
func (c Cover) CSS() string {
	if c.ImageURL != "" {
		return fmt.Sprintf(`url("%s") center/cover no-repeat`, cssStringEscaper.Replace(c.ImageURL))
	}
	if c.Gradient == "" {
		return DefaultGradient
	}
	return c.Gradient
}
