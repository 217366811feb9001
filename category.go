package pagesift

import "strings"

// Category identifies which field set and container strategy applies to a page.
type Category string

// Supported categories. CategoryAuto is only valid as a classification hint.
const (
	CategoryAuto    Category = "auto"
	CategoryProduct Category = "product"
	CategoryArticle Category = "article"
	CategoryGeneric Category = "generic"
)

// Categories returns the concrete categories in classifier priority order.
func Categories() []Category {
	return []Category{CategoryProduct, CategoryArticle, CategoryGeneric}
}

// ParseCategory converts a user-supplied name into a Category.
// Matching is case-insensitive and an empty string means auto.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CategoryAuto, nil
	case CategoryAuto, CategoryProduct, CategoryArticle, CategoryGeneric:
		return c, nil
	}
	return "", Errorf(EINVALID, "unknown category %q", s)
}

// IsAuto reports whether the category asks for automatic classification.
func (c Category) IsAuto() bool {
	return c == CategoryAuto || c == ""
}
