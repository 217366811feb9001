package goquery

import (
	"net/url"

	"github.com/fwojciec/pagesift"
)

// ProductExtractor reads product fields from a container.
type ProductExtractor struct {
	tables   *pagesift.Tables
	patterns *Patterns
}

// NewProductExtractor creates a ProductExtractor.
func NewProductExtractor(tables *pagesift.Tables, patterns *Patterns) *ProductExtractor {
	return &ProductExtractor{tables: tables, patterns: patterns}
}

// Extract returns the product record held by c. Fields whose probes find
// nothing are left empty.
func (e *ProductExtractor) Extract(c Container, sourceURL string) *pagesift.Record {
	sel := c.Selection
	text := c.Text()
	base := baseURL(sourceURL)

	return &pagesift.Record{
		Category: pagesift.CategoryProduct,
		Title: firstOf(
			func() string { return headingText(sel) },
			func() string { return hintedText(sel, e.tables.TitleHints) },
			func() string { return pageTitle(c) },
		),
		Price:    e.patterns.FindPrice(text),
		Brand:    labelText(sel, e.patterns.Brand),
		Quantity: e.patterns.FindQuantity(text),
		Description: firstOf(
			func() string { return hintedText(sel, e.tables.DescriptionHints) },
			func() string { return firstParagraph(sel, e.tables.MinDescriptionWords) },
		),
		ImageURL: imageURL(sel, base, e.tables.SkipImageExtensions),
		URL:      linkURL(sel, base),
	}
}

// pageTitle returns the document title for whole-page containers.
func pageTitle(c Container) string {
	if !c.WholePage {
		return ""
	}
	return c.Document().Title()
}

// baseURL parses sourceURL for resolving relative references. An
// unparsable URL resolves nothing.
func baseURL(sourceURL string) *url.URL {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return &url.URL{}
	}
	return u
}
