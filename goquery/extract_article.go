package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesift"
)

// ArticleExtractor reads article fields from a container. Whole-page
// containers additionally consult page metadata: meta tags, the canonical
// link and, as the last probe, an optional MetadataExtractor.
type ArticleExtractor struct {
	tables   *pagesift.Tables
	patterns *Patterns
	metadata pagesift.MetadataExtractor
}

// NewArticleExtractor creates an ArticleExtractor. metadata may be nil.
func NewArticleExtractor(tables *pagesift.Tables, patterns *Patterns, metadata pagesift.MetadataExtractor) *ArticleExtractor {
	return &ArticleExtractor{tables: tables, patterns: patterns, metadata: metadata}
}

// Extract returns the article record held by c. In a whole-page container
// the content is every paragraph of the page; in a listing container it is
// the first paragraph.
func (e *ArticleExtractor) Extract(c Container, sourceURL string) *pagesift.Record {
	sel := c.Selection
	doc := c.Document()
	base := baseURL(sourceURL)
	meta := e.lazyMetadata(c, sourceURL)

	var content string
	if ps := paragraphs(sel); len(ps) > 0 {
		if c.WholePage {
			content = strings.Join(ps, "\n\n")
		} else {
			content = ps[0]
		}
	}

	return &pagesift.Record{
		Category: pagesift.CategoryArticle,
		Title: firstOf(
			func() string { return headingText(sel) },
			func() string { return hintedText(sel, e.tables.TitleHints) },
			func() string { return pageTitle(c) },
			func() string { return meta().Title },
		),
		Author: firstOf(
			func() string { return labelText(sel, e.patterns.Author) },
			func() string { return authorElement(sel) },
			func() string { return wholePage(c, func() string { return metaContent(doc, "author", "article:author") }) },
			func() string { return meta().Author },
		),
		PublishedDate: firstOf(
			func() string { return labelText(sel, e.patterns.Date) },
			func() string { return timeElement(sel) },
			func() string {
				return wholePage(c, func() string { return metaContent(doc, "article:published_time", "date") })
			},
			func() string { return meta().PublishedDate },
		),
		Content: content,
		Summary: firstOf(
			func() string { return hintedText(sel, e.tables.SummaryHints) },
			func() string { return truncate(content, e.tables.SummaryLength) },
			func() string { return wholePage(c, func() string { return metaContent(doc, "description", "og:description") }) },
			func() string { return meta().Description },
		),
		ImageURL: firstOf(
			func() string { return imageURL(sel, base, e.tables.SkipImageExtensions) },
			func() string { return wholePage(c, func() string { return resolveURL(base, metaContent(doc, "og:image")) }) },
			func() string { return resolveURL(base, meta().Image) },
		),
		URL: firstOf(
			func() string { return wholePage(c, func() string { return canonicalURL(doc, base) }) },
			func() string { return linkURL(sel, base) },
		),
	}
}

// lazyMetadata returns a function yielding the page metadata. The
// extractor runs at most once, and only for whole-page containers.
func (e *ArticleExtractor) lazyMetadata(c Container, sourceURL string) func() *pagesift.ArticleMetadata {
	var cached *pagesift.ArticleMetadata
	return func() *pagesift.ArticleMetadata {
		if cached != nil {
			return cached
		}
		cached = &pagesift.ArticleMetadata{}
		if e.metadata == nil || !c.WholePage {
			return cached
		}
		m, err := e.metadata.ExtractMetadata(c.Document().Raw(), sourceURL)
		if err != nil || m == nil {
			return cached
		}
		cached = &pagesift.ArticleMetadata{
			Title:         cleanText(m.Title),
			Author:        cleanText(m.Author),
			PublishedDate: cleanText(m.PublishedDate),
			Description:   cleanText(m.Description),
			Image:         strings.TrimSpace(m.Image),
		}
		return cached
	}
}

// wholePage runs p only for whole-page containers.
func wholePage(c Container, p probe) string {
	if !c.WholePage {
		return ""
	}
	return p()
}

// authorElement returns the text of the first element marked up as the
// author.
func authorElement(sel *goquery.Selection) string {
	return limitWords(visibleText(sel.Find(`[itemprop="author"], [rel="author"]`).First()), maxLabelWords)
}

// timeElement returns the machine-readable date of the first <time>
// element, or its text when it has none.
func timeElement(sel *goquery.Selection) string {
	t := sel.Find("time").First()
	if t.Length() == 0 {
		return ""
	}
	if v, ok := t.Attr("datetime"); ok && strings.TrimSpace(v) != "" {
		return cleanText(v)
	}
	return visibleText(t)
}

// canonicalURL returns the absolute canonical URL declared by the page.
func canonicalURL(doc *Document, base *url.URL) string {
	if href, ok := doc.Root().Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		if u := resolveURL(base, href); u != "" {
			return u
		}
	}
	return resolveURL(base, metaContent(doc, "og:url"))
}
