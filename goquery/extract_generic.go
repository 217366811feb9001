package goquery

import (
	"github.com/fwojciec/pagesift"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// GenericExtractor reads the title, content blocks and images of a page
// that is neither a product nor an article.
type GenericExtractor struct {
	tables *pagesift.Tables
}

// NewGenericExtractor creates a GenericExtractor.
func NewGenericExtractor(tables *pagesift.Tables) *GenericExtractor {
	return &GenericExtractor{tables: tables}
}

// Extract returns the generic record held by c.
func (e *GenericExtractor) Extract(c Container, sourceURL string) *pagesift.Record {
	title := headingText(c.Selection)
	if title == "" {
		title = c.Document().Title()
	}
	return &pagesift.Record{
		Category:      pagesift.CategoryGeneric,
		Title:         title,
		ContentBlocks: e.contentBlocks(c),
		Images:        imageURLs(c.Selection, baseURL(sourceURL), e.tables.SkipImageExtensions, 0),
	}
}

// contentBlocks returns the text of the container's direct p, div and
// section children that exceed the block threshold. When none does, every
// such paragraph of the document is used instead.
func (e *GenericExtractor) contentBlocks(c Container) []string {
	var blocks []string
	for _, root := range c.Selection.Nodes {
		for ch := root.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.Type != nethtml.ElementNode {
				continue
			}
			switch ch.DataAtom {
			case atom.P, atom.Div, atom.Section:
				blocks = e.appendBlock(blocks, nodeText(ch))
			}
		}
	}
	if len(blocks) > 0 {
		return blocks
	}
	for _, p := range paragraphs(c.Document().Body()) {
		blocks = e.appendBlock(blocks, p)
	}
	return blocks
}

func (e *GenericExtractor) appendBlock(blocks []string, text string) []string {
	if charCount(text) > e.tables.MinBlockChars {
		return append(blocks, text)
	}
	return blocks
}
