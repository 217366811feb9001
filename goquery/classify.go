package goquery

import (
	"regexp"

	"github.com/fwojciec/pagesift"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Signals holds the structural evidence the Classifier decides on.
type Signals struct {
	// Price counts elements whose text carries a currency amount.
	Price int

	// ProductClass counts elements whose class or id contains a product hint.
	ProductClass int

	// Article counts <article> elements, elements with an article hint,
	// and elements whose text carries a publication phrase.
	Article int
}

// Zero reports whether the document carries no signal at all.
func (s Signals) Zero() bool {
	return s == Signals{}
}

// Classifier decides which category a page belongs to.
type Classifier struct {
	tables   *pagesift.Tables
	patterns *Patterns
}

// NewClassifier creates a Classifier over the given tables and patterns.
func NewClassifier(tables *pagesift.Tables, patterns *Patterns) *Classifier {
	return &Classifier{tables: tables, patterns: patterns}
}

// Classify returns the category of doc. An explicit hint is returned
// unchanged. Product evidence is checked before article evidence; a page
// with neither is Generic.
func (c *Classifier) Classify(doc *Document, hint pagesift.Category) pagesift.Category {
	if !hint.IsAuto() {
		return hint
	}

	s := c.Signals(doc)
	threshold := c.tables.ProductSignalThreshold
	switch {
	case s.Price > threshold || s.ProductClass > threshold:
		return pagesift.CategoryProduct
	case s.Article > 0:
		return pagesift.CategoryArticle
	}
	return pagesift.CategoryGeneric
}

// Signals counts the classification evidence in doc.
func (c *Classifier) Signals(doc *Document) Signals {
	var s Signals
	for _, root := range doc.Root().Nodes {
		s.Price += countLeafMatches(root, c.patterns.Price)
		s.Article += countLeafMatches(root, c.patterns.DateSignal)
		walk(root, func(n *nethtml.Node) {
			if hasHint(n, c.tables.ProductHints) {
				s.ProductClass++
			}
			if n.DataAtom == atom.Article || hasHint(n, c.tables.ArticleHints) {
				s.Article++
			}
		})
	}
	return s
}

// countLeafMatches counts the innermost elements below root whose text
// matches re. An element only counts when none of its child elements
// matches on its own, so a price is counted once, not once per ancestor.
func countLeafMatches(root *nethtml.Node, re *regexp.Regexp) int {
	var count int
	var visit func(n *nethtml.Node) bool
	visit = func(n *nethtml.Node) bool {
		inner := false
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			if visit(ch) {
				inner = true
			}
		}
		if n.Type != nethtml.ElementNode {
			return false
		}
		if inner {
			return true
		}
		if re.MatchString(nodeText(n)) {
			count++
			return true
		}
		return false
	}
	visit(root)
	return count
}
