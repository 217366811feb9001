package goquery

import (
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pagesift"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	typedProductSelector = `[itemtype*="schema.org/Product"], [typeof="Product"]`
	listingHeadings      = "h2, h3, h4"
)

// Locator finds the containers holding one record each.
type Locator struct {
	tables   *pagesift.Tables
	patterns *Patterns
	typed    cascadia.SelectorGroup
	headings cascadia.SelectorGroup
}

// NewLocator creates a Locator over the given tables and patterns.
func NewLocator(tables *pagesift.Tables, patterns *Patterns) (*Locator, error) {
	typed, err := cascadia.ParseGroup(typedProductSelector)
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINTERNAL, "invalid product selector: %v", err)
	}
	headings, err := cascadia.ParseGroup(listingHeadings)
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINTERNAL, "invalid heading selector: %v", err)
	}
	return &Locator{tables: tables, patterns: patterns, typed: typed, headings: headings}, nil
}

// Locate returns the containers of doc for category, in document order.
// An empty result is valid.
func (l *Locator) Locate(doc *Document, category pagesift.Category) []Container {
	switch category {
	case pagesift.CategoryProduct:
		return l.wrap(doc, l.locateProducts(doc), false)
	case pagesift.CategoryArticle:
		return l.locateArticles(doc)
	default:
		return []Container{doc.container(l.locateMain(doc), true)}
	}
}

func (l *Locator) wrap(doc *Document, nodes []*nethtml.Node, wholePage bool) []Container {
	out := make([]Container, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, doc.container(n, wholePage))
	}
	return out
}

// locateProducts runs the product strategies in order. The first strategy
// that yields a container above the noise floor wins.
func (l *Locator) locateProducts(doc *Document) []*nethtml.Node {
	body := bodyNode(doc)
	strategies := []func(*nethtml.Node) []*nethtml.Node{
		l.hintedProducts,
		l.typedProducts,
		l.blockProducts,
	}
	for _, strategy := range strategies {
		if nodes := strategy(body); len(nodes) > 0 {
			return nodes
		}
	}
	return nil
}

// hintedProducts returns the elements whose class or id contains a product
// hint. Nested matches resolve to the outermost, and the family of the most
// frequent hint wins.
func (l *Locator) hintedProducts(body *nethtml.Node) []*nethtml.Node {
	var nodes []*nethtml.Node
	walk(body, func(n *nethtml.Node) {
		if n != body && hasHint(n, l.tables.ProductHints) && l.aboveFloor(n) {
			nodes = append(nodes, n)
		}
	})
	rank := func(n *nethtml.Node) int { return hintRank(n, l.tables.ProductHints) }
	return largestFamily(unwrap(nodes, rank), rank)
}

// typedProducts returns the outermost schema.org Product elements.
func (l *Locator) typedProducts(body *nethtml.Node) []*nethtml.Node {
	var nodes []*nethtml.Node
	walk(body, func(n *nethtml.Node) {
		if n != body && l.typed.Match(n) && l.aboveFloor(n) {
			nodes = append(nodes, n)
		}
	})
	return outermost(nodes)
}

// blockProducts returns the outermost short-classed block elements that
// look like a product: a price, a heading or a title-like child.
func (l *Locator) blockProducts(body *nethtml.Node) []*nethtml.Node {
	var nodes []*nethtml.Node
	walk(body, func(n *nethtml.Node) {
		if n == body || !isBlock(n) {
			return
		}
		if k := len(classes(n)); k < 1 || k > 3 {
			return
		}
		if l.looksLikeProduct(n) && l.aboveFloor(n) {
			nodes = append(nodes, n)
		}
	})
	return unwrap(nodes, func(*nethtml.Node) int { return 0 })
}

func (l *Locator) looksLikeProduct(n *nethtml.Node) bool {
	if l.patterns.Price.MatchString(nodeText(n)) {
		return true
	}
	found := false
	walk(n, func(d *nethtml.Node) {
		if d != n && (isHeading(d) || hasHint(d, l.tables.TitleHints)) {
			found = true
		}
	})
	return found
}

// locateArticles returns a single whole-page container when the page holds
// one dominant article, and one container per listed article otherwise.
func (l *Locator) locateArticles(doc *Document) []Container {
	body := bodyNode(doc)

	var tagged, hinted []*nethtml.Node
	walk(body, func(n *nethtml.Node) {
		if n.DataAtom == atom.Article {
			tagged = append(tagged, n)
		}
		if hasHint(n, l.tables.ArticleHints) {
			hinted = append(hinted, n)
		}
	})
	tagged = outermost(tagged)
	hinted = outermost(hinted)

	switch {
	case len(tagged) == 1:
		return []Container{doc.container(body, true)}
	case len(tagged) == 0 && len(hinted) > 0 && !repeated(hinted):
		return []Container{doc.container(body, true)}
	}

	if nodes := l.listedArticles(body); len(nodes) > 0 {
		return l.wrap(doc, nodes, false)
	}
	if len(tagged) == 0 && len(hinted) == 0 {
		// A page classified as an article without article markup is read
		// as a single article.
		return []Container{doc.container(body, true)}
	}
	return nil
}

// listedArticles returns the repeated article-listing elements or, failing
// that, the parents of the h2-h4 headings.
func (l *Locator) listedArticles(body *nethtml.Node) []*nethtml.Node {
	var nodes []*nethtml.Node
	walk(body, func(n *nethtml.Node) {
		if n != body && hasHint(n, l.tables.ArticleListingHints) && l.aboveFloor(n) {
			nodes = append(nodes, n)
		}
	})
	rank := func(n *nethtml.Node) int { return hintRank(n, l.tables.ArticleListingHints) }
	if nodes = largestFamily(unwrap(nodes, rank), rank); len(nodes) > 0 {
		return nodes
	}

	seen := make(map[*nethtml.Node]bool)
	walk(body, func(n *nethtml.Node) {
		if !l.headings.Match(n) {
			return
		}
		p := n.Parent
		if p == nil || p == body || p.Type != nethtml.ElementNode || seen[p] {
			return
		}
		seen[p] = true
		nodes = append(nodes, p)
	})
	return outermost(nodes)
}

// locateMain returns the main content element of doc: the <main> element,
// else the first element whose id and then class carries a main content
// hint, else the body.
func (l *Locator) locateMain(doc *Document) *nethtml.Node {
	body := bodyNode(doc)
	var mainEl, byID, byClass *nethtml.Node
	walk(body, func(n *nethtml.Node) {
		switch {
		case mainEl == nil && n.DataAtom == atom.Main:
			mainEl = n
		case n == body:
		case byID == nil && containsHint(attr(n, "id"), l.tables.MainContentHints):
			byID = n
		case byClass == nil && containsHint(attr(n, "class"), l.tables.MainContentHints) &&
			charCount(nodeText(n)) > l.tables.MinBlockChars:
			byClass = n
		}
	})
	for _, n := range []*nethtml.Node{mainEl, byID, byClass} {
		if n != nil {
			return n
		}
	}
	return body
}

// aboveFloor reports whether n has enough visible words to be a container.
func (l *Locator) aboveFloor(n *nethtml.Node) bool {
	return wordCount(nodeText(n)) >= l.tables.MinContainerWords
}

// bodyNode returns the body element of doc, or its root when there is none.
func bodyNode(doc *Document) *nethtml.Node {
	return doc.Body().Nodes[0]
}

// unwrap resolves nested matches to the outermost one. A match holding two
// or more matches of its own family is a list wrapper rather than a record,
// and is replaced by those inner matches. Document order is preserved.
func unwrap(nodes []*nethtml.Node, family func(*nethtml.Node) int) []*nethtml.Node {
	var out []*nethtml.Node
	for _, n := range outermost(nodes) {
		var inner []*nethtml.Node
		for _, d := range nodes {
			if contains(n, d) && family(d) == family(n) {
				inner = append(inner, d)
			}
		}
		if len(outermost(inner)) >= 2 {
			out = append(out, unwrap(inner, family)...)
			continue
		}
		out = append(out, n)
	}
	return out
}

// largestFamily partitions nodes by family and returns the largest one.
// Ties go to the lower family, then to the family that appears first.
func largestFamily(nodes []*nethtml.Node, family func(*nethtml.Node) int) []*nethtml.Node {
	groups := make(map[int][]*nethtml.Node)
	var order []int
	for _, n := range nodes {
		f := family(n)
		if _, ok := groups[f]; !ok {
			order = append(order, f)
		}
		groups[f] = append(groups[f], n)
	}

	var best []*nethtml.Node
	bestFamily := 0
	for _, f := range order {
		g := groups[f]
		if best == nil || len(g) > len(best) || (len(g) == len(best) && f < bestFamily) {
			best, bestFamily = g, f
		}
	}
	return best
}

// repeated reports whether two or more nodes share a signature, marking a
// listing rather than one dominant element.
func repeated(nodes []*nethtml.Node) bool {
	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		sig := signature(n)
		if seen[sig] {
			return true
		}
		seen[sig] = true
	}
	return false
}
