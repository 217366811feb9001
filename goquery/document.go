package goquery

import (
	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"
)

// Document is a normalized page. It is produced once per page by the
// Normalizer and is never mutated afterwards; every later stage only reads
// from it.
type Document struct {
	doc *goquery.Document
	raw string
}

// Root returns the document root selection.
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

// Body returns the body element, or the root if the document has none.
func (d *Document) Body() *goquery.Selection {
	if body := d.doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return d.doc.Selection
}

// Title returns the text of the document's own title element.
func (d *Document) Title() string {
	return visibleText(d.doc.Find("head title").First())
}

// Raw returns the markup the document was parsed from.
func (d *Document) Raw() string {
	return d.raw
}

// HTML renders the normalized document.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// Container is a read-only view of the subtree believed to hold one record.
type Container struct {
	// Selection holds exactly one node: the container root.
	Selection *goquery.Selection

	// WholePage is set when the container is the entire document, as for
	// single-article pages and generic pages.
	WholePage bool

	doc *Document
}

// Document returns the document the container belongs to.
func (c Container) Document() *Document {
	return c.doc
}

// Text returns the visible text of the container.
func (c Container) Text() string {
	return visibleText(c.Selection)
}

// container wraps n, a node of d, as a Container.
func (d *Document) container(n *nethtml.Node, wholePage bool) Container {
	return Container{Selection: d.doc.FindNodes(n), WholePage: wholePage, doc: d}
}
