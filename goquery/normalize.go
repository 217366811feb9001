package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pagesift"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Normalizer parses raw markup and prunes noise nodes (scripts, styles,
// navigation, forms, hidden elements) from the tree.
type Normalizer struct {
	noise cascadia.SelectorGroup
}

// NewNormalizer creates a Normalizer that prunes the noise tags in tables.
func NewNormalizer(tables *pagesift.Tables) (*Normalizer, error) {
	n := &Normalizer{}
	if len(tables.NoiseTags) == 0 {
		return n, nil
	}
	noise, err := cascadia.ParseGroup(strings.Join(tables.NoiseTags, ", "))
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "invalid noise tags: %v", err)
	}
	n.noise = noise
	return n, nil
}

// Normalize parses raw markup into a pruned Document. Parsing repairs
// malformed markup and never fails; empty or non-HTML input yields an
// empty document.
func (n *Normalizer) Normalize(raw string) *Document {
	root, err := nethtml.Parse(strings.NewReader(raw))
	if err != nil {
		// Unreachable with a strings.Reader; treat as an empty document.
		root = &nethtml.Node{Type: nethtml.DocumentNode}
	}
	n.prune(root)
	return &Document{doc: goquery.NewDocumentFromNode(root), raw: raw}
}

// prune removes noise subtrees below node. The tree is freshly parsed and
// owned by this call, so removal does not affect any other Document.
func (n *Normalizer) prune(node *nethtml.Node) {
	for c := node.FirstChild; c != nil; {
		next := c.NextSibling
		if n.isNoise(c) {
			node.RemoveChild(c)
		} else {
			n.prune(c)
		}
		c = next
	}
}

func (n *Normalizer) isNoise(c *nethtml.Node) bool {
	switch c.Type {
	case nethtml.CommentNode:
		return true
	case nethtml.ElementNode:
	default:
		return false
	}
	if n.noise != nil && n.noise.Match(c) {
		return true
	}
	// The document skeleton is kept even when a loading guard hides it.
	switch c.DataAtom {
	case atom.Html, atom.Head, atom.Body:
		return false
	}
	return isHidden(c)
}

// isHidden reports whether inline attributes hide the element.
func isHidden(n *nethtml.Node) bool {
	if hasAttr(n, "hidden") {
		return true
	}
	style := strings.ToLower(attr(n, "style"))
	if style == "" {
		return false
	}
	style = strings.Join(strings.Fields(style), "")
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}
