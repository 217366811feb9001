package goquery

import (
	"slices"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// attr returns the value of the named attribute, or "".
func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasAttr reports whether n carries the named attribute.
func hasAttr(n *nethtml.Node, key string) bool {
	return slices.ContainsFunc(n.Attr, func(a nethtml.Attribute) bool { return a.Key == key })
}

// classes returns the class list of n.
func classes(n *nethtml.Node) []string {
	return strings.Fields(attr(n, "class"))
}

// hintRank returns the index of the first hint contained in the class or
// id of n, or -1 if none matches. Matching is case-insensitive.
func hintRank(n *nethtml.Node, hints []string) int {
	if n.Type != nethtml.ElementNode {
		return -1
	}
	haystack := strings.ToLower(attr(n, "class") + " " + attr(n, "id"))
	if strings.TrimSpace(haystack) == "" {
		return -1
	}
	for i, h := range hints {
		if strings.Contains(haystack, strings.ToLower(h)) {
			return i
		}
	}
	return -1
}

// hasHint reports whether the class or id of n contains any of hints.
func hasHint(n *nethtml.Node, hints []string) bool {
	return hintRank(n, hints) >= 0
}

// isHeading reports whether n is an h1-h6 element.
func isHeading(n *nethtml.Node) bool {
	if n.Type != nethtml.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// blockTags are the elements eligible as fallback product containers.
var blockTags = map[atom.Atom]bool{
	atom.Div: true, atom.Li: true, atom.Article: true, atom.Section: true,
	atom.Td: true, atom.Tr: true, atom.Figure: true,
}

// isBlock reports whether n is a block-level container element.
func isBlock(n *nethtml.Node) bool {
	return n.Type == nethtml.ElementNode && blockTags[n.DataAtom]
}

// contains reports whether d is a strict descendant of n.
func contains(n, d *nethtml.Node) bool {
	for p := d.Parent; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// outermost drops every node that is a descendant of another node in the
// list. Document order is preserved.
func outermost(nodes []*nethtml.Node) []*nethtml.Node {
	out := make([]*nethtml.Node, 0, len(nodes))
	for _, n := range nodes {
		nested := slices.ContainsFunc(nodes, func(o *nethtml.Node) bool {
			return o != n && contains(o, n)
		})
		if !nested {
			out = append(out, n)
		}
	}
	return out
}

// signature identifies nodes that are repetitions of the same template:
// same tag and same set of classes.
func signature(n *nethtml.Node) string {
	cls := classes(n)
	slices.Sort(cls)
	return n.Data + "." + strings.Join(cls, ".")
}

// walk calls fn for every element node below root in document order,
// root included.
func walk(root *nethtml.Node, fn func(*nethtml.Node)) {
	if root.Type == nethtml.ElementNode {
		fn(root)
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// containsHint reports whether s contains any of hints, ignoring case.
func containsHint(s string, hints []string) bool {
	s = strings.ToLower(s)
	return s != "" && slices.ContainsFunc(hints, func(h string) bool {
		return strings.Contains(s, strings.ToLower(h))
	})
}
