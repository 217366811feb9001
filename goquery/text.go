package goquery

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// strictPolicy strips markup that survives as literal text, e.g. escaped
// tags inside a product description.
var strictPolicy = bluemonday.StrictPolicy()

// cleanText returns s in NFC form with residual markup removed and
// whitespace collapsed to single spaces.
func cleanText(s string) string {
	s = norm.NFC.String(s)
	if strings.ContainsRune(s, '<') {
		s = html.UnescapeString(strictPolicy.Sanitize(s))
	}
	return strings.Join(strings.Fields(s), " ")
}

// separators are elements whose boundaries separate words in rendered text.
var separators = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Button: true, atom.Dd: true, atom.Div: true, atom.Dl: true,
	atom.Dt: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Img: true, atom.Label: true, atom.Li: true,
	atom.Main: true, atom.Ol: true, atom.Option: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Td: true, atom.Th: true, atom.Tr: true,
	atom.Ul: true, atom.A: true, atom.Time: true,
}

// writeText appends the rendered text of n to b, inserting a space at the
// boundaries of block-level elements so adjacent blocks do not fuse.
func writeText(n *nethtml.Node, b *strings.Builder) {
	switch n.Type {
	case nethtml.TextNode:
		b.WriteString(n.Data)
	case nethtml.ElementNode, nethtml.DocumentNode:
		sep := n.Type == nethtml.ElementNode && separators[n.DataAtom]
		if sep {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeText(c, b)
		}
		if sep {
			b.WriteByte(' ')
		}
	}
}

// nodeText returns the cleaned visible text of a single node.
func nodeText(n *nethtml.Node) string {
	var b strings.Builder
	writeText(n, &b)
	return cleanText(b.String())
}

// visibleText returns the cleaned visible text of every node in sel.
func visibleText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(n, &b)
		b.WriteByte(' ')
	}
	return cleanText(b.String())
}

// wordCount returns the number of whitespace-separated words in s.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// charCount returns the number of characters in s.
func charCount(s string) int {
	return utf8.RuneCountInString(s)
}

// truncate shortens s to at most limit runes, cutting at the last word
// boundary and appending an ellipsis. Strings within the limit are
// returned unchanged.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:limit])
	if i := strings.LastIndexFunc(cut, unicode.IsSpace); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRightFunc(cut, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "..."
}
