package goquery

import (
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// A probe is one independent attempt to resolve a field. Probes fail open:
// they return "" when their signal is absent.
type probe func() string

// firstOf returns the result of the first probe that yields a value.
func firstOf(probes ...probe) string {
	for _, p := range probes {
		if v := p(); v != "" {
			return v
		}
	}
	return ""
}

const (
	// maxLabelWords caps values read next to a label.
	maxLabelWords = 12

	// maxLabelScope is the longest text, in words, searched for an inline
	// label. Running prose is not searched.
	maxLabelScope = 24
)

// headingText returns the text of the first h1-h6 in sel.
func headingText(sel *goquery.Selection) string {
	var found string
	for _, root := range sel.Nodes {
		walk(root, func(n *nethtml.Node) {
			if found == "" && isHeading(n) {
				found = nodeText(n)
			}
		})
		if found != "" {
			break
		}
	}
	return found
}

// hintedText returns the text of the first element below sel whose class
// or id contains one of hints.
func hintedText(sel *goquery.Selection, hints []string) string {
	var found string
	for _, root := range sel.Nodes {
		walk(root, func(n *nethtml.Node) {
			if found == "" && n != root && hasHint(n, hints) {
				found = nodeText(n)
			}
		})
		if found != "" {
			break
		}
	}
	return found
}

// labelText resolves a labelled value inside sel. A label standing alone
// in its element takes its value from the next element; otherwise the
// value follows the label inside the innermost short element holding both.
func labelText(sel *goquery.Selection, l Label) string {
	for _, root := range sel.Nodes {
		var found string
		walk(root, func(n *nethtml.Node) {
			if found != "" || n == root || !l.Bare.MatchString(nodeText(n)) {
				return
			}
			if next := nextElement(n); next != nil {
				found = limitWords(nodeText(next), maxLabelWords)
			}
		})
		if found != "" {
			return found
		}
		walk(root, func(n *nethtml.Node) {
			if found != "" {
				return
			}
			if t := nodeText(n); wordCount(t) <= maxLabelScope && l.Value.MatchString(t) && !childMatches(n, l) {
				found = limitWords(l.Find(t), maxLabelWords)
			}
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// childMatches reports whether a child element of n holds a labelled value
// on its own.
func childMatches(n *nethtml.Node, l Label) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode && l.Value.MatchString(nodeText(c)) {
			return true
		}
	}
	return false
}

// nextElement returns the next element sibling of n.
func nextElement(n *nethtml.Node) *nethtml.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == nethtml.ElementNode {
			return s
		}
	}
	return nil
}

// limitWords keeps at most max words of s.
func limitWords(s string, max int) string {
	words := strings.Fields(s)
	if len(words) > max {
		words = words[:max]
	}
	return strings.Join(words, " ")
}

// paragraphs returns the non-empty text of every <p> in sel, in document
// order.
func paragraphs(sel *goquery.Selection) []string {
	var out []string
	for _, root := range sel.Nodes {
		walk(root, func(n *nethtml.Node) {
			if n.DataAtom == atom.P {
				if t := nodeText(n); t != "" {
					out = append(out, t)
				}
			}
		})
	}
	return out
}

// firstParagraph returns the first paragraph in sel with more than
// minWords words.
func firstParagraph(sel *goquery.Selection, minWords int) string {
	for _, p := range paragraphs(sel) {
		if wordCount(p) > minWords {
			return p
		}
	}
	return ""
}

// imageAttrs are read in order; the data-* attributes carry the real
// source on lazy-loading pages.
var imageAttrs = []string{"src", "data-src", "data-lazy-src", "data-original"}

// imageURLs returns the absolute URLs of the images in sel, in document
// order, skipping icons and other non-content extensions.
func imageURLs(sel *goquery.Selection, base *url.URL, skip []string, limit int) []string {
	var out []string
	for _, root := range sel.Nodes {
		walk(root, func(n *nethtml.Node) {
			if n.DataAtom != atom.Img || (limit > 0 && len(out) >= limit) {
				return
			}
			for _, key := range imageAttrs {
				v := strings.TrimSpace(attr(n, key))
				if v == "" || strings.HasPrefix(strings.ToLower(v), "data:") {
					continue
				}
				if u := resolveURL(base, v); u != "" && !hasExtension(u, skip) && !slices.Contains(out, u) {
					out = append(out, u)
				}
				return
			}
		})
	}
	return out
}

// imageURL returns the first qualifying image of sel.
func imageURL(sel *goquery.Selection, base *url.URL, skip []string) string {
	if urls := imageURLs(sel, base, skip, 1); len(urls) > 0 {
		return urls[0]
	}
	return ""
}

// linkURL returns the absolute URL of the first usable anchor in sel.
func linkURL(sel *goquery.Selection, base *url.URL) string {
	var found string
	for _, root := range sel.Nodes {
		walk(root, func(n *nethtml.Node) {
			if found != "" || n.DataAtom != atom.A {
				return
			}
			href := strings.TrimSpace(attr(n, "href"))
			if href == "" || strings.HasPrefix(href, "#") {
				return
			}
			found = resolveURL(base, href)
		})
		if found != "" {
			break
		}
	}
	return found
}

// resolveURL resolves ref against base and returns an absolute http(s)
// URL without fragment, or "" for unusable references such as
// javascript: or mailto: links.
func resolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}

// hasExtension reports whether the path of rawURL ends in one of exts.
func hasExtension(rawURL string, exts []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	return ext != "" && slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// metaContent returns the content of the first <meta> whose name or
// property equals one of keys.
func metaContent(doc *Document, keys ...string) string {
	for _, key := range keys {
		sel := doc.Root().Find(`meta[name="` + key + `"], meta[property="` + key + `"]`).First()
		if v, ok := sel.Attr("content"); ok {
			if v = cleanText(v); v != "" {
				return v
			}
		}
	}
	return ""
}
