// Package fs writes scrape output to the local filesystem.
package fs

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// URLToPath converts a page URL to a relative markdown file path.
// Example: https://shop.example.com/chips/salted → chips/salted.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	// Cleaning against the root keeps ".." segments inside the tree.
	clean := path.Clean("/" + u.Path)
	if clean == "/" {
		return "index.md", nil
	}
	rel := strings.TrimPrefix(clean, "/")
	if strings.HasSuffix(u.Path, "/") {
		return rel + "/index.md", nil
	}
	for _, ext := range []string{".html", ".htm"} {
		rel = strings.TrimSuffix(rel, ext)
	}
	return rel + ".md", nil
}

// FormatMarkdown prefixes page markdown with YAML frontmatter.
func FormatMarkdown(sourceURL, title, markdown string, fetched time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(sourceURL)
	if title != "" {
		b.WriteString("\ntitle: ")
		b.WriteString(title)
	}
	b.WriteString("\nfetched: ")
	b.WriteString(fetched.Format(time.DateOnly))
	b.WriteString("\n---\n\n")
	b.WriteString(markdown)
	return b.String()
}

// MarkdownDir writes page markdown into a directory tree mirroring URL
// paths.
type MarkdownDir struct {
	baseDir string
}

// NewMarkdownDir creates a MarkdownDir rooted at baseDir.
func NewMarkdownDir(baseDir string) *MarkdownDir {
	return &MarkdownDir{baseDir: baseDir}
}

// WritePage writes the page atomically and returns the file path.
func (d *MarkdownDir) WritePage(sourceURL, title, markdown string, fetched time.Time) (string, error) {
	relPath, err := URLToPath(sourceURL)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(d.baseDir, relPath)
	if err := writeAtomic(fullPath, []byte(FormatMarkdown(sourceURL, title, markdown, fetched))); err != nil {
		return "", err
	}
	return fullPath, nil
}
