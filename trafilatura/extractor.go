package trafilatura

import (
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/pagesift"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure MetadataExtractor implements pagesift.MetadataExtractor at compile time.
var _ pagesift.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor reads article metadata (meta tags, JSON-LD and
// bylines) with go-trafilatura.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata processes raw HTML and returns the page metadata. Pages
// trafilatura cannot read yield empty metadata.
func (e *MetadataExtractor) ExtractMetadata(rawHTML string, sourceURL string) (*pagesift.ArticleMetadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &pagesift.ArticleMetadata{}, nil
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(sourceURL); err == nil {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || result == nil {
		return &pagesift.ArticleMetadata{}, nil
	}

	m := result.Metadata
	var published string
	if !m.Date.IsZero() {
		published = m.Date.Format(time.DateOnly)
	}
	return &pagesift.ArticleMetadata{
		Title:         m.Title,
		Author:        m.Author,
		PublishedDate: published,
		Description:   m.Description,
		Image:         m.Image,
	}, nil
}
