package readability

import (
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/pagesift"
	"github.com/go-shiori/go-readability"
)

// Ensure MetadataExtractor implements pagesift.MetadataExtractor at compile time.
var _ pagesift.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor reads article metadata with go-readability.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata processes raw HTML and returns the page metadata.
func (e *MetadataExtractor) ExtractMetadata(rawHTML string, sourceURL string) (*pagesift.ArticleMetadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &pagesift.ArticleMetadata{}, nil
	}

	pageURL, err := url.Parse(sourceURL)
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "invalid source URL: %v", err)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return &pagesift.ArticleMetadata{}, nil
	}

	var published string
	if article.PublishedTime != nil {
		published = article.PublishedTime.Format(time.DateOnly)
	}
	return &pagesift.ArticleMetadata{
		Title:         article.Title,
		Author:        article.Byline,
		PublishedDate: published,
		Description:   article.Excerpt,
		Image:         article.Image,
	}, nil
}
