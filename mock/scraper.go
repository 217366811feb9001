package mock

import "github.com/fwojciec/pagesift"

var _ pagesift.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of pagesift.Scraper.
type Scraper struct {
	ScrapeFn func(html string, sourceURL string, hint pagesift.Category) (*pagesift.Result, error)
}

func (s *Scraper) Scrape(html string, sourceURL string, hint pagesift.Category) (*pagesift.Result, error) {
	return s.ScrapeFn(html, sourceURL, hint)
}

var _ pagesift.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of pagesift.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string, sourceURL string) (*pagesift.ArticleMetadata, error)
}

func (m *MetadataExtractor) ExtractMetadata(html string, sourceURL string) (*pagesift.ArticleMetadata, error) {
	return m.ExtractMetadataFn(html, sourceURL)
}
