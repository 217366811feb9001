package pagesift

// Result is the outcome of scraping a single page.
type Result struct {
	// Category is the category the page was processed as. It equals the
	// hint whenever the hint is not auto.
	Category Category

	// Records are the assembled records in document order.
	Records []*Record
}

// Scraper turns rendered markup into an ordered sequence of records.
//
// Scrape is a pure function of its inputs: it performs no I/O and returns
// identical records for identical arguments. An empty record sequence means
// the page has no extractable content and is not an error. Invalid input is
// the only error, reported as EINVALID before extraction starts: sourceURL
// must be an absolute http(s) URL so relative links can be resolved, and
// hint must be a known category.
type Scraper interface {
	Scrape(html string, sourceURL string, hint Category) (*Result, error)
}

// ArticleMetadata holds page-level article metadata found by a
// MetadataExtractor.
type ArticleMetadata struct {
	Title         string
	Author        string
	PublishedDate string
	Description   string
	Image         string
}

// MetadataExtractor reads page-level article metadata (meta tags, JSON-LD,
// byline heuristics). It serves as the last probe of whole-page article
// extraction, so implementations must be pure and should return an empty
// result rather than an error when nothing is found.
type MetadataExtractor interface {
	ExtractMetadata(html string, sourceURL string) (*ArticleMetadata, error)
}
