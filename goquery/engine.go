package goquery

import (
	"net/url"

	"github.com/fwojciec/pagesift"
)

// Ensure Engine implements pagesift.Scraper at compile time.
var _ pagesift.Scraper = (*Engine)(nil)

// extractor reads one record from a container.
type extractor interface {
	Extract(c Container, sourceURL string) *pagesift.Record
}

// Engine runs the extraction pipeline: normalize, classify, locate,
// extract and assemble. Engine is safe for concurrent use; its tables and
// patterns are read-only after construction.
type Engine struct {
	tables     *pagesift.Tables
	metadata   pagesift.MetadataExtractor
	normalizer *Normalizer
	classifier *Classifier
	locator    *Locator
	extractors map[pagesift.Category]extractor
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetadataExtractor sets the extractor consulted last for whole-page
// article metadata.
func WithMetadataExtractor(m pagesift.MetadataExtractor) Option {
	return func(e *Engine) {
		e.metadata = m
	}
}

// NewEngine creates an Engine driven by a private copy of tables. Nil
// tables select pagesift.DefaultTables.
func NewEngine(tables *pagesift.Tables, opts ...Option) (*Engine, error) {
	if tables == nil {
		tables = pagesift.DefaultTables()
	}
	e := &Engine{tables: tables.Clone()}
	for _, opt := range opts {
		opt(e)
	}

	patterns, err := NewPatterns(e.tables)
	if err != nil {
		return nil, err
	}
	normalizer, err := NewNormalizer(e.tables)
	if err != nil {
		return nil, err
	}
	locator, err := NewLocator(e.tables, patterns)
	if err != nil {
		return nil, err
	}

	e.normalizer = normalizer
	e.classifier = NewClassifier(e.tables, patterns)
	e.locator = locator
	e.extractors = map[pagesift.Category]extractor{
		pagesift.CategoryProduct: NewProductExtractor(e.tables, patterns),
		pagesift.CategoryArticle: NewArticleExtractor(e.tables, patterns, e.metadata),
		pagesift.CategoryGeneric: NewGenericExtractor(e.tables),
	}
	return e, nil
}

// Normalize parses and prunes raw markup.
func (e *Engine) Normalize(html string) *Document {
	return e.normalizer.Normalize(html)
}

// Scrape extracts the records of a rendered page.
func (e *Engine) Scrape(html string, sourceURL string, hint pagesift.Category) (*pagesift.Result, error) {
	if err := validateSourceURL(sourceURL); err != nil {
		return nil, err
	}
	hint, err := pagesift.ParseCategory(string(hint))
	if err != nil {
		return nil, err
	}

	doc := e.Normalize(html)
	category := e.classifier.Classify(doc, hint)
	ex := e.extractors[category]

	var records []*pagesift.Record
	for _, c := range e.locator.Locate(doc, category) {
		records = append(records, ex.Extract(c, sourceURL))
	}
	return &pagesift.Result{
		Category: category,
		Records:  pagesift.Assemble(records, category),
	}, nil
}

func validateSourceURL(sourceURL string) error {
	if sourceURL == "" {
		return pagesift.Errorf(pagesift.EINVALID, "source URL required")
	}
	u, err := url.Parse(sourceURL)
	if err != nil {
		return pagesift.Errorf(pagesift.EINVALID, "invalid source URL: %v", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return pagesift.Errorf(pagesift.EINVALID, "source URL must be an absolute http(s) URL: %s", sourceURL)
	}
	return nil
}
