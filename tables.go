package pagesift

import "slices"

// Tables holds the hint lists and thresholds that drive the extraction
// heuristics. A Tables value is passed into the engine at construction and
// must not be modified afterwards; use Clone to derive a variant.
type Tables struct {
	// CurrencySymbols prefix a numeric amount in a price match.
	CurrencySymbols []string `yaml:"currency_symbols"`

	// ProductHints are class/id substrings marking product containers,
	// in locator priority order.
	ProductHints []string `yaml:"product_hints"`

	// ArticleHints are class/id substrings marking article-like nodes.
	ArticleHints []string `yaml:"article_hints"`

	// ArticleListingHints mark repeated teaser nodes on listing pages.
	ArticleListingHints []string `yaml:"article_listing_hints"`

	// TitleHints mark title-like classes inside a container.
	TitleHints []string `yaml:"title_hints"`

	// DescriptionHints mark product description blocks.
	DescriptionHints []string `yaml:"description_hints"`

	// SummaryHints mark separate article summary or excerpt blocks.
	SummaryHints []string `yaml:"summary_hints"`

	// MainContentHints mark the main content region of a generic page.
	MainContentHints []string `yaml:"main_content_hints"`

	// NoiseTags are element names pruned by the normalizer.
	NoiseTags []string `yaml:"noise_tags"`

	// QuantityUnits are the accepted unit suffixes of a quantity match.
	QuantityUnits []string `yaml:"quantity_units"`

	// BrandLabels, AuthorLabels and DateLabels introduce labelled values.
	BrandLabels  []string `yaml:"brand_labels"`
	AuthorLabels []string `yaml:"author_labels"`
	DateLabels   []string `yaml:"date_labels"`

	// DateSignals are phrases that count as article signals when they
	// appear in free text.
	DateSignals []string `yaml:"date_signals"`

	// SkipImageExtensions exclude non-content images such as icons.
	SkipImageExtensions []string `yaml:"skip_image_extensions"`

	// UserAgents is the pool fetchers pick a random user agent from.
	UserAgents []string `yaml:"user_agents"`

	// MinContainerWords is the noise floor for product containers.
	MinContainerWords int `yaml:"min_container_words"`

	// MinDescriptionWords is the word count a paragraph must exceed to
	// serve as a fallback product description.
	MinDescriptionWords int `yaml:"min_description_words"`

	// MinBlockChars is the visible text length a generic content block
	// must exceed.
	MinBlockChars int `yaml:"min_block_chars"`

	// SummaryLength is the rune budget of a truncated article summary.
	SummaryLength int `yaml:"summary_length"`

	// ProductSignalThreshold is the count either product signal must
	// exceed for a page to classify as a product page.
	ProductSignalThreshold int `yaml:"product_signal_threshold"`
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() *Tables {
	return &Tables{
		CurrencySymbols:     []string{"$", "€", "£", "¥", "₹", "₩", "₽", "Rs.", "Rs", "INR", "USD", "EUR", "GBP"},
		ProductHints:        []string{"product", "item", "card", "goods", "sku"},
		ArticleHints:        []string{"article", "post", "story", "news"},
		ArticleListingHints: []string{"article", "post", "story", "news", "entry", "teaser"},
		TitleHints:          []string{"title", "name", "heading", "headline"},
		DescriptionHints:    []string{"description", "desc", "details", "overview"},
		SummaryHints:        []string{"summary", "excerpt", "teaser", "dek", "standfirst", "lede"},
		MainContentHints:    []string{"main", "content", "page"},
		NoiseTags:           []string{"script", "style", "noscript", "footer", "nav", "aside", "form", "input"},
		QuantityUnits:       []string{"g", "ml", "kg", "pack", "pcs", "piece", "tablet", "capsule"},
		BrandLabels:         []string{"brand"},
		AuthorLabels:        []string{"written by", "author", "by"},
		DateLabels:          []string{"published on", "published", "posted on", "updated on", "date"},
		DateSignals:         []string{"published", "posted on", "date:"},
		SkipImageExtensions: []string{".ico", ".svg"},
		UserAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0",
		},
		MinContainerWords:      5,
		MinDescriptionWords:    5,
		MinBlockChars:          30,
		SummaryLength:          150,
		ProductSignalThreshold: 2,
	}
}

// Clone returns a deep copy of the tables.
func (t *Tables) Clone() *Tables {
	c := *t
	c.CurrencySymbols = slices.Clone(t.CurrencySymbols)
	c.ProductHints = slices.Clone(t.ProductHints)
	c.ArticleHints = slices.Clone(t.ArticleHints)
	c.ArticleListingHints = slices.Clone(t.ArticleListingHints)
	c.TitleHints = slices.Clone(t.TitleHints)
	c.DescriptionHints = slices.Clone(t.DescriptionHints)
	c.SummaryHints = slices.Clone(t.SummaryHints)
	c.MainContentHints = slices.Clone(t.MainContentHints)
	c.NoiseTags = slices.Clone(t.NoiseTags)
	c.QuantityUnits = slices.Clone(t.QuantityUnits)
	c.BrandLabels = slices.Clone(t.BrandLabels)
	c.AuthorLabels = slices.Clone(t.AuthorLabels)
	c.DateLabels = slices.Clone(t.DateLabels)
	c.DateSignals = slices.Clone(t.DateSignals)
	c.SkipImageExtensions = slices.Clone(t.SkipImageExtensions)
	c.UserAgents = slices.Clone(t.UserAgents)
	return &c
}

// Validate returns an error if the tables cannot drive the engine.
func (t *Tables) Validate() error {
	switch {
	case len(t.CurrencySymbols) == 0:
		return Errorf(EINVALID, "tables: at least one currency symbol required")
	case len(t.QuantityUnits) == 0:
		return Errorf(EINVALID, "tables: at least one quantity unit required")
	case len(t.BrandLabels) == 0 || len(t.AuthorLabels) == 0 || len(t.DateLabels) == 0:
		return Errorf(EINVALID, "tables: brand, author and date labels required")
	case t.MinContainerWords < 0 || t.MinBlockChars < 0 || t.MinDescriptionWords < 0:
		return Errorf(EINVALID, "tables: thresholds must not be negative")
	case t.SummaryLength <= 0:
		return Errorf(EINVALID, "tables: summary length must be positive")
	}
	return nil
}
