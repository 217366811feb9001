package goquery_test

import (
	"testing"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/goquery"
	"github.com/stretchr/testify/require"
)

const (
	shopURL = "https://shop.example.com/cn/chips/cid/1237"
	newsURL = "https://news.example.com/2024/03/test"
)

// productListing holds three product cards with a heading and a price.
const productListing = `<!DOCTYPE html>
<html>
<head><title>Chips and Crisps</title></head>
<body>
<nav><a href="/">Home</a> <span>$0.00 cart</span></nav>
<div class="grid">
  <div class="product-card">
    <h3>Classic Salted</h3>
    <p>Crunchy potato chips with sea salt</p>
    <span class="price">$19.99</span>
    <img src="/img/classic.jpg" alt="">
    <a href="/p/classic">View</a>
  </div>
  <div class="product-card">
    <h3>Sour Cream</h3>
    <p>Tangy chips with sour cream and onion</p>
    <span class="price">$19.99</span>
    <img src="/img/sour.jpg" alt="">
    <a href="/p/sour">View</a>
  </div>
  <div class="product-card">
    <h3>Hot Chili</h3>
    <p>Spicy chips with a chili kick</p>
    <span class="price">$19.99</span>
    <img src="/img/chili.jpg" alt="">
    <a href="/p/chili">View</a>
  </div>
</div>
<footer>Prices include tax</footer>
</body>
</html>`

// singleArticle holds one <article> with an h1 title and two paragraphs.
const singleArticle = `<!DOCTYPE html>
<html>
<head>
  <title>Test | Example News</title>
  <link rel="canonical" href="https://news.example.com/a/test">
</head>
<body>
<article>
  <h1>Test</h1>
  <div class="byline">By Jane Doe</div>
  <time datetime="2024-03-03">March 3, 2024</time>
  <p>The first paragraph of the story explains what happened in the city council meeting on Monday evening.</p>
  <p>The second paragraph adds the reactions of residents who attended and what they expect to change next.</p>
</article>
</body>
</html>`

const emptyPage = `<html><head></head><body></body></html>`

func newEngine(t *testing.T, opts ...goquery.Option) *goquery.Engine {
	t.Helper()
	e, err := goquery.NewEngine(pagesift.DefaultTables(), opts...)
	require.NoError(t, err)
	return e
}

// parts builds the pipeline stages over the default tables.
type parts struct {
	normalizer *goquery.Normalizer
	classifier *goquery.Classifier
	locator    *goquery.Locator
	tables     *pagesift.Tables
	patterns   *goquery.Patterns
}

func newParts(t *testing.T) parts {
	t.Helper()
	tables := pagesift.DefaultTables()
	patterns, err := goquery.NewPatterns(tables)
	require.NoError(t, err)
	normalizer, err := goquery.NewNormalizer(tables)
	require.NoError(t, err)
	locator, err := goquery.NewLocator(tables, patterns)
	require.NoError(t, err)
	return parts{
		normalizer: normalizer,
		classifier: goquery.NewClassifier(tables, patterns),
		locator:    locator,
		tables:     tables,
		patterns:   patterns,
	}
}

// locate normalizes html and returns its containers for category.
func (p parts) locate(html string, category pagesift.Category) []goquery.Container {
	return p.locator.Locate(p.normalizer.Normalize(html), category)
}
