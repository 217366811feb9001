package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalizer(t *testing.T) *goquery.Normalizer {
	t.Helper()
	n, err := goquery.NewNormalizer(pagesift.DefaultTables())
	require.NoError(t, err)
	return n
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("removes noise tags", func(t *testing.T) {
		t.Parallel()

		doc := newNormalizer(t).Normalize(`<html><head><style>p{}</style></head><body>
<nav>Home Shop</nav>
<p>Visible text</p>
<script>var x = 1;</script>
<noscript>Enable JS</noscript>
<aside>Related</aside>
<form><input name="q"></form>
<footer>Copyright</footer>
</body></html>`)

		assert.Equal(t, "Visible text", strings.Join(strings.Fields(doc.Body().Text()), " "))
	})

	t.Run("removes inline hidden elements", func(t *testing.T) {
		t.Parallel()

		doc := newNormalizer(t).Normalize(`<body>
<div style="DISPLAY : none">gone</div>
<div style="color:red; visibility: hidden">gone</div>
<div hidden>gone</div>
<div style="display:block">kept</div>
</body>`)

		assert.NotContains(t, doc.Body().Text(), "gone")
		assert.Contains(t, doc.Body().Text(), "kept")
	})

	t.Run("keeps aria-hidden elements", func(t *testing.T) {
		t.Parallel()

		doc := newNormalizer(t).Normalize(`<body>
<p>Price <span aria-hidden="true">$12.50</span></p>
<i aria-hidden="true" class="icon"></i>
</body>`)

		assert.Contains(t, doc.Body().Text(), "$12.50")
	})

	t.Run("removes comments", func(t *testing.T) {
		t.Parallel()

		doc := newNormalizer(t).Normalize(`<body><!-- $9.99 --><p>Text</p></body>`)

		html, err := doc.HTML()
		require.NoError(t, err)
		assert.NotContains(t, html, "$9.99")
	})

	t.Run("keeps a hidden body", func(t *testing.T) {
		t.Parallel()

		doc := newNormalizer(t).Normalize(`<body style="display:none"><p>Loaded</p></body>`)

		assert.Contains(t, doc.Body().Text(), "Loaded")
	})

	t.Run("repairs malformed markup", func(t *testing.T) {
		t.Parallel()

		doc := newNormalizer(t).Normalize(`<div><p>Unclosed <b>bold<p>Next`)

		assert.Equal(t, 2, doc.Body().Find("p").Length())
	})

	t.Run("empty input yields an empty document", func(t *testing.T) {
		t.Parallel()

		doc := newNormalizer(t).Normalize("")

		assert.Equal(t, 1, doc.Body().Length())
		assert.Empty(t, doc.Body().Text())
	})

	t.Run("keeps the raw markup", func(t *testing.T) {
		t.Parallel()

		raw := `<script type="application/ld+json">{}</script><p>x</p>`
		doc := newNormalizer(t).Normalize(raw)

		assert.Equal(t, raw, doc.Raw())
	})

	t.Run("reads the document title", func(t *testing.T) {
		t.Parallel()

		doc := newNormalizer(t).Normalize(`<html><head><title> My   Page </title></head><body></body></html>`)

		assert.Equal(t, "My Page", doc.Title())
	})
}

func TestNewNormalizer_InvalidNoiseTag(t *testing.T) {
	t.Parallel()

	tables := pagesift.DefaultTables()
	tables.NoiseTags = []string{"script", "[unclosed"}

	_, err := goquery.NewNormalizer(tables)

	assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
}
