package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/bloom"
	"github.com/stretchr/testify/assert"
)

func product(title, price string) *pagesift.Record {
	return &pagesift.Record{Category: pagesift.CategoryProduct, Title: title, Price: price}
}

func TestDeduper_Dedupe(t *testing.T) {
	t.Parallel()

	t.Run("drops repeats and keeps order", func(t *testing.T) {
		t.Parallel()

		d := bloom.NewDeduper(bloom.DefaultExpectedRecords, bloom.DefaultFalsePositiveRate)
		records := []*pagesift.Record{
			product("Classic Salted", "$19.99"),
			product("Sour Cream", "$19.99"),
			product("Classic Salted", "$19.99"),
			nil,
			product("Hot Chili", "$19.99"),
		}

		got := d.Dedupe(records)

		assert.Equal(t, []*pagesift.Record{records[0], records[1], records[4]}, got)
	})

	t.Run("remembers records across calls", func(t *testing.T) {
		t.Parallel()

		d := bloom.NewDeduper(100, 0.001)
		first := d.Dedupe([]*pagesift.Record{product("Sour Cream", "$19.99")})
		second := d.Dedupe([]*pagesift.Record{product("Sour Cream", "$19.99"), product("Sour Cream", "$17.99")})

		assert.Len(t, first, 1)
		assert.Len(t, second, 1)
		assert.Equal(t, "$17.99", second[0].Price)
	})

	t.Run("same fields in another category are distinct", func(t *testing.T) {
		t.Parallel()

		d := bloom.NewDeduper(100, 0.001)
		got := d.Dedupe([]*pagesift.Record{
			{Category: pagesift.CategoryProduct, Title: "Test"},
			{Category: pagesift.CategoryArticle, Title: "Test"},
		})

		assert.Len(t, got, 2)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		d := bloom.NewDeduper(100, 0.001)
		assert.Empty(t, d.Dedupe(nil))
	})
}

func TestDeduper_EstimatedCount(t *testing.T) {
	t.Parallel()

	d := bloom.NewDeduper(1000, 0.01)
	assert.Equal(t, uint(0), d.EstimatedCount())

	for i := range 50 {
		d.Seen(product(fmt.Sprintf("item %d", i), "$1.00"))
	}

	assert.InDelta(t, 50, d.EstimatedCount(), 5)
}
