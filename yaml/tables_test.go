package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pagesift"
	pagesiftyaml "github.com/fwojciec/pagesift/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTables(t *testing.T) {
	t.Parallel()

	t.Run("overlays present keys", func(t *testing.T) {
		t.Parallel()

		tables, err := pagesiftyaml.ParseTables([]byte(`
currency_symbols: ["CHF", "$"]
min_container_words: 8
noise_tags:
  - script
  - header
`))

		require.NoError(t, err)
		defaults := pagesift.DefaultTables()
		assert.Equal(t, []string{"CHF", "$"}, tables.CurrencySymbols)
		assert.Equal(t, 8, tables.MinContainerWords)
		assert.Equal(t, []string{"script", "header"}, tables.NoiseTags)
		assert.Equal(t, defaults.ProductHints, tables.ProductHints)
		assert.Equal(t, defaults.SummaryLength, tables.SummaryLength)
	})

	t.Run("empty document yields defaults", func(t *testing.T) {
		t.Parallel()

		tables, err := pagesiftyaml.ParseTables(nil)

		require.NoError(t, err)
		assert.Equal(t, pagesift.DefaultTables(), tables)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		t.Parallel()

		_, err := pagesiftyaml.ParseTables([]byte("currency_symbol: [\"$\"]\n"))

		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
	})

	t.Run("result is validated", func(t *testing.T) {
		t.Parallel()

		_, err := pagesiftyaml.ParseTables([]byte("currency_symbols: []\n"))

		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
	})

	t.Run("malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := pagesiftyaml.ParseTables([]byte("min_block_chars: [1\n"))

		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
	})
}

func TestLoadTables(t *testing.T) {
	t.Parallel()

	t.Run("reads a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "tables.yaml")
		require.NoError(t, os.WriteFile(path, []byte("summary_length: 80\n"), 0644))

		tables, err := pagesiftyaml.LoadTables(path)

		require.NoError(t, err)
		assert.Equal(t, 80, tables.SummaryLength)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := pagesiftyaml.LoadTables(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
	})
}
