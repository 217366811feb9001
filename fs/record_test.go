package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFile_WriteRecords(t *testing.T) {
	t.Parallel()

	records := []*pagesift.Record{
		{Category: pagesift.CategoryProduct, Title: "Classic Salted", Price: "$19.99", URL: "https://shop.example.com/p/classic"},
		{Category: pagesift.CategoryArticle, Title: "Test", Author: "Jane Doe", PublishedDate: "2024-03-03"},
	}

	t.Run("writes a JSON array that reads back", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "records.json")
		require.NoError(t, fs.NewRecordFile(path).WriteRecords(context.Background(), records))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"category": "product"`)
		assert.Contains(t, string(data), `"published_date": "2024-03-03"`)
		assert.NotContains(t, string(data), `"brand"`)

		got, err := fs.ReadRecords(path)
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("replaces existing contents and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "records.json")
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

		require.NoError(t, fs.NewRecordFile(path).WriteRecords(context.Background(), records[:1]))

		got, err := fs.ReadRecords(path)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("nil records become an empty array", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "records.json")
		require.NoError(t, fs.NewRecordFile(path).WriteRecords(context.Background(), nil))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("canceled context writes nothing", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		path := filepath.Join(t.TempDir(), "records.json")

		require.ErrorIs(t, fs.NewRecordFile(path).WriteRecords(ctx, records), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestReadRecords(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.ReadRecords(filepath.Join(t.TempDir(), "nope.json"))
		assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

		_, err := fs.ReadRecords(path)
		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
	})
}
