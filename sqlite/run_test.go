package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRun(url string) *pagesift.Run {
	return &pagesift.Run{
		SourceURL: url,
		Hint:      pagesift.CategoryAuto,
		Category:  pagesift.CategoryProduct,
		Records: []*pagesift.Record{
			{Category: pagesift.CategoryProduct, Title: "Classic Salted", Price: "$19.99", URL: "https://shop.example.com/p/classic"},
			{Category: pagesift.CategoryProduct, Title: "Sour Cream", Price: "$19.99", ImageURL: "https://shop.example.com/img/sour.png"},
		},
	}
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		run := productRun("https://shop.example.com/chips")

		require.NoError(t, svc.CreateRun(context.Background(), run))

		assert.NotEmpty(t, run.ID)
		assert.False(t, run.CreatedAt.IsZero())
		assert.Equal(t, 2, run.RecordCount)
	})

	t.Run("rejects invalid runs", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		err := svc.CreateRun(context.Background(), &pagesift.Run{SourceURL: "https://shop.example.com", Category: pagesift.CategoryAuto})

		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
	})

	t.Run("stores runs without records", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		run := &pagesift.Run{SourceURL: "https://example.com", Category: pagesift.CategoryGeneric}
		require.NoError(t, svc.CreateRun(context.Background(), run))

		got, err := svc.FindRunByID(context.Background(), run.ID)
		require.NoError(t, err)
		assert.Equal(t, pagesift.CategoryAuto, got.Hint)
		assert.Empty(t, got.Records)
		assert.NotNil(t, got.Records)
	})
}

func TestRunService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips records in order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		run := productRun("https://shop.example.com/chips")
		require.NoError(t, svc.CreateRun(context.Background(), run))

		got, err := svc.FindRunByID(context.Background(), run.ID)

		require.NoError(t, err)
		assert.Equal(t, run.SourceURL, got.SourceURL)
		assert.Equal(t, pagesift.CategoryProduct, got.Category)
		assert.Equal(t, run.CreatedAt, got.CreatedAt)
		assert.Equal(t, run.Records, got.Records)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		_, err := svc.FindRunByID(context.Background(), "missing")

		assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*sqlite.RunService, []*pagesift.Run) {
		t.Helper()
		svc := sqlite.NewRunService(openDB(t))
		runs := []*pagesift.Run{
			productRun("https://shop.example.com/chips"),
			{SourceURL: "https://news.example.com/a", Category: pagesift.CategoryArticle},
			productRun("https://shop.example.com/chips"),
		}
		for _, r := range runs {
			require.NoError(t, svc.CreateRun(context.Background(), r))
		}
		return svc, runs
	}

	t.Run("newest first without records", func(t *testing.T) {
		t.Parallel()

		svc, runs := setup(t)
		got, err := svc.FindRuns(context.Background(), pagesift.RunFilter{})

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, runs[2].ID, got[0].ID)
		assert.Equal(t, runs[0].ID, got[2].ID)
		assert.Nil(t, got[0].Records)
		assert.Equal(t, 2, got[0].RecordCount)
	})

	t.Run("filters by source URL and category", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)
		url := "https://shop.example.com/chips"
		byURL, err := svc.FindRuns(context.Background(), pagesift.RunFilter{SourceURL: &url})
		require.NoError(t, err)
		assert.Len(t, byURL, 2)

		category := pagesift.CategoryArticle
		byCategory, err := svc.FindRuns(context.Background(), pagesift.RunFilter{Category: &category})
		require.NoError(t, err)
		require.Len(t, byCategory, 1)
		assert.Equal(t, "https://news.example.com/a", byCategory[0].SourceURL)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc, runs := setup(t)
		page, err := svc.FindRuns(context.Background(), pagesift.RunFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, runs[1].ID, page[0].ID)

		rest, err := svc.FindRuns(context.Background(), pagesift.RunFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, runs[0].ID, rest[0].ID)
	})

	t.Run("empty database", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		got, err := svc.FindRuns(context.Background(), pagesift.RunFilter{})

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRunService_DeleteRun(t *testing.T) {
	t.Parallel()

	t.Run("removes the run and its records", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		svc := sqlite.NewRunService(db)
		run := productRun("https://shop.example.com/chips")
		require.NoError(t, svc.CreateRun(context.Background(), run))

		require.NoError(t, svc.DeleteRun(context.Background(), run.ID))

		_, err := svc.FindRunByID(context.Background(), run.ID)
		assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
		var n int
		require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM records").Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		err := svc.DeleteRun(context.Background(), "missing")

		assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
	})
}
