package pagesift_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/pagesift"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pagesift.Errorf(pagesift.EINVALID, "source URL %q is not absolute", "/foo")

	assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
	assert.Equal(t, "source URL \"/foo\" is not absolute", pagesift.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagesift.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagesift.ErrorMessage(nil))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pagesift.EINTERNAL, pagesift.ErrorCode(errors.New("boom")))
	assert.Equal(t, "Internal error.", pagesift.ErrorMessage(errors.New("boom")))
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	t.Run("reports fetch code through wrapping", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("scrape: %w", &pagesift.FetchError{
			URL: "https://example.com",
			Err: errors.New("net::ERR_NAME_NOT_RESOLVED"),
		})

		assert.Equal(t, pagesift.EFETCH, pagesift.ErrorCode(err))
		assert.Contains(t, pagesift.ErrorMessage(err), "https://example.com")
	})

	t.Run("unwraps to the cause", func(t *testing.T) {
		t.Parallel()

		err := &pagesift.FetchError{URL: "https://example.com", Err: context.DeadlineExceeded}

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
