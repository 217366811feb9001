package pagesift_test

import (
	"testing"

	"github.com/fwojciec/pagesift"
	"github.com/stretchr/testify/assert"
)

func TestRun_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		run  pagesift.Run
		code string
	}{
		{"valid", pagesift.Run{SourceURL: "https://shop.example.com", Category: pagesift.CategoryProduct}, ""},
		{"missing source URL", pagesift.Run{Category: pagesift.CategoryProduct}, pagesift.EINVALID},
		{"unresolved category", pagesift.Run{SourceURL: "https://shop.example.com", Category: pagesift.CategoryAuto}, pagesift.EINVALID},
		{"empty category", pagesift.Run{SourceURL: "https://shop.example.com"}, pagesift.EINVALID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.code, pagesift.ErrorCode(tt.run.Validate()))
		})
	}
}
