package pagesift

import (
	"context"
	"time"
)

// Run is a stored scrape of a single page.
type Run struct {
	ID        string    `json:"id"`
	SourceURL string    `json:"sourceUrl"`
	Hint      Category  `json:"hint"`
	Category  Category  `json:"category"`
	Records   []*Record `json:"records"`

	// RecordCount is the number of records stored with the run. It is set
	// even when Records is not loaded.
	RecordCount int `json:"recordCount"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "run source URL required")
	}
	if r.Category.IsAuto() {
		return Errorf(EINVALID, "run category must be resolved")
	}
	return nil
}

// RunService represents a service for storing scrape history.
type RunService interface {
	// CreateRun stores a run together with its records.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run and its records.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	// Records are not loaded.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run and its records.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	SourceURL *string   `json:"sourceUrl"`
	Category  *Category `json:"category"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
