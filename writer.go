package pagesift

import "context"

// RecordWriter exports assembled records, e.g. to a JSON file. Writers are
// consumers only and never alter the records they are given.
type RecordWriter interface {
	WriteRecords(ctx context.Context, records []*Record) error
}
