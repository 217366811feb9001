// Package bloom de-duplicates records by fingerprint using a Bloom filter.
// It is a consumer-side policy: the engine itself never drops repeats.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/pagesift"
)

// Default sizing for a Deduper.
const (
	DefaultExpectedRecords   = 10000
	DefaultFalsePositiveRate = 0.001
)

// Deduper remembers record fingerprints and drops records it has seen.
// A false positive drops a record that was in fact new; the rate is fixed
// at construction. Deduper is not safe for concurrent use.
type Deduper struct {
	f *bloom.BloomFilter
}

// NewDeduper creates a Deduper sized for n expected records with the
// given false positive rate.
func NewDeduper(n uint, fpRate float64) *Deduper {
	return &Deduper{f: bloom.NewWithEstimates(n, fpRate)}
}

// Seen reports whether a record with the same fingerprint was seen before
// and marks r as seen.
func (d *Deduper) Seen(r *pagesift.Record) bool {
	return d.f.TestAndAddString(r.Fingerprint())
}

// Dedupe returns the records not seen before, keeping their order. Records
// repeated within the slice are kept once.
func (d *Deduper) Dedupe(records []*pagesift.Record) []*pagesift.Record {
	out := make([]*pagesift.Record, 0, len(records))
	for _, r := range records {
		if r == nil || d.Seen(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// EstimatedCount returns the approximate number of distinct records seen.
func (d *Deduper) EstimatedCount() uint {
	return uint(d.f.ApproximatedSize())
}
