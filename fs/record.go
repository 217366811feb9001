package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/pagesift"
)

// Ensure RecordFile implements pagesift.RecordWriter at compile time.
var _ pagesift.RecordWriter = (*RecordFile)(nil)

// RecordFile writes records as an indented JSON array to a single file.
// The file is replaced atomically: readers see either the previous
// contents or the complete new array.
type RecordFile struct {
	path string
}

// NewRecordFile creates a RecordFile that writes to path.
func NewRecordFile(path string) *RecordFile {
	return &RecordFile{path: path}
}

// WriteRecords replaces the file with records. A nil slice is written as
// an empty array.
func (f *RecordFile) WriteRecords(ctx context.Context, records []*pagesift.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []*pagesift.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return writeAtomic(f.path, append(data, '\n'))
}

// ReadRecords reads a file written by RecordFile.
func ReadRecords(path string) ([]*pagesift.Record, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, pagesift.Errorf(pagesift.ENOTFOUND, "record file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	var records []*pagesift.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "invalid record file %s: %v", path, err)
	}
	return records, nil
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
