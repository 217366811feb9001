// Package yaml loads engine tables from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/pagesift"
	"gopkg.in/yaml.v3"
)

// LoadTables reads a YAML file and overlays it on the default tables.
// Keys present in the file replace the defaults wholesale, so a file that
// sets currency_symbols lists every symbol it wants. Unknown keys are
// rejected.
func LoadTables(path string) (*pagesift.Tables, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, pagesift.Errorf(pagesift.ENOTFOUND, "tables file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	return ParseTables(data)
}

// ParseTables overlays YAML data on the default tables and validates the
// result.
func ParseTables(data []byte) (*pagesift.Tables, error) {
	tables := pagesift.DefaultTables()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(tables); err != nil && !errors.Is(err, io.EOF) {
		return nil, pagesift.Errorf(pagesift.EINVALID, "invalid tables: %v", err)
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}
