package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/bnclimb/pkg/errors"
)

// CSVOptions configures CSV loading.
type CSVOptions struct {
	// Class selects the class attribute by header name.
	// Empty means the last column.
	Class string

	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// ReadCSVFile loads a dataset from a CSV file.
// The dataset name is the file basename without extension.
func ReadCSVFile(path string, opts CSVOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return readCSV(f, name, opts)
}

// ReadCSV loads a dataset from CSV data on an io.Reader.
// The first record is the header; every value is treated as nominal and
// dictionary-encoded in order of first appearance.
func ReadCSV(r io.Reader, opts CSVOptions) (*Dataset, error) {
	return readCSV(r, "data", opts)
}

func readCSV(r io.Reader, name string, opts CSVOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidData, "empty CSV input")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read CSV header")
	}

	attrs := make([]Attribute, len(header))
	// value -> index dictionary per attribute
	dicts := make([]map[string]int, len(header))
	for i, h := range header {
		attrs[i] = Attribute{Name: strings.TrimSpace(h)}
		dicts[i] = make(map[string]int)
	}

	classIndex := len(header) - 1
	ds, err := New(name, attrs, classIndex)
	if err != nil {
		return nil, err
	}

	row := make([]int, len(header))
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read CSV record")
		}
		line++
		if len(rec) != len(header) {
			return nil, errors.New(errors.ErrCodeInvalidData,
				"line %d: %d fields, want %d", line, len(rec), len(header))
		}
		for i, cell := range rec {
			cell = strings.TrimSpace(cell)
			idx, ok := dicts[i][cell]
			if !ok {
				idx = len(ds.attrs[i].Values)
				dicts[i][cell] = idx
				ds.attrs[i].Values = append(ds.attrs[i].Values, cell)
			}
			row[i] = idx
		}
		if err := ds.AddRow(row); err != nil {
			return nil, err
		}
	}

	if ds.NumRows() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidData, "CSV input has a header but no rows")
	}

	if opts.Class != "" {
		if err := ds.SetClass(opts.Class); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
