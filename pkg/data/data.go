// Package data provides the discrete tabular dataset that network structures
// are learned against.
//
// A [Dataset] holds a fixed, ordered set of attributes. Every attribute is
// nominal: its observed values are dictionary-encoded as small integers in
// order of first appearance, so rows are stored as integer vectors. One
// attribute is designated as the class attribute; the star initialization
// policy of the structure search uses it as the hub node.
//
// Datasets are immutable once handed to a search: the learner only reads
// attribute counts, cardinalities, and cell values.
package data

import (
	"fmt"

	"github.com/matzehuels/bnclimb/pkg/errors"
)

// Attribute describes one nominal column of a dataset.
type Attribute struct {
	Name   string   // column name, from the CSV header
	Values []string // distinct observed values, in order of first appearance
}

// Cardinality returns the number of distinct values the attribute takes.
func (a Attribute) Cardinality() int { return len(a.Values) }

// Dataset is an in-memory discrete dataset: attributes plus integer-coded rows.
//
// The zero value is not usable - use [New] or [ReadCSV].
// Dataset is not safe for concurrent mutation, but all read accessors are
// safe to share once loading is complete.
type Dataset struct {
	name       string
	attrs      []Attribute
	classIndex int
	rows       [][]int
}

// New creates a dataset with the given attributes and class index.
// Attribute names are validated; the class index must address an attribute.
func New(name string, attrs []Attribute, classIndex int) (*Dataset, error) {
	if len(attrs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidData, "dataset needs at least one attribute")
	}
	for _, a := range attrs {
		if err := errors.ValidateAttributeName(a.Name); err != nil {
			return nil, err
		}
	}
	if classIndex < 0 || classIndex >= len(attrs) {
		return nil, errors.New(errors.ErrCodeInvalidData, "class index %d out of range [0,%d)", classIndex, len(attrs))
	}
	return &Dataset{name: name, attrs: attrs, classIndex: classIndex}, nil
}

// Name returns the dataset name (typically the source file basename).
func (d *Dataset) Name() string { return d.name }

// NumAttributes returns the number of attributes (the node count N of any
// network learned over this dataset).
func (d *Dataset) NumAttributes() int { return len(d.attrs) }

// NumRows returns the number of data rows.
func (d *Dataset) NumRows() int { return len(d.rows) }

// ClassIndex returns the index of the designated class attribute.
func (d *Dataset) ClassIndex() int { return d.classIndex }

// Attribute returns the attribute at index i.
func (d *Dataset) Attribute(i int) Attribute { return d.attrs[i] }

// AttributeIndex returns the index of the attribute with the given name,
// or -1 if no attribute has that name.
func (d *Dataset) AttributeIndex(name string) int {
	for i, a := range d.attrs {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// SetClass designates the attribute with the given name as the class.
func (d *Dataset) SetClass(name string) error {
	i := d.AttributeIndex(name)
	if i < 0 {
		return errors.New(errors.ErrCodeInvalidData, "no attribute named %q", name)
	}
	d.classIndex = i
	return nil
}

// Cardinality returns the number of distinct values of attribute i.
func (d *Dataset) Cardinality(i int) int { return len(d.attrs[i].Values) }

// Value returns the integer-coded value of attribute attr in row row.
func (d *Dataset) Value(row, attr int) int { return d.rows[row][attr] }

// AddRow appends an integer-coded row. Each cell must be a valid value
// index for its attribute.
func (d *Dataset) AddRow(vals []int) error {
	if len(vals) != len(d.attrs) {
		return errors.New(errors.ErrCodeInvalidData, "row has %d cells, want %d", len(vals), len(d.attrs))
	}
	for i, v := range vals {
		if v < 0 || v >= len(d.attrs[i].Values) {
			return errors.New(errors.ErrCodeInvalidData,
				"row cell %d: value index %d out of range for attribute %q", i, v, d.attrs[i].Name)
		}
	}
	row := make([]int, len(vals))
	copy(row, vals)
	d.rows = append(d.rows, row)
	return nil
}

// String returns a short human-readable description of the dataset.
func (d *Dataset) String() string {
	return fmt.Sprintf("%s: %d attributes, %d rows, class=%s",
		d.name, len(d.attrs), len(d.rows), d.attrs[d.classIndex].Name)
}
