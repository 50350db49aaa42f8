package feature

import (
	"fmt"
	"io"
)

// Row is one record of a streamed attribute table: the feature
// identifier plus one value per schema field. Geometry is not carried;
// rows are the attribute-only view of a feature stream.
type Row struct {
	ID     uint64
	schema Schema
	values []interface{}
}

// Len returns the number of fields in the row.
func (r Row) Len() int {
	return len(r.values)
}

// Value returns the value at the given field index.
func (r Row) Value(i int) (interface{}, error) {
	if i < 0 || i >= len(r.values) {
		return nil, fmt.Errorf("field index %d out of range [0, %d)", i, len(r.values))
	}
	return r.values[i], nil
}

// Field returns the value of the named field.
func (r Row) Field(name string) (interface{}, error) {
	i := r.schema.FieldIndex(name)
	if i < 0 {
		return nil, fmt.Errorf("no field named %q", name)
	}
	return r.values[i], nil
}

// Table adapts a feature source into a forward-only stream of
// attribute rows. The underlying source is consumed as rows are read
// and closed together with the table.
type Table struct {
	src Source
}

// NewTable wraps a feature source as an attribute table.
func NewTable(src Source) *Table {
	return &Table{src: src}
}

// Schema returns the schema of the underlying source.
func (t *Table) Schema() Schema {
	return t.src.Schema()
}

// Next returns the next row. It returns io.EOF when the stream is
// exhausted.
func (t *Table) Next() (Row, error) {
	f, err := t.src.Next()
	if err != nil {
		if err == io.EOF {
			return Row{}, io.EOF
		}
		return Row{}, fmt.Errorf("reading feature: %w", err)
	}
	return Row{ID: f.ID, schema: t.src.Schema(), values: f.Values}, nil
}

// Close closes the underlying source.
func (t *Table) Close() error {
	return t.src.Close()
}
