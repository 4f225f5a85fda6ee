// Package table holds the materialized output of a parse run: one Table
// per registered record type, rows in input-encounter order.
package table

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Row maps field names to decoded cells for one record.
type Row map[string]Value

// Get returns the cell for a field, or the zero Value when the row does
// not carry the field.
func (r Row) Get(field string) Value {
	return r[field]
}

// Str returns the string form of a field, empty when absent.
func (r Row) Str(field string) string {
	return r[field].Str
}

// Table is the materialized output for one record type: an ordered field
// list shared by every row, and the rows in insertion order. Tables are
// read-only once materialized.
type Table struct {
	Name   string
	Fields []string
	Rows   []Row
}

// New creates an empty table with the given field set.
func New(name string, fields []string) *Table {
	return &Table{Name: name, Fields: fields}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Append adds a row. Rows arrive in input-encounter order and stay there.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Select returns the rows for which keep returns true.
func (t *Table) Select(keep func(Row) bool) []Row {
	var out []Row
	for _, row := range t.Rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// Distinct returns the distinct values of a string field, in first-seen
// order.
func (t *Table) Distinct(field string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.Rows {
		v := row.Str(field)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Equal reports whether two tables hold the same fields and the same rows
// in the same order.
func (t *Table) Equal(o *Table) bool {
	if t.Name != o.Name || len(t.Fields) != len(o.Fields) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i, f := range t.Fields {
		if o.Fields[i] != f {
			return false
		}
	}
	for i, row := range t.Rows {
		other := o.Rows[i]
		if len(row) != len(other) {
			return false
		}
		for k, v := range row {
			ov, ok := other[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
	}
	return true
}

// Encode serializes the table into an opaque blob for the cache store.
func (t *Table) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(t); err != nil {
		return nil, fmt.Errorf("encode table %s: %w", t.Name, err)
	}
	return buf.Bytes(), nil
}

// DecodeBlob restores a table from a cache blob.
func DecodeBlob(data []byte) (*Table, error) {
	var t Table
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode table blob: %w", err)
	}
	return &t, nil
}
