package parse

import (
	"github.com/mfdata/zunload/pkg/layout"
	"github.com/mfdata/zunload/pkg/table"
)

// Result holds the materialized tables of a completed parse run, one per
// registered record type, empty tables included. It is read-only.
type Result struct {
	registry *layout.Registry
	tables   map[string]*table.Table
}

// materialize converts the per-type row buffers into tables. Every
// registered type gets a table so downstream access never needs a
// presence check; the buffers are not referenced afterwards. fieldsByCode
// supplies the column set for types whose layout lives in code rather
// than in the offsets resource.
func materialize(reg *layout.Registry, rows map[string][]table.Row, fieldsByCode map[string][]string) *Result {
	tables := make(map[string]*table.Table, reg.Len())
	for _, rt := range reg.Types() {
		t := table.New(rt.Name, tableFields(rt, fieldsByCode))
		t.Rows = rows[rt.Code]
		tables[rt.Name] = t
	}
	return &Result{registry: reg, tables: tables}
}

// restored builds a Result from cache-loaded tables; registered types
// without a blob get an empty table.
func restored(reg *layout.Registry, loaded map[string]*table.Table, fieldsByCode map[string][]string) *Result {
	tables := make(map[string]*table.Table, reg.Len())
	for _, rt := range reg.Types() {
		if t, ok := loaded[rt.Name]; ok {
			tables[rt.Name] = t
			continue
		}
		tables[rt.Name] = table.New(rt.Name, tableFields(rt, fieldsByCode))
	}
	return &Result{registry: reg, tables: tables}
}

func tableFields(rt *layout.RecordType, fieldsByCode map[string][]string) []string {
	if fields, ok := fieldsByCode[rt.Code]; ok {
		return fields
	}
	return rt.Layout.Names()
}

// Registry returns the record-type registry the result was decoded with.
func (r *Result) Registry() *layout.Registry {
	return r.registry
}

// Table returns the table for a record name like "USBD" or "DRECS", nil
// for unregistered names.
func (r *Result) Table(name string) *table.Table {
	return r.tables[name]
}

// TableByID returns the table behind an output-table identifier like
// "users" or "datasetAccess".
func (r *Result) TableByID(id string) *table.Table {
	rt := r.registry.LookupTable(id)
	if rt == nil {
		return nil
	}
	return r.tables[rt.Name]
}

// Names returns the record names in registration order.
func (r *Result) Names() []string {
	names := make([]string, 0, r.registry.Len())
	for _, rt := range r.registry.Types() {
		names = append(names, rt.Name)
	}
	return names
}

// Tables returns the tables keyed by record name.
func (r *Result) Tables() map[string]*table.Table {
	return r.tables
}
