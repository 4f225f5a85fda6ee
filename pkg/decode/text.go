// Package decode converts raw unload records into decoded rows: layout
// driven slicing for text unloads, and fixed-offset binary decoding for
// DCOLLECT records.
package decode

import (
	"strings"

	"github.com/mfdata/zunload/pkg/layout"
	"github.com/mfdata/zunload/pkg/table"
)

// Line decodes one text-unload line against a field layout. Offsets are
// 1-based inclusive character positions. Slicing is permissive: a field
// beyond the end of a short line decodes to the empty string, never an
// error. All values stay strings; callers compare against literals like
// "YES" downstream.
func Line(line string, l layout.FieldLayout) table.Row {
	runes := []rune(line)
	row := make(table.Row, len(l))
	for _, f := range l {
		start := f.Start - 1
		end := f.End
		if start > len(runes) {
			start = len(runes)
		}
		if end > len(runes) {
			end = len(runes)
		}
		row[f.Name] = table.String(strings.TrimSpace(string(runes[start:end])))
	}
	return row
}
