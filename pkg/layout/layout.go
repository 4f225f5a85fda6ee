package layout

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// FieldSpec describes one named field inside a record. Start and End are
// 1-based inclusive character positions for text unloads; the binary
// decoders carry their offsets in code, not here.
type FieldSpec struct {
	Name        string `json:"field-name"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Description string `json:"field-desc,omitempty"`
}

// FieldLayout is the ordered list of fields for one record type.
type FieldLayout []FieldSpec

// Names returns the field names in layout order.
func (l FieldLayout) Names() []string {
	names := make([]string, len(l))
	for i, f := range l {
		names[i] = f.Name
	}
	return names
}

// RecordType describes one record type of an unload file: its 4-character
// type code, the short record name (also the cache blob name and the
// column prefix), the identifier of the output table it feeds, and the
// field layout when the bundled resource carries one.
type RecordType struct {
	Code   string
	Name   string
	Table  string
	Layout FieldLayout
}

// HasLayout reports whether the bundled resource provided offsets for
// this record type. Types without a layout are counted when seen but
// never parsed.
func (rt *RecordType) HasLayout() bool {
	return len(rt.Layout) > 0
}

//go:embed irrdbu00-offsets.json
var offsetsJSON []byte

type offsetsEntry struct {
	RecordType string      `json:"record-type"`
	Offsets    FieldLayout `json:"offsets"`
}

// loadOffsets parses the bundled offsets resource. A malformed document
// or a layout with inverted offsets is a construction-time failure; an
// entry for a record type the registry does not declare is tolerated and
// dropped, matching the behavior of the layout/registry merge this format
// has always had.
func loadOffsets() (map[string]FieldLayout, error) {
	var entries map[string]offsetsEntry
	if err := json.Unmarshal(offsetsJSON, &entries); err != nil {
		return nil, fmt.Errorf("malformed offsets resource: %w", err)
	}

	layouts := make(map[string]FieldLayout, len(entries))
	for key, entry := range entries {
		for _, f := range entry.Offsets {
			if f.Name == "" {
				return nil, fmt.Errorf("offsets entry %s: field without a name", key)
			}
			if f.Start < 1 || f.End < f.Start {
				return nil, fmt.Errorf("offsets entry %s: field %s has invalid range %d-%d", key, f.Name, f.Start, f.End)
			}
		}
		layouts[entry.RecordType] = entry.Offsets
	}
	return layouts, nil
}
