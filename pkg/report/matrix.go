// Package report exports access overviews from a parsed unload: a row
// per profile, a column per authorization ID, and a single-letter
// access level in each cell. The matrices go out as one color-coded
// xlsx workbook with a sheet per resource class, or as one CSV per
// class. Conditional access is not taken into account.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mfdata/zunload/pkg/parse"
	"github.com/mfdata/zunload/pkg/query"
	"github.com/mfdata/zunload/pkg/table"
)

// AccessLetters maps the unload's access levels to the single letters
// used in the matrix cells.
var AccessLetters = map[string]string{
	"NONE":    "N",
	"EXECUTE": "E",
	"READ":    "R",
	"UPDATE":  "U",
	"CONTROL": "C",
	"ALTER":   "A",
	"NOTRUST": "D",
	"TRUST":   "T",
}

// AccessMatrix writes the per-class access matrices into dir, one
// `<class>.csv` per general-resource class plus `DATASET.csv` for the
// dataset profiles, and a `legend.csv` explaining the letters. The
// engine must be Ready and must have parsed access records.
func AccessMatrix(p *parse.RACFParser, dir string) error {
	res, err := p.Result()
	if err != nil {
		return err
	}
	if p.Parsed("DSACC")+p.Parsed("GRACC") == 0 {
		return query.ErrNoAccessRecords
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	general := res.Table("GRACC")
	for _, class := range sortedDistinct(general, "GRACC_CLASS_NAME") {
		inClass := general.Select(func(r table.Row) bool {
			return r.Str("GRACC_CLASS_NAME") == class
		})
		m := buildMatrix(inClass, "GRACC_NAME", "GRACC_AUTH_ID", "GRACC_ACCESS")
		if err := writeMatrix(filepath.Join(dir, class+".csv"), m); err != nil {
			return err
		}
	}

	if p.Parsed("DSACC") > 0 {
		m := buildMatrix(res.Table("DSACC").Rows, "DSACC_NAME", "DSACC_AUTH_ID", "DSACC_ACCESS")
		if err := writeMatrix(filepath.Join(dir, "DATASET.csv"), m); err != nil {
			return err
		}
	}

	return writeLegend(filepath.Join(dir, "legend.csv"))
}

// matrix is profiles down, auth IDs across. Cells hold access letters;
// an empty cell means the ID is not on the profile's access list.
type matrix struct {
	authIDs  []string
	profiles []string
	cells    map[string]map[string]string // profile -> authID -> letter
}

// buildMatrix pivots access rows into a profile x auth-ID grid. Auth IDs
// keep their first-seen order, profiles are sorted; the first entry wins
// when a pair appears twice.
func buildMatrix(rows []table.Row, profileField, authField, accessField string) *matrix {
	m := &matrix{cells: make(map[string]map[string]string)}
	seenID := make(map[string]bool)
	for _, r := range rows {
		profile := r.Str(profileField)
		id := r.Str(authField)
		if !seenID[id] {
			seenID[id] = true
			m.authIDs = append(m.authIDs, id)
		}
		cells, ok := m.cells[profile]
		if !ok {
			cells = make(map[string]string)
			m.cells[profile] = cells
			m.profiles = append(m.profiles, profile)
		}
		if _, dup := cells[id]; !dup {
			cells[id] = AccessLetters[r.Str(accessField)]
		}
	}
	sort.Strings(m.profiles)
	return m
}

func writeMatrix(path string, m *matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create matrix file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"Profile"}, m.authIDs...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, profile := range m.profiles {
		record := make([]string, 0, len(header))
		record = append(record, profile)
		for _, id := range m.authIDs {
			record = append(record, m.cells[profile][id])
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeLegend(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create legend file: %w", err)
	}
	defer f.Close()

	levels := make([]string, 0, len(AccessLetters))
	for level := range AccessLetters {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Letter", "Access"}); err != nil {
		return err
	}
	for _, level := range levels {
		if err := w.Write([]string{AccessLetters[level], level}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func sortedDistinct(t *table.Table, field string) []string {
	values := t.Distinct(field)
	sort.Strings(values)
	return values
}
