package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/mfdata/zunload/pkg/parse"
	"github.com/mfdata/zunload/pkg/query"
	"github.com/mfdata/zunload/pkg/table"
)

// accessFillColors maps the matrix letters to their cell fill colors.
var accessFillColors = map[string]string{
	"N": "C0C0C0", // silver
	"E": "800080", // purple
	"R": "FFFF00", // yellow
	"U": "FFA500", // orange
	"C": "FF0000", // red
	"A": "FF0000", // red
	"D": "00FFFF", // cyan
	"T": "FFA500", // orange
}

// AccessWorkbook writes the access matrices as a single xlsx workbook:
// one sheet per general-resource class, a DATASET sheet for the dataset
// profiles and a Legend sheet, with each cell colored by access level.
// The engine must be Ready and must have parsed access records.
func AccessWorkbook(p *parse.RACFParser, path string) error {
	res, err := p.Result()
	if err != nil {
		return err
	}
	if p.Parsed("DSACC")+p.Parsed("GRACC") == 0 {
		return query.ErrNoAccessRecords
	}

	wb := excelize.NewFile()
	defer wb.Close()

	styles, err := letterStyles(wb)
	if err != nil {
		return err
	}

	general := res.Table("GRACC")
	for _, class := range sortedDistinct(general, "GRACC_CLASS_NAME") {
		inClass := general.Select(func(r table.Row) bool {
			return r.Str("GRACC_CLASS_NAME") == class
		})
		m := buildMatrix(inClass, "GRACC_NAME", "GRACC_AUTH_ID", "GRACC_ACCESS")
		if err := writeSheet(wb, class, m, styles); err != nil {
			return err
		}
	}

	if p.Parsed("DSACC") > 0 {
		m := buildMatrix(res.Table("DSACC").Rows, "DSACC_NAME", "DSACC_AUTH_ID", "DSACC_ACCESS")
		if err := writeSheet(wb, "DATASET", m, styles); err != nil {
			return err
		}
	}

	if err := writeLegendSheet(wb, styles); err != nil {
		return err
	}
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func letterStyles(wb *excelize.File) (map[string]int, error) {
	styles := make(map[string]int, len(accessFillColors))
	for letter, color := range accessFillColors {
		id, err := wb.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, err
		}
		styles[letter] = id
	}
	return styles, nil
}

// writeSheet lays a matrix out on one sheet: the profile column, a
// header row of auth IDs, and colored letter cells.
func writeSheet(wb *excelize.File, name string, m *matrix, styles map[string]int) error {
	if _, err := wb.NewSheet(name); err != nil {
		return err
	}
	if err := wb.SetCellStr(name, "A1", "Profile"); err != nil {
		return err
	}
	for i, id := range m.authIDs {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return err
		}
		if err := wb.SetCellStr(name, cell, id); err != nil {
			return err
		}
	}

	width := float64(len("Profile"))
	for j, profile := range m.profiles {
		cell, err := excelize.CoordinatesToCellName(1, j+2)
		if err != nil {
			return err
		}
		if err := wb.SetCellStr(name, cell, profile); err != nil {
			return err
		}
		if w := float64(len(profile)); w > width {
			width = w
		}
		for i, id := range m.authIDs {
			letter := m.cells[profile][id]
			if letter == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+2, j+2)
			if err != nil {
				return err
			}
			if err := wb.SetCellStr(name, cell, letter); err != nil {
				return err
			}
			if err := wb.SetCellStyle(name, cell, cell, styles[letter]); err != nil {
				return err
			}
		}
	}
	return wb.SetColWidth(name, "A", "A", width+2)
}

func writeLegendSheet(wb *excelize.File, styles map[string]int) error {
	const name = "Legend"
	if _, err := wb.NewSheet(name); err != nil {
		return err
	}
	if err := wb.SetCellStr(name, "A1", "Letter"); err != nil {
		return err
	}
	if err := wb.SetCellStr(name, "B1", "Access"); err != nil {
		return err
	}

	levels := make([]string, 0, len(AccessLetters))
	for level := range AccessLetters {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	for i, level := range levels {
		letter := AccessLetters[level]
		cellA := fmt.Sprintf("A%d", i+2)
		if err := wb.SetCellStr(name, cellA, letter); err != nil {
			return err
		}
		if err := wb.SetCellStyle(name, cellA, cellA, styles[letter]); err != nil {
			return err
		}
		if err := wb.SetCellStr(name, fmt.Sprintf("B%d", i+2), level); err != nil {
			return err
		}
	}
	return nil
}
