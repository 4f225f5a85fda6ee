package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mfdata/zunload/pkg/query"
	"github.com/mfdata/zunload/pkg/table"
)

func TestAccessWorkbook(t *testing.T) {
	datasetAccess := table.New("DSACC", []string{"DSACC_NAME", "DSACC_AUTH_ID", "DSACC_ACCESS"})
	datasetAccess.Append(accessRow("DSACC", "SYS1.**", "IBMUSER", "ALTER", ""))
	datasetAccess.Append(accessRow("DSACC", "SYS1.**", "OPS", "READ", ""))
	datasetAccess.Append(accessRow("DSACC", "PAY.**", "OPS", "UPDATE", ""))

	generalAccess := table.New("GRACC", []string{"GRACC_NAME", "GRACC_AUTH_ID", "GRACC_ACCESS", "GRACC_CLASS_NAME"})
	generalAccess.Append(accessRow("GRACC", "BPX.SUPERUSER", "SYSPROG", "READ", "FACILITY"))
	generalAccess.Append(accessRow("GRACC", "MVS.**", "OPS", "UPDATE", "OPERCMDS"))

	p := readyEngine(t, map[string]*table.Table{
		"DSACC": datasetAccess,
		"GRACC": generalAccess,
	})

	path := filepath.Join(t.TempDir(), "access.xlsx")
	require.NoError(t, AccessWorkbook(p, path))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()

	sheets := wb.GetSheetList()
	assert.ElementsMatch(t, []string{"FACILITY", "OPERCMDS", "DATASET", "Legend"}, sheets)

	cell := func(sheet, ref string) string {
		v, err := wb.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Profile", cell("DATASET", "A1"))
	assert.Equal(t, "IBMUSER", cell("DATASET", "B1"))
	assert.Equal(t, "OPS", cell("DATASET", "C1"))
	// Profiles sort, auth IDs keep first-seen order.
	assert.Equal(t, "PAY.**", cell("DATASET", "A2"))
	assert.Equal(t, "", cell("DATASET", "B2"))
	assert.Equal(t, "U", cell("DATASET", "C2"))
	assert.Equal(t, "SYS1.**", cell("DATASET", "A3"))
	assert.Equal(t, "A", cell("DATASET", "B3"))
	assert.Equal(t, "R", cell("DATASET", "C3"))

	assert.Equal(t, "BPX.SUPERUSER", cell("FACILITY", "A2"))
	assert.Equal(t, "R", cell("FACILITY", "B2"))
	assert.Equal(t, "U", cell("OPERCMDS", "B2"))

	// The ALTER cell carries the red fill.
	styleID, err := wb.GetCellStyle("DATASET", "B3")
	require.NoError(t, err)
	style, err := wb.GetStyle(styleID)
	require.NoError(t, err)
	require.NotEmpty(t, style.Fill.Color)
	assert.True(t, strings.Contains(style.Fill.Color[0], "FF0000"),
		"fill color %q", style.Fill.Color[0])

	assert.Equal(t, "Letter", cell("Legend", "A1"))
	assert.Equal(t, "Access", cell("Legend", "B1"))
	// One legend row per access level, in sorted level order.
	assert.Equal(t, "A", cell("Legend", "A2"))
	assert.Equal(t, "ALTER", cell("Legend", "B2"))
	assert.Equal(t, "UPDATE", cell("Legend", "B9"))
	assert.Equal(t, "", cell("Legend", "B10"))
}

func TestAccessWorkbookNoAccessRecords(t *testing.T) {
	users := table.New("USBD", []string{"USBD_NAME"})
	users.Append(table.Row{"USBD_NAME": table.String("IBMUSER")})

	p := readyEngine(t, map[string]*table.Table{"USBD": users})

	err := AccessWorkbook(p, filepath.Join(t.TempDir(), "access.xlsx"))
	assert.ErrorIs(t, err, query.ErrNoAccessRecords)
}
