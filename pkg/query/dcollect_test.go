package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfdata/zunload/pkg/parse"
	"github.com/mfdata/zunload/pkg/table"
)

func readyDCollect(t *testing.T) *DCollect {
	t.Helper()

	datasets := table.New("DRECS", []string{"DCDDSNAM", "DCDVOLSR"})
	add := func(dsname, volser string) {
		datasets.Append(table.Row{
			"DCDDSNAM": table.String(dsname),
			"DCDVOLSR": table.String(volser),
		})
	}
	// DCDVOLSR keeps its fixed 6-character padding.
	add("SYS1.PARMLIB", "VOL001")
	add("SYS1.ADVANCED", "VOL001")
	add("PAY.MASTER", "VOL002")
	add("DB.DATA", "X1    ")

	volumes := table.New("VRECS", []string{"DCVVOLSR"})
	for _, v := range []string{"VOL001", "VOL002", "X1"} {
		volumes.Append(table.Row{"DCVVOLSR": table.String(v)})
	}

	p := parse.RestoreDCollect(map[string]*table.Table{
		"DRECS": datasets,
		"VRECS": volumes,
	})
	return NewDCollect(p)
}

func TestDatasetsOnVolume(t *testing.T) {
	q := readyDCollect(t)

	names, err := q.DatasetsOnVolume("VOL001")
	require.NoError(t, err)
	assert.Equal(t, []string{"SYS1.ADVANCED", "SYS1.PARMLIB"}, names)

	names, err = q.DatasetsOnVolume("VOL002")
	require.NoError(t, err)
	assert.Equal(t, []string{"PAY.MASTER"}, names)
}

func TestDatasetsOnVolumePaddedSerial(t *testing.T) {
	q := readyDCollect(t)

	names, err := q.DatasetsOnVolume("X1")
	require.NoError(t, err)
	assert.Equal(t, []string{"DB.DATA"}, names)
}

func TestDatasetsOnVolumeUnknown(t *testing.T) {
	q := readyDCollect(t)

	_, err := q.DatasetsOnVolume("NOPE99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
