package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfdata/zunload/pkg/ebcdic"
	"github.com/mfdata/zunload/pkg/table"
)

// fill writes an EBCDIC-encoded, blank-padded text field into a payload.
func fill(p []byte, start, end int, s string) {
	for i := start; i < end; i++ {
		p[i] = 0x40
	}
	copy(p[start:end], ebcdic.Encode(s))
}

func datasetPayload() []byte {
	p := make([]byte, 258)
	fill(p, 22, 66, "SYS1.PARMLIB")
	p[67] = 0x80 | 0x10                   // RACF indicated, PDSE
	p[68] = 0x08                          // allocated-space figure valid
	copy(p[86:90], []byte{0, 0, 1, 0x90}) // 400 KB allocated
	copy(p[90:94], []byte{0, 0, 3, 0xE7}) // used-space bytes present but flag off
	p[72] = 0x40                          // DSORG=PS
	p[74] = 0x90                          // RECFM=FB
	p[75] = 3
	fill(p, 76, 82, "VOL001")
	copy(p[82:84], []byte{0x6D, 0x10}) // BLKSIZE 27920
	copy(p[84:86], []byte{0x00, 0x50}) // LRECL 80
	copy(p[102:106], []byte{0x20, 0x23, 0x10, 0x0F})
	copy(p[106:110], []byte{0x00, 0x00, 0x00, 0x00})
	copy(p[110:114], []byte{0x20, 0x24, 0x00, 0x1F})
	fill(p, 132, 162, "STANDARD")
	fill(p, 164, 194, "")
	fill(p, 196, 226, "MCPROD")
	fill(p, 228, 258, "SGPROD")
	return p
}

func TestDataset(t *testing.T) {
	row, err := Dataset(datasetPayload())
	require.NoError(t, err)

	assert.Equal(t, "SYS1.PARMLIB", row.Str("DCDDSNAM"))

	assert.True(t, row.Get("DCDRACFD").Bool)
	assert.True(t, row.Get("DCDPDSE").Bool)
	assert.False(t, row.Get("DCDSMSM").Bool)
	assert.False(t, row.Get("DCDTEMP").Bool)

	assert.True(t, row.Get("DCDDSGPS").Bool)
	assert.False(t, row.Get("DCDDSGPO").Bool)

	assert.True(t, row.Get("DCDRECFF").Bool)
	assert.False(t, row.Get("DCDRECFV").Bool)
	assert.True(t, row.Get("DCDRECFB").Bool)
	assert.True(t, row.Get("DCDRECFU").Bool)

	assert.Equal(t, int64(3), row.Get("DCDNMEXT").Int)
	assert.Equal(t, "VOL001", row.Str("DCDVOLSR"))
	assert.Equal(t, int64(27920), row.Get("DCDBKLNG").Int)
	assert.Equal(t, int64(80), row.Get("DCDLRECL").Int)

	assert.Equal(t, "STANDARD", row.Str("DCDATCL"))
	assert.Equal(t, table.NoName, row.Str("DCDSTGCL"))
	assert.Equal(t, "MCPROD", row.Str("DCDMGTCL"))
	assert.Equal(t, "SGPROD", row.Str("DCDSTGRP"))
}

func TestDatasetSpaceGating(t *testing.T) {
	row, err := Dataset(datasetPayload())
	require.NoError(t, err)

	// The allocated figure is flagged valid and decodes; the used figure
	// has bytes on the wire but its flag is off, so it reads 0.
	assert.True(t, row.Get("DCDALLFG").Bool)
	assert.Equal(t, int64(400), row.Get("DCDALLSP").Int)
	assert.False(t, row.Get("DCDUSEFG").Bool)
	assert.Equal(t, int64(0), row.Get("DCDUSESP").Int)
	assert.Equal(t, int64(0), row.Get("DCDSCALL").Int)
}

func TestDatasetDates(t *testing.T) {
	row, err := Dataset(datasetPayload())
	require.NoError(t, err)

	created := row.Get("DCDCREDT")
	require.True(t, created.Set)
	assert.Equal(t, "2023-04-10", created.Format())

	assert.False(t, row.Get("DCDEXPDT").Set)

	referenced := row.Get("DCDLSTRF")
	require.True(t, referenced.Set)
	assert.Equal(t, "2024-01-01", referenced.Format())
}

func TestDatasetVolserKeepsPadding(t *testing.T) {
	p := datasetPayload()
	fill(p, 76, 82, "X1")

	row, err := Dataset(p)
	require.NoError(t, err)
	assert.Equal(t, "X1    ", row.Str("DCDVOLSR"))
}

func TestDatasetColumnsComplete(t *testing.T) {
	row, err := Dataset(datasetPayload())
	require.NoError(t, err)

	require.Len(t, row, len(DatasetFields))
	for _, f := range DatasetFields {
		_, ok := row[f]
		assert.True(t, ok, f)
	}
}

func TestDatasetShortRecord(t *testing.T) {
	_, err := Dataset(make([]byte, 100))
	assert.Error(t, err)
}
