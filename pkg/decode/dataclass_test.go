package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfdata/zunload/pkg/ebcdic"
	"github.com/mfdata/zunload/pkg/table"
)

func dataClassPayload() []byte {
	p := make([]byte, 470)
	copy(p[22:24], []byte{0x00, 0x06})
	fill(p, 24, 30, "DCPROD")
	fill(p, 54, 62, "SYSADM")
	fill(p, 82, 202, "production datasets")
	p[202] = 0x80 | 0x01 // RECORG and primary-space specified
	p[206] = 1           // VSAM_KSDS
	p[207] = 8           // FIXED_BLOCKED
	copy(p[210:214], []byte{0, 0, 0x01, 0x2C}) // 300 day retention
	copy(p[218:222], []byte{0, 0, 0, 50})
	copy(p[242:246], []byte{0, 0, 0, 80})
	p[230] = 2 // AVGREC KILOBYTES
	p[303] = 0x80 | 0x40
	copy(p[327:330], []byte{0x00, 0x10, 0x00})
	return p
}

func TestDataClass(t *testing.T) {
	row, err := DataClass(dataClassPayload())
	require.NoError(t, err)

	assert.Equal(t, "DCPROD", row.Str("DDCNAME"))
	assert.Equal(t, "SYSADM", row.Str("DDCUSER"))
	assert.Equal(t, "production datasets", row.Str("DDCDESC"))

	assert.Equal(t, int64(1), row.Get("DDCFRORG").Int)
	assert.Equal(t, int64(1), row.Get("DDCFPSP").Int)
	assert.Equal(t, int64(0), row.Get("DDCFLREC").Int)

	assert.Equal(t, "VSAM_KSDS", row.Str("DDCRCORG"))
	assert.Equal(t, "FIXED_BLOCKED", row.Str("DDCRECFM"))
	assert.Equal(t, "KILOBYTES", row.Str("DDCAVREC"))
	assert.Equal(t, "USER", row.Str("DDCRBIAS"))

	assert.Equal(t, int64(300), row.Get("DDCRETPD").Int)
	assert.Equal(t, int64(50), row.Get("DDCSPPRI").Int)
	assert.Equal(t, int64(80), row.Get("DDCLRECL").Int)

	assert.Equal(t, int64(1), row.Get("DDCREUSE").Int)
	assert.Equal(t, int64(1), row.Get("DDCSPEED").Int)
	assert.Equal(t, int64(0), row.Get("DDCEX255").Int)
	assert.Equal(t, int64(0x1000), row.Get("DDCVSPV").Int)

	// No DASD key label on the record.
	assert.Equal(t, table.NoName, row.Str("DDCDKLBN"))
}

func TestDataClassEmptyName(t *testing.T) {
	p := dataClassPayload()
	copy(p[22:24], []byte{0x00, 0x00})

	row, err := DataClass(p)
	require.NoError(t, err)
	assert.Equal(t, table.NoName, row.Str("DDCNAME"))
}

func TestDataClassKeyLabel(t *testing.T) {
	p := dataClassPayload()
	label := "PRODKEY1"
	copy(p[468:470], []byte{0x00, byte(len(label))})
	p = append(p, ebcdic.Encode(label)...)

	row, err := DataClass(p)
	require.NoError(t, err)
	assert.Equal(t, label, row.Str("DDCDKLBN"))
}

func TestDataClassBadEnum(t *testing.T) {
	p := dataClassPayload()
	p[206] = 9 // RECORG code out of range

	_, err := DataClass(p)
	assert.Error(t, err)
}

func TestDataClassColumnsComplete(t *testing.T) {
	row, err := DataClass(dataClassPayload())
	require.NoError(t, err)

	require.Len(t, row, len(DataClassFields))
	for _, f := range DataClassFields {
		_, ok := row[f]
		assert.True(t, ok, f)
	}
}

func TestDataClassShortRecord(t *testing.T) {
	_, err := DataClass(make([]byte, 200))
	assert.Error(t, err)
}
