package parse

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfdata/zunload/pkg/ebcdic"
)

// record frames a payload with the 2-byte big-endian length prefix the
// prefix itself is counted in.
func record(payload []byte) []byte {
	out := make([]byte, 2+len(payload))
	binary.BigEndian.PutUint16(out, uint16(2+len(payload)))
	copy(out[2:], payload)
	return out
}

// payload builds an n-byte record payload carrying the given type tag
// in bytes 2-3, encoded in code page 500.
func payload(tag string, n int) []byte {
	p := make([]byte, n)
	p[2], p[3] = 0x40, 0x40
	copy(p[2:4], ebcdic.Encode(tag))
	return p
}

// fill writes an EBCDIC-encoded, blank-padded text field into a payload.
func fill(p []byte, start, end int, s string) {
	for i := start; i < end; i++ {
		p[i] = 0x40
	}
	copy(p[start:end], ebcdic.Encode(s))
}

func datasetRecord(dsname, volser string) []byte {
	p := payload("D", 258)
	fill(p, 22, 66, dsname)
	fill(p, 76, 82, volser)
	fill(p, 132, 162, "")
	fill(p, 164, 194, "")
	fill(p, 196, 226, "")
	fill(p, 228, 258, "")
	return p
}

func volumeRecord(volser string) []byte {
	p := payload("V", 120)
	fill(p, 22, 28, volser)
	fill(p, 66, 74, "3390")
	fill(p, 80, 110, "")
	fill(p, 110, 118, "")
	return p
}

func writeDCollect(t *testing.T, payloads ...[]byte) string {
	t.Helper()
	var buf []byte
	for _, p := range payloads {
		buf = append(buf, record(p)...)
	}
	path := filepath.Join(t.TempDir(), "dcollect.bin")
	require.NoError(t, os.WriteFile(path, buf, 0600))
	return path
}

func dcParseAndWait(t *testing.T, p *DCollectParser) {
	t.Helper()
	p.Parse()
	require.NoError(t, p.Wait())
}

func TestNewDCollectNoInput(t *testing.T) {
	_, err := NewDCollect("")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestNewDCollectMissingFile(t *testing.T) {
	_, err := NewDCollect("/no/such/dcollect")
	assert.Error(t, err)
}

func TestDCollectParse(t *testing.T) {
	path := writeDCollect(t,
		datasetRecord("SYS1.PARMLIB", "VOL001"),
		datasetRecord("SYS1.LINKLIB", "VOL001"),
		volumeRecord("VOL001"),
		payload("A", 64),  // association record, counted but skipped
		payload("SC", 64), // storage class record, counted but skipped
	)

	p, err := NewDCollect(path)
	require.NoError(t, err)
	dcParseAndWait(t, p)

	st := p.Status()
	assert.Equal(t, StateReady, st.State)
	assert.Equal(t, 5, st.RecordsSeen)
	assert.Equal(t, 3, st.RecordsParsed)
	assert.Equal(t, Counter{Seen: 2, Parsed: 2}, st.PerType["D"])
	assert.Equal(t, Counter{Seen: 1, Parsed: 1}, st.PerType["V"])
	assert.Equal(t, Counter{Seen: 1, Parsed: 0}, st.PerType["A"])
	assert.Equal(t, Counter{Seen: 1, Parsed: 0}, st.PerType["SC"])

	res, err := p.Result()
	require.NoError(t, err)

	datasets := res.Table("DRECS")
	require.Equal(t, 2, datasets.Len())
	assert.Equal(t, "SYS1.PARMLIB", datasets.Rows[0].Str("DCDDSNAM"))
	assert.Equal(t, "SYS1.LINKLIB", datasets.Rows[1].Str("DCDDSNAM"))

	volumes := res.Table("VRECS")
	require.Equal(t, 1, volumes.Len())
	assert.Equal(t, "VOL001", volumes.Rows[0].Str("DCVVOLSR"))

	// Binary tables carry their column sets even when empty.
	dataclasses := res.Table("DCRECS")
	assert.Equal(t, 0, dataclasses.Len())
	assert.NotEmpty(t, dataclasses.Fields)
}

func TestDCollectMalformedRecordDropped(t *testing.T) {
	short := payload("D", 40) // too short for the dataset layout
	path := writeDCollect(t,
		short,
		datasetRecord("SYS1.PARMLIB", "VOL001"),
	)

	p, err := NewDCollect(path)
	require.NoError(t, err)
	dcParseAndWait(t, p)

	// The malformed record is seen but silently dropped.
	st := p.Status()
	assert.Equal(t, Counter{Seen: 2, Parsed: 1}, st.PerType["D"])

	res, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Table("DRECS").Len())
}

func TestDCollectTaglessRecordCounted(t *testing.T) {
	path := writeDCollect(t,
		[]byte{0xC4}, // one payload byte, no room for a type tag
		datasetRecord("SYS1.PARMLIB", "VOL001"),
	)

	p, err := NewDCollect(path)
	require.NoError(t, err)
	dcParseAndWait(t, p)

	// A record too short for a tag still counts, under the empty tag.
	st := p.Status()
	assert.Equal(t, 2, st.RecordsSeen)
	assert.Equal(t, Counter{Seen: 1, Parsed: 0}, st.PerType[""])
	assert.Equal(t, Counter{Seen: 1, Parsed: 1}, st.PerType["D"])
}

func TestDCollectTruncatedTail(t *testing.T) {
	full := record(datasetRecord("SYS1.PARMLIB", "VOL001"))
	blob := append(full, 0x01, 0x00, 0xC4) // length prefix promises more than the file holds

	path := filepath.Join(t.TempDir(), "dcollect.bin")
	require.NoError(t, os.WriteFile(path, blob, 0600))

	p, err := NewDCollect(path)
	require.NoError(t, err)
	dcParseAndWait(t, p)

	// The truncated tail ends the scan like a clean EOF.
	st := p.Status()
	assert.Equal(t, StateReady, st.State)
	assert.Equal(t, Counter{Seen: 1, Parsed: 1}, st.PerType["D"])
}

func TestDCollectBadLengthPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dcollect.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0x00}, 0600))

	p, err := NewDCollect(path)
	require.NoError(t, err)
	p.Parse()

	err = p.Wait()
	require.Error(t, err)
	assert.Equal(t, StateBad, p.Status().State)

	_, err = p.Result()
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestRestoreDCollect(t *testing.T) {
	path := writeDCollect(t,
		datasetRecord("SYS1.PARMLIB", "VOL001"),
		volumeRecord("VOL001"),
	)
	p, err := NewDCollect(path)
	require.NoError(t, err)
	dcParseAndWait(t, p)
	res, err := p.Result()
	require.NoError(t, err)

	restored := RestoreDCollect(res.Tables())

	st := restored.Status()
	assert.Equal(t, StateReady, st.State)
	assert.Equal(t, Counter{Seen: 1, Parsed: 1}, st.PerType["D"])
	assert.Equal(t, Counter{Seen: 1, Parsed: 1}, st.PerType["V"])

	got, err := restored.Result()
	require.NoError(t, err)
	assert.True(t, got.Table("DRECS").Equal(res.Table("DRECS")))
	assert.True(t, got.Table("VRECS").Equal(res.Table("VRECS")))
}
