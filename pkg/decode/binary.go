package decode

import (
	"encoding/binary"
	"fmt"
)

// be16, be24 and be32 read big-endian unsigned integers, the byte order
// of every numeric DCOLLECT field.
func be16(b []byte) int64 {
	return int64(binary.BigEndian.Uint16(b))
}

func be24(b []byte) int64 {
	return int64(b[0])<<16 | int64(b[1])<<8 | int64(b[2])
}

func be32(b []byte) int64 {
	return int64(binary.BigEndian.Uint32(b))
}

// need guards fixed-offset access into a record payload. A record shorter
// than its layout is a record-level decode error, recovered by the scan.
func need(p []byte, n int, what string) error {
	if len(p) < n {
		return fmt.Errorf("%s record too short: %d < %d bytes", what, len(p), n)
	}
	return nil
}

// enumPick resolves a single-byte enumerated code through its lookup
// table. An out-of-range code fails the record, not the scan.
func enumPick(m map[int]string, code int, what string) (string, error) {
	s, ok := m[code]
	if !ok {
		return "", fmt.Errorf("bad %s code %d", what, code)
	}
	return s, nil
}
