package decode

import (
	"fmt"

	"github.com/mfdata/zunload/pkg/ebcdic"
	"github.com/mfdata/zunload/pkg/table"
)

// VolumeFields lists the columns of the DCOLLECT 'V' (volume) table.
var VolumeFields = []string{
	"DCVVOLSR", "DCVPERCT", "DCVFRESP", "DCVALLOC", "DCVVLCAP",
	"DCVFRAGI", "DCVLGEXT", "DCVFREXT", "DCVFDSCB", "DCVFVIRS",
	"DCVDVTYP", "DCVDVNUM", "DCVSGTCL", "DCVDPTYP",
}

// Volume decodes a DCOLLECT 'V' record payload. The free-space, allocated
// and capacity figures are megabytes, scaled to KB when the
// cylinder-managed flag (bit 7 of byte 119) says the counts are in
// multiples of 1024.
func Volume(p []byte) (table.Row, error) {
	if err := need(p, 120, "V"); err != nil {
		return nil, err
	}

	row := make(table.Row, len(VolumeFields))
	row["DCVVOLSR"] = table.String(ebcdic.DecodeTrim(p[22:28]))
	row["DCVPERCT"] = table.Int(int64(p[33]))

	fresp := be32(p[34:38])
	alloc := be32(p[38:42])
	vlcap := be32(p[42:46])
	if p[119]&0x80 != 0 {
		fresp *= 1024
		alloc *= 1024
		vlcap *= 1024
	}
	row["DCVFRESP"] = table.Int(fresp)
	row["DCVALLOC"] = table.Int(alloc)
	row["DCVVLCAP"] = table.Int(vlcap)

	row["DCVFRAGI"] = table.Int(be32(p[46:50]))
	row["DCVLGEXT"] = table.Int(be32(p[50:54]))
	row["DCVFREXT"] = table.Int(be32(p[54:58]))
	row["DCVFDSCB"] = table.Int(be32(p[58:62]))
	row["DCVFVIRS"] = table.Int(be32(p[62:66]))

	row["DCVDVTYP"] = table.String(ebcdic.DecodeTrim(p[66:74]))
	row["DCVDVNUM"] = table.String(fmt.Sprintf("0x%x", be16(p[74:76])))
	row["DCVSGTCL"] = table.String(ebcdic.DecodeTrim(p[80:110]))
	row["DCVDPTYP"] = table.String(ebcdic.DecodeTrim(p[110:118]))

	return row, nil
}
