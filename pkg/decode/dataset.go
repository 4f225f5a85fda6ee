package decode

import (
	"github.com/mfdata/zunload/pkg/ebcdic"
	"github.com/mfdata/zunload/pkg/table"
)

// DatasetFields lists the columns of the DCOLLECT 'D' (active data set)
// table in layout order.
var DatasetFields = []string{
	"DCDDSNAM",
	"DCDRACFD", "DCDSMSM", "DCDTEMP", "DCDPDSE", "DCDGDS", "DCDREBLK", "DCDCHIND", "DCDCKDSI",
	"DCDNOVVR", "DCDINTCG", "DCDINICF",
	"DCDALLFG", "DCDUSEFG", "DCDSECFG", "DCDNMBFG",
	"DCDPDSEX", "DCDSTRP", "DCDDDMEX", "DCDCPOIT", "DCDGT64K", "DCDCMPTV",
	"DCDDSGIS", "DCDDSGPS", "DCDDSGDA", "DCDDSGPO", "DCDDSGU", "DCDDSGGS", "DCDDSGVS",
	"DCDRECFF", "DCDRECFV", "DCDRECFU", "DCDRECFT", "DCDRECFB", "DCDRECFS", "DCDRECFA", "DCDRECFC",
	"DCDNMEXT", "DCDVOLSR", "DCDBKLNG", "DCDLRECL",
	"DCDALLSP", "DCDUSESP", "DCDSCALL", "DCDNMBLK",
	"DCDCREDT", "DCDEXPDT", "DCDLSTRF",
	"DCDATCL", "DCDSTGCL", "DCDMGTCL", "DCDSTGRP",
}

// Dataset decodes a DCOLLECT 'D' record payload (the record without its
// 2-byte length prefix). Offsets follow the DCOLLECT record structure:
// flags in bytes 67-69, DSORG in 72-73, RECFM in 74, space figures as
// flag-gated 31-bit KB counts, packed yyyyddd dates, and the four SMS
// class names padded to 30 characters each.
func Dataset(p []byte) (table.Row, error) {
	if err := need(p, 258, "D"); err != nil {
		return nil, err
	}

	row := make(table.Row, len(DatasetFields))
	row["DCDDSNAM"] = table.String(ebcdic.DecodeTrim(p[22:66]))

	flag1 := p[67]
	row["DCDRACFD"] = table.Bool(flag1&0x80 != 0)
	row["DCDSMSM"] = table.Bool(flag1&0x40 != 0)
	row["DCDTEMP"] = table.Bool(flag1&0x20 != 0)
	row["DCDPDSE"] = table.Bool(flag1&0x10 != 0)
	row["DCDGDS"] = table.Bool(flag1&0x08 != 0)
	row["DCDREBLK"] = table.Bool(flag1&0x04 != 0)
	row["DCDCHIND"] = table.Bool(flag1&0x02 != 0)
	row["DCDCKDSI"] = table.Bool(flag1&0x01 != 0)

	flag2 := p[68]
	row["DCDNOVVR"] = table.Bool(flag2&0x80 != 0)
	row["DCDINTCG"] = table.Bool(flag2&0x40 != 0)
	row["DCDINICF"] = table.Bool(flag2&0x20 != 0)

	// The four 31-bit KB space figures are only valid when their
	// companion flag is on; an absent figure decodes to 0 and the flag
	// itself is kept as a column.
	row["DCDALLSP"] = gatedKBs(flag2&0x08 != 0, p[86:90])
	row["DCDALLFG"] = table.Bool(flag2&0x08 != 0)
	row["DCDUSESP"] = gatedKBs(flag2&0x04 != 0, p[90:94])
	row["DCDUSEFG"] = table.Bool(flag2&0x04 != 0)
	row["DCDSCALL"] = gatedKBs(flag2&0x02 != 0, p[94:98])
	row["DCDSECFG"] = table.Bool(flag2&0x02 != 0)
	row["DCDNMBLK"] = gatedKBs(flag2&0x01 != 0, p[98:102])
	row["DCDNMBFG"] = table.Bool(flag2&0x01 != 0)

	flag3 := p[69]
	row["DCDPDSEX"] = table.Bool(flag3&0x80 != 0)
	row["DCDSTRP"] = table.Bool(flag3&0x40 != 0)
	row["DCDDDMEX"] = table.Bool(flag3&0x20 != 0)
	row["DCDCPOIT"] = table.Bool(flag3&0x10 != 0)
	row["DCDGT64K"] = table.Bool(flag3&0x08 != 0)
	row["DCDCMPTV"] = table.Bool(flag3&0x04 != 0)

	dsorg0 := p[72]
	row["DCDDSGIS"] = table.Bool(dsorg0&0x80 != 0)
	row["DCDDSGPS"] = table.Bool(dsorg0&0x40 != 0)
	row["DCDDSGDA"] = table.Bool(dsorg0&0x20 != 0)
	row["DCDDSGPO"] = table.Bool(dsorg0&0x02 != 0)
	row["DCDDSGU"] = table.Bool(dsorg0&0x01 != 0)

	dsorg1 := p[73]
	row["DCDDSGGS"] = table.Bool(dsorg1&0x80 != 0)
	row["DCDDSGVS"] = table.Bool(dsorg1&0x08 != 0)

	recfm := p[74]
	row["DCDRECFF"] = table.Bool(recfm&0x80 != 0)
	row["DCDRECFV"] = table.Bool(recfm&0x40 != 0)
	row["DCDRECFU"] = table.Bool(recfm&0xC0 != 0)
	row["DCDRECFT"] = table.Bool(recfm&0x20 != 0)
	row["DCDRECFB"] = table.Bool(recfm&0x10 != 0)
	row["DCDRECFS"] = table.Bool(recfm&0x08 != 0)
	row["DCDRECFA"] = table.Bool(recfm&0x04 != 0)
	row["DCDRECFC"] = table.Bool(recfm&0x02 != 0)

	row["DCDNMEXT"] = table.Int(int64(p[75]))
	row["DCDVOLSR"] = table.String(ebcdic.Decode(p[76:82]))
	row["DCDBKLNG"] = table.Int(be16(p[82:84]))
	row["DCDLRECL"] = table.Int(be16(p[84:86]))

	row["DCDCREDT"] = PackedDate(p[102:106])
	row["DCDEXPDT"] = PackedDate(p[106:110])
	row["DCDLSTRF"] = PackedDate(p[110:114])

	row["DCDATCL"] = smsClass(p[132:162])
	row["DCDSTGCL"] = smsClass(p[164:194])
	row["DCDMGTCL"] = smsClass(p[196:226])
	row["DCDSTGRP"] = smsClass(p[228:258])

	return row, nil
}

func gatedKBs(present bool, b []byte) table.Value {
	if !present {
		return table.Int(0)
	}
	return table.Int(be32(b))
}

// smsClass decodes an SMS class name field; blank classes get the
// explicit *NONE* sentinel.
func smsClass(b []byte) table.Value {
	name := ebcdic.DecodeTrim(b)
	if name == "" {
		name = table.NoName
	}
	return table.String(name)
}
