package decode

import (
	"github.com/mfdata/zunload/pkg/ebcdic"
	"github.com/mfdata/zunload/pkg/table"
)

// DataClassFields lists the columns of the DCOLLECT 'DC' (SMS data class)
// table in layout order.
var DataClassFields = []string{
	"DDCNAME", "DDCUSER", "DDCDATE", "DDCTIME", "DDCDESC",
	"DDCFRORG", "DDCFLREC", "DDCFRFM", "DDCFKLEN", "DDCFKOFF", "DDCFEXP", "DDCFRET", "DDCFPSP",
	"DDCFSSP", "DDCFDIR", "DDCFAUN", "DDCFAVR", "DDCFVOL", "DDCFCIS", "DDCFCIF", "DDCFCAF",
	"DDCFXREG", "DDCFXSYS", "DDCFIMBD", "DDCFRPLC", "DDCFCOMP", "DDCFMEDI", "DDCFRECT", "DDCFVEA",
	"DDCSPRLF", "DDCREDUS", "DDCRABS", "DDCFCT", "DDCBLMT", "DDCCFS", "DDCDVCS", "DDCFSCAL",
	"DDCRCORG", "DDCRECFM", "DDCBLK", "DDCSTSP", "DDCCNTL",
	"DDCRETPD", "DDCEXPYR", "DDCEXPDY", "DDCVOLCT", "DDCDSNTY",
	"DDCSPPRI", "DDCSPSEC", "DDCDIBLK", "DDCAVREC", "DDCREDUC", "DDCRBIAS", "DDCDVC",
	"DDCAUNIT", "DDCBSZLM", "DDCLRECL",
	"DDCCISZ", "DDCCIPCT", "DDCCAPCT", "DDCSHROP", "DDCXREG", "DDCXSYS",
	"DDCIMBED", "DDCREPLC", "DDCKLEN", "DDCKOFF", "DDCCAMT",
	"DDCCOMP", "DDCMEDIA", "DDCRECTE",
	"DDCBWOTP", "DDCLOGRC", "DDCSPAND", "DDCFRLOG", "DDCLOGLN", "DDCLOGID",
	"DDCBWOS", "DDCLOGRS", "DDCSPANS", "DDCLSIDS", "DDCFRLGS", "DDCFEXTC", "DDCFA2GB", "DDCFPSEG",
	"DDCFKYL1", "DDCFKYC1", "DDCFKYL2", "DDCFKYC2", "DDCFVSP", "DDCFSDB", "DDCFOVRD", "DDCFCAR",
	"DDCFATTR", "DDCFLOGR", "DDCFRMOD", "DDCGSRDU", "DDCFKLBL",
	"DDCREUSE", "DDCSPEED", "DDCEX255", "DDCLOGRP",
	"DDCEATTR", "DDCCT", "DDCDSCF", "DDCA2GB", "DDCRECLM", "DDCBSZL2",
	"DDCPSCA", "DDCPSEG",
	"DDCVSPUK", "DDCVSPUM", "DDCVSPV",
	"DDCKLBL1", "DDCKLBN1", "DDCKYCD1", "DDCKLBL2", "DDCKLBN2", "DDCKYCD2",
	"DDCRMODE", "DDCDKLBN",
}

// Single-byte enumerated code tables. An out-of-range code is a decode
// error for the record, never for the scan.
var (
	rcorgMap = map[int]string{
		0: "NULL_-SAM",
		1: "VSAM_KSDS",
		2: "VSAM_ESDS",
		3: "VSAM_RRDS",
		4: "VSAM_LDS",
	}
	recfmMap = map[int]string{
		0: "NULL",
		1: "UNDEFINED",
		2: "VARIABLE",
		3: "VARIABLE_SPANNED",
		4: "VARIABLE_BLOCKED",
		5: "VARIABLE_BLOCKED_SPANNED",
		6: "FIXED",
		7: "FIXED_STANDARD",
		8: "FIXED_BLOCKED",
		9: "FIXED_BLOCKED_SPANNED",
	}
	avrecMap = map[int]string{
		0: "NONE",
		1: "BYTES",
		2: "KILOBYTES",
		3: "MEGABYTES",
	}
	biasMap = map[int]string{
		0: "USER",
		1: "SYSTEM",
	}
	compMap = map[int]string{
		0: "DDCCNUL",
		1: "DDCNOCMP",
		2: "DDCIDRC",
	}
	mediaMap = map[int]string{
		0: "NULL",
		1: "CARTRIDGE_SYSTEM",
		2: "ENHANCHED_CAPACITY_CARTTIDGE_SYSTEM",
		3: "HIGH_PERMFORMANCE",
		4: "RESERVED_EXTENDED_HIGH",
	}
	recteMap = map[int]string{
		0: "NULL",
		1: "18-TRACK",
		2: "36-TRACK",
	}
	bwotpMap = map[int]string{
		0: "0",
		1: "CICS",
		2: "NONE",
		3: "IMS",
	}
	logrcMap = map[int]string{
		0: "0",
		1: "NON-RECOVERABLE_SPHERE",
		2: "UNDO_USE_EXERNAL_LOG",
		3: "ALL_UNDO_AND_FORWARD",
	}
	spandMap = map[int]string{
		0: "RECORD_CANNOT_SPAN_CI",
		1: "RECORD_MAY_SPAN_CI",
	}
	frlogMap = map[int]string{
		0: "0",
		1: "NONE",
		2: "REDO",
		3: "UNDO",
		6: "ALL",
	}
	ctMap = map[int]string{
		0: "GENERIC",
		1: "TAILORED",
		2: "ZR",
		3: "ZR",
	}
	dscfMap = map[int]string{
		0: "ALL",
		1: "UPDATEDONLY",
		2: "NONE",
	}
	rmodeMap = map[int]string{
		0: "BLANK",
		1: "ALL",
		2: "BUFF",
		3: "CB",
		4: "NONE",
	}
)

// DataClass decodes a DCOLLECT 'DC' record payload: the SMS data class
// construct with its four specification-flag bytes, enumerated attribute
// codes, and the length-prefixed class name and DASD key label.
func DataClass(p []byte) (table.Row, error) {
	if err := need(p, 470, "DC"); err != nil {
		return nil, err
	}

	row := make(table.Row, len(DataClassFields))

	// Class name carries an explicit 2-byte length subfield.
	nameLen := int(be16(p[22:24]))
	if err := need(p, 24+nameLen, "DC"); err != nil {
		return nil, err
	}
	row["DDCNAME"] = varName(p[24 : 24+nameLen])
	row["DDCUSER"] = table.String(ebcdic.DecodeTrim(p[54:62]))
	row["DDCDATE"] = table.String(ebcdic.DecodeTrim(p[62:72]))
	row["DDCTIME"] = table.String(ebcdic.DecodeTrim(p[74:82]))
	row["DDCDESC"] = table.String(ebcdic.DecodeTrim(p[82:202]))

	spec1, spec2, spec3, spec4 := p[202], p[203], p[204], p[205]
	row["DDCFRORG"] = flag01(spec1 & 0x80)
	row["DDCFLREC"] = flag01(spec1 & 0x40)
	row["DDCFRFM"] = flag01(spec1 & 0x20)
	row["DDCFKLEN"] = flag01(spec1 & 0x10)
	row["DDCFKOFF"] = flag01(spec1 & 0x08)
	row["DDCFEXP"] = flag01(spec1 & 0x04)
	row["DDCFRET"] = flag01(spec1 & 0x02)
	row["DDCFPSP"] = flag01(spec1 & 0x01)

	row["DDCFSSP"] = flag01(spec2 & 0x80)
	row["DDCFDIR"] = flag01(spec2 & 0x40)
	row["DDCFAUN"] = flag01(spec2 & 0x20)
	row["DDCFAVR"] = flag01(spec2 & 0x10)
	row["DDCFVOL"] = flag01(spec2 & 0x08)
	row["DDCFCIS"] = flag01(spec2 & 0x04)
	row["DDCFCIF"] = flag01(spec2 & 0x02)
	row["DDCFCAF"] = flag01(spec2 & 0x01)

	row["DDCFXREG"] = flag01(spec3 & 0x80)
	row["DDCFXSYS"] = flag01(spec3 & 0x40)
	row["DDCFIMBD"] = flag01(spec3 & 0x20)
	row["DDCFRPLC"] = flag01(spec3 & 0x10)
	row["DDCFCOMP"] = flag01(spec3 & 0x08)
	row["DDCFMEDI"] = flag01(spec3 & 0x04)
	row["DDCFRECT"] = flag01(spec3 & 0x02)
	row["DDCFVEA"] = flag01(spec3 & 0x01)

	row["DDCSPRLF"] = flag01(spec4 & 0x80)
	row["DDCREDUS"] = flag01(spec4 & 0x40)
	row["DDCRABS"] = flag01(spec4 & 0x20)
	row["DDCFCT"] = flag01(spec4 & 0x10)
	row["DDCBLMT"] = flag01(spec4 & 0x08)
	row["DDCCFS"] = flag01(spec4 & 0x04)
	row["DDCDVCS"] = flag01(spec4 & 0x02)
	row["DDCFSCAL"] = flag01(spec4 & 0x01)

	rcorg, err := enumPick(rcorgMap, int(p[206]), "RECORG")
	if err != nil {
		return nil, err
	}
	row["DDCRCORG"] = table.String(rcorg)
	recfm, err := enumPick(recfmMap, int(p[207]), "RECFM")
	if err != nil {
		return nil, err
	}
	row["DDCRECFM"] = table.String(recfm)

	dsflg := p[208]
	row["DDCBLK"] = flag01(dsflg & 0x80)
	row["DDCSTSP"] = flag01(dsflg & 0x40)
	row["DDCCNTL"] = table.Int(int64(p[209]))

	// Retention period and expiration year/day are alternative readings
	// of the same four bytes; both are kept as columns.
	row["DDCRETPD"] = table.Int(be32(p[210:214]))
	row["DDCEXPYR"] = table.Int(be16(p[210:212]))
	row["DDCEXPDY"] = table.Int(be16(p[212:214]))
	row["DDCVOLCT"] = table.Int(be16(p[214:216]))
	row["DDCDSNTY"] = table.Int(be16(p[216:218]))

	row["DDCSPPRI"] = table.Int(be32(p[218:222]))
	row["DDCSPSEC"] = table.Int(be32(p[222:226]))
	row["DDCDIBLK"] = table.Int(be32(p[226:230]))
	avrec, err := enumPick(avrecMap, int(p[230]), "AVGREC")
	if err != nil {
		return nil, err
	}
	row["DDCAVREC"] = table.String(avrec)
	row["DDCREDUC"] = table.Int(int64(p[231]))
	bias, err := enumPick(biasMap, int(p[232]), "access bias")
	if err != nil {
		return nil, err
	}
	row["DDCRBIAS"] = table.String(bias)
	row["DDCDVC"] = table.Int(int64(p[233]))
	row["DDCAUNIT"] = table.Int(be32(p[234:238]))
	row["DDCBSZLM"] = table.Int(be32(p[238:242]))
	row["DDCLRECL"] = table.Int(be32(p[242:246]))

	row["DDCCISZ"] = table.Int(be32(p[246:250]))
	row["DDCCIPCT"] = table.Int(be16(p[250:252]))
	row["DDCCAPCT"] = table.Int(be16(p[252:254]))
	row["DDCSHROP"] = table.Int(be16(p[254:256]))
	row["DDCXREG"] = table.Int(int64(p[254]))
	row["DDCXSYS"] = table.Int(int64(p[255]))

	vindx := p[256]
	row["DDCIMBED"] = flag01(vindx & 0x80)
	row["DDCREPLC"] = flag01(vindx & 0x40)
	row["DDCKLEN"] = table.Int(int64(p[257]))
	row["DDCKOFF"] = table.Int(be16(p[258:260]))
	row["DDCCAMT"] = table.Int(int64(p[260]))

	comp, err := enumPick(compMap, int(p[262]), "compaction")
	if err != nil {
		return nil, err
	}
	row["DDCCOMP"] = table.String(comp)
	media, err := enumPick(mediaMap, int(p[263]), "media")
	if err != nil {
		return nil, err
	}
	row["DDCMEDIA"] = table.String(media)
	recte, err := enumPick(recteMap, int(p[264]), "recording technology")
	if err != nil {
		return nil, err
	}
	row["DDCRECTE"] = table.String(recte)

	bwotp, err := enumPick(bwotpMap, int(p[266]), "BWO")
	if err != nil {
		return nil, err
	}
	row["DDCBWOTP"] = table.String(bwotp)
	logrc, err := enumPick(logrcMap, int(p[267]), "recoverability")
	if err != nil {
		return nil, err
	}
	row["DDCLOGRC"] = table.String(logrc)
	spand, err := enumPick(spandMap, int(p[268]), "CI span")
	if err != nil {
		return nil, err
	}
	row["DDCSPAND"] = table.String(spand)
	frlog, err := enumPick(frlogMap, int(p[269]), "FRLOG")
	if err != nil {
		return nil, err
	}
	row["DDCFRLOG"] = table.String(frlog)

	row["DDCLOGLN"] = table.Int(be16(p[270:272]))
	row["DDCLOGID"] = table.String(ebcdic.DecodeTrim(p[272:298]))

	specx, specb, specc := p[298], p[299], p[300]
	row["DDCBWOS"] = flag01(specx & 0x80)
	row["DDCLOGRS"] = flag01(specx & 0x40)
	row["DDCSPANS"] = flag01(specx & 0x20)
	row["DDCLSIDS"] = flag01(specx & 0x10)
	row["DDCFRLGS"] = flag01(specx & 0x08)
	row["DDCFEXTC"] = flag01(specx & 0x04)
	row["DDCFA2GB"] = flag01(specx & 0x02)
	row["DDCFPSEG"] = flag01(specx & 0x01)

	row["DDCFKYL1"] = flag01(specb & 0x80)
	row["DDCFKYC1"] = flag01(specb & 0x40)
	row["DDCFKYL2"] = flag01(specb & 0x20)
	row["DDCFKYC2"] = flag01(specb & 0x10)
	row["DDCFVSP"] = flag01(specb & 0x08)
	row["DDCFSDB"] = flag01(specb & 0x04)
	row["DDCFOVRD"] = flag01(specb & 0x02)
	row["DDCFCAR"] = flag01(specb & 0x01)

	row["DDCFATTR"] = flag01(specc & 0x80)
	row["DDCFLOGR"] = flag01(specc & 0x40)
	row["DDCFRMOD"] = flag01(specc & 0x20)
	row["DDCGSRDU"] = flag01(specc & 0x10)
	row["DDCFKLBL"] = flag01(specc & 0x08)

	vsam1 := p[303]
	row["DDCREUSE"] = flag01(vsam1 & 0x80)
	row["DDCSPEED"] = flag01(vsam1 & 0x40)
	row["DDCEX255"] = flag01(vsam1 & 0x20)
	row["DDCLOGRP"] = flag01(vsam1 & 0x10)

	row["DDCEATTR"] = table.Int(int64(p[307]))
	ct, err := enumPick(ctMap, int(p[308]), "compression type")
	if err != nil {
		return nil, err
	}
	row["DDCCT"] = table.String(ct)
	dscf, err := enumPick(dscfMap, int(p[309]), "RLS CF cache")
	if err != nil {
		return nil, err
	}
	row["DDCDSCF"] = table.String(dscf)

	rbyte := p[310]
	row["DDCA2GB"] = flag01(rbyte & 0x40)
	row["DDCRECLM"] = flag01(rbyte & 0x20)
	row["DDCBSZL2"] = table.Int(be32(p[315:319]))

	row["DDCPSCA"] = table.Int(int64(p[319]))
	row["DDCPSEG"] = table.Int(int64(p[320]))

	vsp := p[326]
	row["DDCVSPUK"] = flag01(vsp & 0x80)
	row["DDCVSPUM"] = flag01(vsp & 0x40)
	row["DDCVSPV"] = table.Int(be24(p[327:330]))

	row["DDCKLBL1"] = table.Int(be16(p[330:332]))
	row["DDCKLBN1"] = table.String(ebcdic.DecodeTrim(p[332:396]))
	row["DDCKYCD1"] = table.Int(int64(p[396]))
	row["DDCKLBL2"] = table.Int(be16(p[398:400]))
	row["DDCKLBN2"] = table.String(ebcdic.DecodeTrim(p[400:464]))
	row["DDCKYCD2"] = table.Int(int64(p[464]))

	rmode, err := enumPick(rmodeMap, int(p[467]), "RMODE31")
	if err != nil {
		return nil, err
	}
	row["DDCRMODE"] = table.String(rmode)

	// DASD key label is length-prefixed like the class name.
	labelLen := int(be16(p[468:470]))
	if err := need(p, 470+labelLen, "DC"); err != nil {
		return nil, err
	}
	row["DDCDKLBN"] = varName(p[470 : 470+labelLen])

	return row, nil
}

func flag01(bit byte) table.Value {
	if bit != 0 {
		return table.Int(1)
	}
	return table.Int(0)
}

// varName decodes a length-prefixed name field, defaulting empty names
// to the *NONE* sentinel.
func varName(b []byte) table.Value {
	name := ebcdic.DecodeTrim(b)
	if name == "" {
		name = table.NoName
	}
	return table.String(name)
}
