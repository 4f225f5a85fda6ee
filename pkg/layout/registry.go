package layout

// Registry is the immutable record-type registry for one unload format.
// It is constructed once and shared read-only across every parse run.
type Registry struct {
	types   []*RecordType
	byCode  map[string]*RecordType
	byName  map[string]*RecordType
	byTable map[string]*RecordType
}

// irrdbu00Types is the hard-coded IRRDBU00 record-type table. The record
// name doubles as the cache blob name and the prefix of every column in
// the record's layout.
var irrdbu00Types = []struct {
	code, name, table string
}{
	{"0100", "GPBD", "groups"},
	{"0101", "GPSGRP", "subgroups"},
	{"0102", "GPMEM", "connects"},
	{"0103", "GPINSTD", "groupUSRDATA"},
	{"0110", "GPDFP", "groupDFP"},
	{"0120", "GPOMVS", "groupOMVS"},
	{"0130", "GPOVM", "groupOVM"},
	{"0141", "GPTME", "groupTME"},
	{"0151", "GPCSD", "groupCSDATA"},
	{"0200", "USBD", "users"},
	{"0201", "USCAT", "userCategories"},
	{"0202", "USCLA", "userClasses"},
	{"0203", "USGCON", "groupConnect"},
	{"0204", "USINSTD", "userUSRDATA"},
	{"0205", "USCON", "connectData"},
	{"0206", "USRSF", "userRRSFdata"},
	{"0207", "USCERT", "userCERTname"},
	{"0208", "USNMAP", "userAssociationMapping"},
	{"0209", "USDMAP", "userDistributedIdMapping"},
	{"020A", "USMFA", "userMFAfactor"},
	{"020B", "USMPOL", "userMFApolicies"},
	{"0210", "USDFP", "userDFP"},
	{"0220", "USTSO", "userTSO"},
	{"0230", "USCICS", "userCICS"},
	{"0231", "USCOPC", "userCICSoperatorClasses"},
	{"0232", "USCRSL", "userCICSrslKeys"},
	{"0233", "USCTSL", "userCICStslKeys"},
	{"0240", "USLAN", "userLANGUAGE"},
	{"0250", "USOPR", "userOPERPARM"},
	{"0251", "USOPRP", "userOPERPARMscope"},
	{"0260", "USWRK", "userWORKATTR"},
	{"0270", "USOMVS", "userOMVS"},
	{"0280", "USNETV", "userNETVIEW"},
	{"0281", "USNOPC", "userNETVIEWopclass"},
	{"0282", "USNDOM", "userNETVIEWdomains"},
	{"0290", "USDCE", "userDCE"},
	{"02A0", "USOVM", "userOVM"},
	{"02B0", "USLNOT", "userLNOTES"},
	{"02C0", "USNDS", "userNDS"},
	{"02D0", "USKERB", "userKERB"},
	{"02E0", "USPROXY", "userPROXY"},
	{"02F0", "USEIM", "userEIM"},
	{"02G1", "USCSD", "userCSDATA"},
	{"1210", "USMFAC", "userMFAfactorTags"},
	{"0400", "DSBD", "datasets"},
	{"0401", "DSCAT", "datasetCategories"},
	{"0402", "DSCACC", "datasetConditionalAccess"},
	{"0403", "DSVOL", "datasetVolumes"},
	{"0404", "DSACC", "datasetAccess"},
	{"0405", "DSINSTD", "datasetUSRDATA"},
	{"0406", "DSMEM", "datasetMember"},
	{"0410", "DSDFP", "datasetDFP"},
	{"0421", "DSTME", "datasetTME"},
	{"0431", "DSCSD", "datasetCSDATA"},
	{"0500", "GRBD", "generals"},
	{"0501", "GRTVOL", "generalTAPEvolume"},
	{"0502", "GRCAT", "generalCategories"},
	{"0503", "GRMEM", "generalMembers"},
	{"0504", "GRVOL", "generalTAPEvolumes"},
	{"0505", "GRACC", "generalAccess"},
	{"0506", "GRINSTD", "generalUSRDATA"},
	{"0507", "GRCACC", "generalConditionalAccess"},
	{"0508", "GRFLTR", "generalDistributedIdFilter"},
	{"0509", "GRDMAP", "generalDistributedIdMapping"},
	{"0510", "GRSES", "generalSESSION"},
	{"0511", "GRSESE", "generalSESSIONentities"},
	{"0520", "GRDLF", "generalDLFDATA"},
	{"0521", "GRDLFJ", "generalDLFDATAjobnames"},
	{"0530", "GRSIGN", "generalSSIGNON"},
	{"0540", "GRST", "generalSTDATA"},
	{"0550", "GRSV", "generalSVFMR"},
	{"0560", "GRCERT", "generalCERT"},
	{"1560", "CERTN", "generalCERTname"},
	{"0561", "CERTR", "generalCERTreferences"},
	{"0562", "KEYR", "generalKEYRING"},
	{"0570", "GRTME", "generalTME"},
	{"0571", "GRTMEC", "generalTMEchild"},
	{"0572", "GRTMER", "generalTMEresource"},
	{"0573", "GRTMEG", "generalTMEgroup"},
	{"0574", "GRTMEE", "generalTMErole"},
	{"0580", "GRKERB", "generalKERB"},
	{"0590", "GRPROXY", "generalPROXY"},
	{"05A0", "GREIM", "generalEIM"},
	{"05B0", "GRALIAS", "generalALIAS"},
	{"05C0", "GRCDT", "generalCDTINFO"},
	{"05D0", "GRICTX", "generalICTX"},
	{"05E0", "GRCFDEF", "generalCFDEF"},
	{"05F0", "GRSIG", "generalSIGVER"},
	{"05G0", "GRCSF", "generalICSF"},
	{"05G1", "GRCSFK", "generalICSFsymexportKeylabel"},
	{"05G2", "GRCSFC", "generalICSFsymexportCertificateIdentifier"},
	{"05H0", "GRMFA", "generalMFA"},
	{"05I0", "GRMFP", "generalMFPOLICY"},
	{"05I1", "GRMPF", "generalMFPOLICYfactors"},
	{"05J1", "GRCSD", "generalCSDATA"},
	{"05K0", "GRIDTP", "generalIDTFPARMS"},
	{"05L0", "GRJES", "generalJES"},
}

// NewRegistry builds the IRRDBU00 registry: the hard-coded type table
// merged with the bundled offsets resource. Construction fails if the
// resource is missing or malformed; a layout entry whose record type is
// not in the table is dropped.
func NewRegistry() (*Registry, error) {
	layouts, err := loadOffsets()
	if err != nil {
		return nil, err
	}

	r := newRegistry(len(irrdbu00Types))
	for _, t := range irrdbu00Types {
		r.add(&RecordType{
			Code:   t.code,
			Name:   t.name,
			Table:  t.table,
			Layout: layouts[t.code],
		})
	}
	return r, nil
}

// NewDCollectRegistry builds the registry for DCOLLECT binary unloads.
// Only the D, V and DC record types decode to tables; the layouts of the
// binary formats live in the decoders, so Layout stays empty here.
func NewDCollectRegistry() *Registry {
	r := newRegistry(3)
	r.add(&RecordType{Code: "D", Name: "DRECS", Table: "datasets"})
	r.add(&RecordType{Code: "V", Name: "VRECS", Table: "volumes"})
	r.add(&RecordType{Code: "DC", Name: "DCRECS", Table: "dataclasses"})
	return r
}

// NewSETROPTSRegistry builds the registry for IRRXUTIL SETROPTS
// extracts. The two tables are synthesized from key/value pairs rather
// than sliced from fixed layouts, so Layout stays empty here too.
func NewSETROPTSRegistry() *Registry {
	r := newRegistry(2)
	r.add(&RecordType{Code: "OPT", Name: "FINFO", Table: "fieldInfo"})
	r.add(&RecordType{Code: "CLS", Name: "CINFO", Table: "classInfo"})
	return r
}

func newRegistry(capacity int) *Registry {
	return &Registry{
		types:   make([]*RecordType, 0, capacity),
		byCode:  make(map[string]*RecordType, capacity),
		byName:  make(map[string]*RecordType, capacity),
		byTable: make(map[string]*RecordType, capacity),
	}
}

func (r *Registry) add(rt *RecordType) {
	r.types = append(r.types, rt)
	r.byCode[rt.Code] = rt
	r.byName[rt.Name] = rt
	r.byTable[rt.Table] = rt
}

// Lookup returns the record type for a type code, or nil when the code is
// not registered. Unknown codes are the caller's decision, not an error.
func (r *Registry) Lookup(code string) *RecordType {
	return r.byCode[code]
}

// LookupName returns the record type for a record name like "USBD".
func (r *Registry) LookupName(name string) *RecordType {
	return r.byName[name]
}

// LookupTable returns the record type feeding the given output table.
func (r *Registry) LookupTable(table string) *RecordType {
	return r.byTable[table]
}

// Types returns the registered record types in registration order.
func (r *Registry) Types() []*RecordType {
	return r.types
}

// Len returns the number of registered record types.
func (r *Registry) Len() int {
	return len(r.types)
}
