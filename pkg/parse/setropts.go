package parse

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/segmentio/ksuid"

	"github.com/mfdata/zunload/pkg/layout"
	"github.com/mfdata/zunload/pkg/table"
)

// setroptsOptions lists every single-valued SETROPTS setting with its
// meaning. The order here is the order unspecified settings are filled
// in at the end of the options table.
var setroptsOptions = []struct{ key, meaning string }{
	{"ADDCREAT", "ADCREATOR IN EFFECT (TRUE/FALSE)"},
	{"ADSP", "AUTOMATIC DATASET PROTECTION IS EFFECT (TRUE/FALSE)"},
	{"APPLAUDT", "APPLAUDIT IN EFFECT (TRUE/FALSE)"},
	{"CATDSNS", "CATALOGUED DATA SETS ONLY IN EFFECT (TRUE/FALSE)"},
	{"CMDVIOL", "ATTRIBUTE SETTING: RACF command violations are logged"},
	{"COMPMODE", "COMPATIBILITY MODE IN EFFECT (TRUE/FALSE)"},
	{"EGN", "ENHANCED GENERIC NAMING IS IN EFFECT (TRUE/FALSE()"},
	{"ERASE", "ERASE-ON-SCRATCH IS ACTIVE (TRUE/FALSE)"},
	{"ERASEALL", "ERASE-ON-SCRATCH FOR ALL (TRUE/FALSE)"},
	{"ERASESEC", "ERASE-ON-SCRATCH FOR SECLEVEL (SECLEVEL VALUE/FALSE)"},
	{"GENOWNER", "GENERIC OWNER ONLY IN EFFECT (TRUE/FALSE)"},
	{"GRPLIST", "LIST OF GROUPS ACCESS CHECKING IS ACTIVE (TRUE/FALSE)"},
	{"HISTORY", "GENERATIONS OF PREVIOUS PASSWORDS BEING MAINTAINED (AMOUNT)"},
	{"INACTIVE", "INACTIVE USERIDS ARE BEING AUTOMATICALLY REVOKED AFTER xx DAYS (AMOUNT/FALSE)"},
	{"INITSTAT", "ATTRIBUTE SETTING: records statistics on all user profiles in the system"},
	{"INTERVAL", "PASSWORD INTERVAL"},
	{"JESBATCH", "JES-BATCHALLRACF OPTION IS ACTIVE (TRUE/FALSE)"},
	{"JESEARLY", "JES-EARLYVERIFY OPTION IS ACTIVE (TRUE/FALSE)"},
	{"JESNJE", "USER-ID FOR JES NJEUSERID (USERID/UNDEFINED)"},
	{"JESUNDEF", "USER-ID FOR JES UNDEFINEDUSER (USERID/UNDEFINED)"},
	{"JESXBM", "JES-XBMALLRACF OPTION IS ACTIVE (TRUE/FALSE)"},
	{"KERBLVL", "KERBLVL (OBSOLETE SINCE 1.9)"},
	{"MINCHANG", "PASSWORD MINIMUM CHANGE INTERVAL (AMOUNT)"},
	{"MIXDCASE", "MIXED CASE PASSWORD SUPPORT IS IN EFFECT (TRUE/FALSE)"},
	{"MLACTIVE", "MULTI-LEVEL ACTIVE IS IN EFFECT (TRUE/FALSE)"},
	{"MLFS", "MULTI-LEVEL FILE SYSTEM IS  IN EFFECT (TRUE/FALSE)"},
	{"MLIPC", "MULTI-LEVEL INTERPROCESS COMMUNICATIONS IS IN EFFECT (TRUE/FALSE)"},
	{"MLNAMES", "MULTI-LEVEL NAME HIDING IS IN EFFECT (TRUE/FALSE)"},
	{"MLQUIET", "MULTI-LEVEL QUIET IS IN EFFECT TRUE/FALSE)"},
	{"MLS", "MLS IS IN EFFECT (TRUE/FALSE)"},
	{"MLSTABLE", "MULTI-LEVEL STABLE IS IN EFFECT (TRUE/FALSE)"},
	{"MODEL", "DATA SET MODELLING BEING DONE (TRUE/FALSE)"},
	{"MODGDG", "MODGDG IS ACTIVE (TRUE/FALSE)"},
	{"MODGROUP", "MODGROUP IS ACTIVE (TRUE/FALSE)"},
	{"MODUSER", "MODUSER IS ACTIVE (TRUE/FALSE)"},
	{"OPERAUDT", "ATTRIBUTE SETTING: RACF commands issued & resources accessed using OPERATIONS authority are logged"},
	{"PHRINT", "PASSPHRASE INTERVAL"},
	{"PREFIX", "SINGLE LEVEL NAME PREFIX"},
	{"PRIMLANG", "PRIMARY LANGUAGE DEFAULT"},
	{"PROTALL", "PROTECTALL (FAILURES/WARNING/OFF)"},
	{"PWDALG", "THE ACTIVE PASSWORD ENCRYPTION ALGORITHM"},
	{"PWDSPEC", "SPECIAL CHARACTERS IN PASWORD ARE ALLOWED (TRUE/FALSE)"},
	{"REALDSN", "REAL DATA SET NAMES OPTION IS ACTIVE (TRUE/FALSE)"},
	{"RETPD", "SECURITY RETENTION PERIOD (DAYS/FALSE)"},
	{"REVOKE", "CONSECUTIVE UNSUCCESSFUL PASSWORD ATTEMPTS REVOKING USER (AMOUNT/FALSE)"},
	{"RULES", "RACF PASSWORDRULES ACTIVE (TRUE/FALSE)"},
	{"RULE1", "PASSWORDRULE 1"},
	{"RULE2", "PASSWORDRULE 2"},
	{"RULE3", "PASSWORDRULE 3"},
	{"RULE4", "PASSWORDRULE 4"},
	{"RULE5", "PASSWORDRULE 5"},
	{"RULE6", "PASSWORDRULE 6"},
	{"RULE7", "PASSWORDRULE 7"},
	{"RULE8", "PASSWORDRULE 8"},
	{"SAUDIT", "ATTRIBUTE SETTING: RACF commands issued using SPECIAL authority are logged"},
	{"RVARSWPW", "RVARY SWITCH PASSWORD (DEFAULT/INSTLN)"},
	{"RVARSWFM", "THE ACTIVE RVARY SWITCH PASSWORD ENCRYPTION ALGORITHM"},
	{"RVARSTPW", "RVARY STATUS PASSWORD (DEFAULT/INSTLN)"},
	{"RVARSTFM", "THE ACTIVE RVARY STATUS PASSWORD ENCRYPTION ALGORITHM"},
	{"SECLABCT", "SECLABEL CONTROL IS IN EFFECT (TRUE/FALSE)"},
	{"SESSINT", "PARTNER LU-VERIFICATION SESSIONKEY INTERVAL MAXIMUM/DEFAULT (MINUTES/NOLIMIT)"},
	{"SLABAUDT", "SECLABEL AUDIT IS IN EFFECT (TRUE/FALSE)"},
	{"SLBYSYS", "SECURITY LABEL BY SYSTEM IS IN EFFECT (TRUE/FALSE)"},
	{"WARNING", "PASSWORD EXPIRATION WARNING LEVEL (DAYS/FALSE)"},
	{"TAPEDSN", "TAPE DATA SET PROTECTION IS ACTIVE (TRUE/FALSE)"},
	{"WHENPROG", "ATTRIBUTE SETTING: Activates PROGRAM Class. Enables protection of program modules & use of conditional access to datasets via a specific program"},
	{"SECLANG", "SECONDARY LANGUAGE DEFAULT"},
	{"TERMINAL", "ATTRIBUTE SETTING: Specifies the universal access (UACC) for undefined terminals"},
}

// setroptsLists are the multi-valued per-class settings; each one
// becomes a YES/NO column of the class table.
var setroptsLists = []string{
	"CLASSACT",
	"CLASSTAT",
	"GENCMD",
	"GENERIC",
	"GENLIST",
	"GLOBAL",
	"RACLIST",
	"AUDIT",
	"LOGALWYS",
	"LOGNEVER",
	"LOGSUCC",
	"LOGFAIL",
	"LOGDEFLT",
}

var setroptsFields = map[string][]string{
	"OPT": {"Setting", "Value", "Meaning"},
	"CLS": setroptsClassFields(),
}

var (
	setroptsMeanings = make(map[string]string, len(setroptsOptions))
	setroptsListSet  = make(map[string]bool, len(setroptsLists))
)

func init() {
	for _, o := range setroptsOptions {
		setroptsMeanings[o.key] = o.meaning
	}
	for _, l := range setroptsLists {
		setroptsListSet[l] = true
	}
}

func setroptsClassFields() []string {
	return append([]string{"name"}, setroptsLists...)
}

// setroptsDefault is the value reported for a setting the extract does
// not mention.
func setroptsDefault(key string) string {
	switch key {
	case "RULES":
		return "TRUE"
	case "HISTORY":
		return "0"
	case "SESSINT":
		return "NOLIMIT"
	case "JESNJE", "JESUNDEF":
		return "UNDEFINED"
	case "PROTALL":
		return "OFF"
	}
	return "FALSE"
}

// SETROPTSParser decodes an IRRXUTIL _SETROPTS extract: one KEY:VALUE
// pair per line. Single-valued settings become rows of the options
// table FINFO, with their meaning and with unmentioned settings filled
// in at their default; the multi-valued per-class settings pivot into
// the CINFO table, one row per class with a YES/NO cell per setting.
type SETROPTSParser struct {
	registry *layout.Registry
	path     string
	prog     *progress
	once     sync.Once
	done     chan struct{}
	result   *Result

	// accumulated by the worker until materialization.
	options  map[string]table.Value
	optOrder []string
	lists    map[string][]string
}

// NewSETROPTS creates a parser for a SETROPTS extract file. As with the
// other formats the path must be readable at construction; the line
// count is taken up front for progress reporting.
func NewSETROPTS(path string) (*SETROPTSParser, error) {
	if path == "" {
		return nil, ErrNoInput
	}
	lines, err := countLines(path)
	if err != nil {
		return nil, fmt.Errorf("open setropts file: %w", err)
	}
	return &SETROPTSParser{
		registry: layout.NewSETROPTSRegistry(),
		path:     path,
		prog:     newProgress(ksuid.New().String(), lines),
		done:     make(chan struct{}),
		options:  make(map[string]table.Value),
		lists:    make(map[string][]string),
	}, nil
}

// RestoreSETROPTS builds a Ready parser from cache-loaded tables.
func RestoreSETROPTS(tables map[string]*table.Table) *SETROPTSParser {
	reg := layout.NewSETROPTSRegistry()
	p := &SETROPTSParser{
		registry: reg,
		prog:     newProgress(ksuid.New().String(), 0),
		done:     make(chan struct{}),
	}
	counts := make(map[string]int, len(tables))
	for name, t := range tables {
		if rt := reg.LookupName(name); rt != nil {
			counts[rt.Code] = t.Len()
		}
	}
	p.prog.restore(counts)
	p.result = restored(reg, tables, setroptsFields)
	// Consume the once so a later Parse cannot start a worker.
	p.once.Do(func() {})
	close(p.done)
	return p
}

// Parse starts the scan on a background worker and returns immediately.
func (p *SETROPTSParser) Parse() {
	p.once.Do(func() {
		p.prog.beginParsing()
		go p.run()
	})
}

// Wait blocks until the scan finishes and returns the scan-level error,
// if any.
func (p *SETROPTSParser) Wait() error {
	<-p.done
	p.prog.mu.Lock()
	defer p.prog.mu.Unlock()
	return p.prog.failure
}

// Status returns a snapshot of the engine, safe to call concurrently
// with the scan.
func (p *SETROPTSParser) Status() Status {
	return p.prog.snapshot()
}

// Diagnostics returns the per-line diagnostics collected during the
// scan, one entry per malformed pair encountered.
func (p *SETROPTSParser) Diagnostics() []string {
	return p.prog.diagnostics()
}

// Result returns the materialized tables, or ErrNotReady while the scan
// is still running.
func (p *SETROPTSParser) Result() (*Result, error) {
	if p.prog.currentState() != StateReady {
		return nil, ErrNotReady
	}
	return p.result, nil
}

func (p *SETROPTSParser) run() {
	defer close(p.done)

	f, err := os.Open(p.path)
	if err != nil {
		p.prog.fail(err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineno := 0
	for scanner.Scan() {
		lineno++
		p.scanPair(sanitize(scanner.Bytes()), lineno)
	}
	if err := scanner.Err(); err != nil {
		p.prog.fail(fmt.Errorf("reading %s: %w", p.path, err))
		return
	}

	p.result = materialize(p.registry, map[string][]table.Row{
		"OPT": p.optionRows(),
		"CLS": p.classRows(),
	}, setroptsFields)
	p.options, p.optOrder, p.lists = nil, nil, nil
	p.prog.ready()
}

func (p *SETROPTSParser) scanPair(line string, lineno int) {
	if strings.TrimSpace(line) == "" {
		return
	}
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		p.prog.diag(fmt.Sprintf("Malformed SETROPTS pair on line %d ignored.", lineno))
		return
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	if setroptsListSet[key] {
		p.prog.seen("CLS")
		p.lists[key] = append(p.lists[key], value)
		p.prog.parsed("CLS")
		return
	}
	p.prog.seen("OPT")
	if _, dup := p.options[key]; !dup {
		p.optOrder = append(p.optOrder, key)
	}
	p.options[key] = optionValue(value)
	p.prog.parsed("OPT")
}

// optionValue keeps numeric settings like INTERVAL or HISTORY numeric.
func optionValue(v string) table.Value {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return table.Int(n)
	}
	return table.String(v)
}

func (p *SETROPTSParser) optionRows() []table.Row {
	rows := make([]table.Row, 0, len(setroptsOptions))
	for _, key := range p.optOrder {
		rows = append(rows, table.Row{
			"Setting": table.String(key),
			"Value":   p.options[key],
			"Meaning": table.String(setroptsMeanings[key]),
		})
	}
	// Settings the extract does not mention still get a row, at the
	// value they default to.
	for _, o := range setroptsOptions {
		if _, ok := p.options[o.key]; ok {
			continue
		}
		rows = append(rows, table.Row{
			"Setting": table.String(o.key),
			"Value":   optionValue(setroptsDefault(o.key)),
			"Meaning": table.String(o.meaning),
		})
	}
	return rows
}

func (p *SETROPTSParser) classRows() []table.Row {
	member := make(map[string]map[string]bool, len(p.lists))
	classSet := make(map[string]bool)
	for list, classes := range p.lists {
		m := make(map[string]bool, len(classes))
		for _, c := range classes {
			m[c] = true
			classSet[c] = true
		}
		member[list] = m
	}

	names := make([]string, 0, len(classSet))
	for c := range classSet {
		names = append(names, c)
	}
	sort.Strings(names)

	rows := make([]table.Row, 0, len(names))
	for _, c := range names {
		row := table.Row{"name": table.String(c)}
		for _, list := range setroptsLists {
			if member[list][c] {
				row[list] = table.String("YES")
			} else {
				row[list] = table.String("NO")
			}
		}
		rows = append(rows, row)
	}
	return rows
}
