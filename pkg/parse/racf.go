package parse

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/segmentio/ksuid"

	"github.com/mfdata/zunload/pkg/decode"
	"github.com/mfdata/zunload/pkg/layout"
	"github.com/mfdata/zunload/pkg/table"
)

// maxLineBytes bounds one unload line; IRRDBU00 files are written with
// LRECL=4096 so this leaves generous headroom.
const maxLineBytes = 64 * 1024

// RACFParser decodes an IRRDBU00 text unload: newline-delimited records,
// a 4-character type tag in columns 1-4, fields at registry-defined
// 1-based offsets.
type RACFParser struct {
	registry *layout.Registry
	path     string
	prog     *progress
	once     sync.Once
	done     chan struct{}
	result   *Result

	// rows buffers decoded rows per type code until materialization,
	// touched only by the worker.
	rows map[string][]table.Row
}

// NewRACF creates a parser for an IRRDBU00 unload file. The input path
// is required and must be readable; both failures are fatal here, never
// mid-scan. The line count of the input is taken up front so progress
// can report a completion percentage.
func NewRACF(reg *layout.Registry, path string) (*RACFParser, error) {
	if path == "" {
		return nil, ErrNoInput
	}
	lines, err := countLines(path)
	if err != nil {
		return nil, fmt.Errorf("open unload file: %w", err)
	}
	return &RACFParser{
		registry: reg,
		path:     path,
		prog:     newProgress(ksuid.New().String(), lines),
		done:     make(chan struct{}),
		rows:     make(map[string][]table.Row),
	}, nil
}

// RestoreRACF builds a Ready parser from cache-loaded tables without
// touching any input file. Counters are synthesized from row counts
// (seen == parsed == rows); registered types without a table restore
// empty with zero counters.
func RestoreRACF(reg *layout.Registry, tables map[string]*table.Table) *RACFParser {
	p := &RACFParser{
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
	p.result = restored(reg, tables, nil)
	// Consume the once so a later Parse cannot start a worker.
	p.once.Do(func() {})
	close(p.done)
	return p
}

// Parse starts the scan on a background worker and returns immediately.
// Progress is available from Status; Wait blocks until the worker is
// done. Calling Parse again is a no-op.
func (p *RACFParser) Parse() {
	p.once.Do(func() {
		p.prog.beginParsing()
		go p.run()
	})
}

// Wait blocks until the scan finishes and returns the scan-level error,
// if any. Record-level problems never surface here; they are counted
// and reported through Status and Diagnostics.
func (p *RACFParser) Wait() error {
	<-p.done
	p.prog.mu.Lock()
	defer p.prog.mu.Unlock()
	return p.prog.failure
}

// Status returns a snapshot of the engine, safe to call concurrently
// with the scan.
func (p *RACFParser) Status() Status {
	return p.prog.snapshot()
}

// Diagnostics returns the human-readable per-line diagnostics collected
// during the scan, one entry per unsupported record type encountered.
func (p *RACFParser) Diagnostics() []string {
	return p.prog.diagnostics()
}

// Result returns the materialized tables, or ErrNotReady while the scan
// is still running.
func (p *RACFParser) Result() (*Result, error) {
	if p.prog.currentState() != StateReady {
		return nil, ErrNotReady
	}
	return p.result, nil
}

// Parsed returns the parsed count for a record name, 0 when the type was
// never seen.
func (p *RACFParser) Parsed(name string) int {
	rt := p.registry.LookupName(name)
	if rt == nil {
		return 0
	}
	st := p.prog.snapshot()
	return st.PerType[rt.Code].Parsed
}

func (p *RACFParser) run() {
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
		p.scanLine(sanitize(scanner.Bytes()), lineno)
	}
	if err := scanner.Err(); err != nil {
		p.prog.fail(fmt.Errorf("reading %s: %w", p.path, err))
		return
	}

	p.result = materialize(p.registry, p.rows, nil)
	p.rows = nil
	p.prog.ready()
}

func (p *RACFParser) scanLine(line string, lineno int) {
	if len(line) < 4 {
		p.prog.diag(fmt.Sprintf("Unsupported recordtype '%s' on line %d ignored.", line, lineno))
		return
	}
	tag := line[:4]
	rt := p.registry.Lookup(tag)
	if rt == nil {
		p.prog.diag(fmt.Sprintf("Unsupported recordtype '%s' on line %d ignored.", tag, lineno))
		return
	}
	p.prog.seen(tag)
	if !rt.HasLayout() {
		return
	}
	p.rows[tag] = append(p.rows[tag], decode.Line(line, rt.Layout))
	p.prog.parsed(tag)
}

// sanitize strips the trailing CR of CRLF transfers and replaces bytes
// that are not valid text rather than failing the scan.
func sanitize(raw []byte) string {
	line := strings.TrimSuffix(string(raw), "\r")
	return strings.ToValidUTF8(line, "�")
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	n := 0
	for scanner.Scan() {
		n++
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return n, nil
}
