package parse

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/segmentio/ksuid"

	"github.com/mfdata/zunload/pkg/decode"
	"github.com/mfdata/zunload/pkg/ebcdic"
	"github.com/mfdata/zunload/pkg/layout"
	"github.com/mfdata/zunload/pkg/table"
)

// dcollectFields supplies the column sets of the binary record types,
// whose layouts live in the decoders rather than the offsets resource.
var dcollectFields = map[string][]string{
	"D":  decode.DatasetFields,
	"V":  decode.VolumeFields,
	"DC": decode.DataClassFields,
}

// DCollectParser decodes a binary DCOLLECT unload: records prefixed by a
// 2-byte big-endian length that counts itself, with the record type tag
// in payload bytes 2-3, encoded in code page 500. Record types D, V and
// DC decode to tables; every other tag is counted as seen and skipped.
type DCollectParser struct {
	registry *layout.Registry
	path     string
	prog     *progress
	once     sync.Once
	done     chan struct{}
	result   *Result

	rows map[string][]table.Row
}

// NewDCollect creates a parser for a DCOLLECT file. A missing path or an
// unreadable file is fatal at construction.
func NewDCollect(path string) (*DCollectParser, error) {
	if path == "" {
		return nil, ErrNoInput
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dcollect file: %w", err)
	}
	f.Close()

	return &DCollectParser{
		registry: layout.NewDCollectRegistry(),
		path:     path,
		prog:     newProgress(ksuid.New().String(), 0),
		done:     make(chan struct{}),
		rows:     make(map[string][]table.Row),
	}, nil
}

// RestoreDCollect builds a Ready parser from cache-loaded tables, the
// same way RestoreRACF does for text unloads.
func RestoreDCollect(tables map[string]*table.Table) *DCollectParser {
	reg := layout.NewDCollectRegistry()
	p := &DCollectParser{
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
	p.result = restored(reg, tables, dcollectFields)
	// Consume the once so a later Parse cannot start a worker.
	p.once.Do(func() {})
	close(p.done)
	return p
}

// Parse starts the scan on a background worker and returns immediately.
func (p *DCollectParser) Parse() {
	p.once.Do(func() {
		p.prog.beginParsing()
		go p.run()
	})
}

// Wait blocks until the scan finishes and returns the scan-level error,
// if any.
func (p *DCollectParser) Wait() error {
	<-p.done
	p.prog.mu.Lock()
	defer p.prog.mu.Unlock()
	return p.prog.failure
}

// Status returns a snapshot of the engine, safe to call concurrently
// with the scan.
func (p *DCollectParser) Status() Status {
	return p.prog.snapshot()
}

// Result returns the materialized tables, or ErrNotReady while the scan
// is still running.
func (p *DCollectParser) Result() (*Result, error) {
	if p.prog.currentState() != StateReady {
		return nil, ErrNotReady
	}
	return p.result, nil
}

func (p *DCollectParser) run() {
	defer close(p.done)

	f, err := os.Open(p.path)
	if err != nil {
		p.prog.fail(err)
		return
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	for {
		payload, err := readRecord(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			p.prog.fail(fmt.Errorf("reading %s: %w", p.path, err))
			return
		}
		p.scanRecord(payload)
	}

	p.result = materialize(p.registry, p.rows, dcollectFields)
	p.rows = nil
	p.prog.ready()
}

// readRecord reads one length-prefixed record and returns its payload
// (the record minus the prefix). EOF or a short read on the length
// prefix is the normal end of the file, not an error.
func readRecord(r *bufio.Reader) ([]byte, error) {
	var prefix [2]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	length := int(binary.BigEndian.Uint16(prefix[:]))
	if length < 2 {
		return nil, fmt.Errorf("record length prefix %d below prefix size", length)
	}
	payload := make([]byte, length-2)
	if _, err := io.ReadFull(r, payload); err != nil {
		// A truncated final record ends the scan the same way a clean
		// EOF on the prefix does.
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return payload, nil
}

func (p *DCollectParser) scanRecord(payload []byte) {
	if len(payload) < 4 {
		// Too short to carry a type tag; still counts as seen, under
		// the empty tag the stripped slice reads as.
		p.prog.seen("")
		return
	}
	tag := ebcdic.DecodeTrim(payload[2:4])
	// Every record counts as seen, recognized or not; unrecognized tags
	// are skipped without a diagnostic.
	p.prog.seen(tag)

	var (
		row table.Row
		err error
	)
	switch tag {
	case "D":
		row, err = decode.Dataset(payload)
	case "V":
		row, err = decode.Volume(payload)
	case "DC":
		row, err = decode.DataClass(payload)
	default:
		return
	}
	if err != nil {
		return
	}
	p.rows[tag] = append(p.rows[tag], row)
	p.prog.parsed(tag)
}
