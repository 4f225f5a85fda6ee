// Package parse owns the scan-decode-materialize engine for unload
// files. A single background worker reads the input sequentially,
// classifies each record by its type tag, decodes it, and accumulates
// rows per record type; the caller polls a mutex-guarded status snapshot
// until the engine reaches Ready.
package parse

import "errors"

// State is the engine lifecycle: Init until Parse is called, Parsing
// while the worker scans, Ready once tables are materialized. Bad is
// reached only on an I/O failure during the scan; construction failures
// surface as errors before an engine exists.
type State int

const (
	StateBad State = iota - 1
	StateInit
	StateParsing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateBad:
		return "Error"
	case StateInit:
		return "Initial Object"
	case StateParsing:
		return "Still parsing your unload"
	case StateReady:
		return "Ready"
	}
	return "Limbo"
}

var (
	// ErrNoInput is returned when neither an unload file nor a cache
	// was given to a constructor.
	ErrNoInput = errors.New("no unload file or cache specified")

	// ErrNotReady is returned by result-dependent operations invoked
	// before the engine reaches Ready.
	ErrNotReady = errors.New("not done parsing yet")
)

// Counter tracks one record type through the scan. Parsed never exceeds
// Seen: a record is seen when its tag is classified and parsed only when
// decoding completed without error.
type Counter struct {
	Seen   int `json:"seen"`
	Parsed int `json:"parsed"`
}

// Status is a point-in-time snapshot of the engine, safe to read while
// the worker is scanning.
type Status struct {
	State            State              `json:"-"`
	Status           string             `json:"status"`
	RunID            string             `json:"run_id"`
	InputRecords     int                `json:"input_records"`
	RecordsSeen      int                `json:"records_seen"`
	RecordsParsed    int                `json:"records_parsed"`
	RecordsPerSecond float64            `json:"records_per_second"`
	ElapsedSeconds   float64            `json:"elapsed_seconds"`
	ErrorCount       int                `json:"error_count"`
	PerType          map[string]Counter `json:"per_type"`
}
