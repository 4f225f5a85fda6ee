package parse

import (
	"sync"
	"time"
)

// progress is the only state shared between the worker and status
// pollers; every access goes through the mutex.
type progress struct {
	mu           sync.Mutex
	state        State
	runID        string
	inputRecords int
	counters     map[string]*Counter
	order        []string
	diags        []string
	failure      error
	start        time.Time
	stop         time.Time
}

func newProgress(runID string, inputRecords int) *progress {
	return &progress{
		state:        StateInit,
		runID:        runID,
		inputRecords: inputRecords,
		counters:     make(map[string]*Counter),
	}
}

func (p *progress) beginParsing() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateParsing
	p.start = time.Now()
}

func (p *progress) counter(code string) *Counter {
	c, ok := p.counters[code]
	if !ok {
		c = &Counter{}
		p.counters[code] = c
		p.order = append(p.order, code)
	}
	return c
}

func (p *progress) seen(code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counter(code).Seen++
}

func (p *progress) parsed(code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counter(code).Parsed++
}

func (p *progress) diag(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.diags = append(p.diags, msg)
}

func (p *progress) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateBad
	p.failure = err
	p.stop = time.Now()
}

func (p *progress) ready() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateReady
	p.stop = time.Now()
}

// restore seeds counters from a cache load and jumps straight to Ready.
func (p *progress) restore(counts map[string]int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.start = time.Now()
	for code, n := range counts {
		c := p.counter(code)
		c.Seen = n
		c.Parsed = n
		p.inputRecords += n
	}
	p.state = StateReady
	p.stop = time.Now()
}

func (p *progress) currentState() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *progress) diagnostics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.diags))
	copy(out, p.diags)
	return out
}

func (p *progress) snapshot() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	var seen, parsed int
	perType := make(map[string]Counter, len(p.counters))
	for code, c := range p.counters {
		perType[code] = *c
		seen += c.Seen
		parsed += c.Parsed
	}

	var elapsed float64
	switch p.state {
	case StateParsing:
		elapsed = time.Since(p.start).Seconds()
	case StateReady, StateBad:
		elapsed = p.stop.Sub(p.start).Seconds()
	}

	var rate float64
	if elapsed > 0 {
		rate = float64(seen) / elapsed
	}

	errCount := len(p.diags)
	if p.failure != nil {
		errCount++
	}

	return Status{
		State:            p.state,
		Status:           p.state.String(),
		RunID:            p.runID,
		InputRecords:     p.inputRecords,
		RecordsSeen:      seen,
		RecordsParsed:    parsed,
		RecordsPerSecond: rate,
		ElapsedSeconds:   elapsed,
		ErrorCount:       errCount,
		PerType:          perType,
	}
}
