package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfdata/zunload/pkg/cache"
	"github.com/mfdata/zunload/pkg/layout"
	"github.com/mfdata/zunload/pkg/parse"
	"github.com/mfdata/zunload/pkg/table"
)

// barWidth is the cell count of the terminal progress bar.
const barWidth = 63

func stamp() string {
	return time.Now().Format("06-01-02 15:04:05")
}

// buildRACF makes a text-unload engine from the command flags: a fresh
// parser when --input is given, a cache restore otherwise.
func buildRACF(cmd *cobra.Command) (*parse.RACFParser, error) {
	input, _ := cmd.Flags().GetString("input")
	reg, err := layout.NewRegistry()
	if err != nil {
		return nil, err
	}
	if input == "" {
		tables, err := loadCache(cmd)
		if err != nil {
			return nil, err
		}
		return parse.RestoreRACF(reg, tables), nil
	}
	return parse.NewRACF(reg, input)
}

// buildSETROPTS makes a SETROPTS-extract engine the same way.
func buildSETROPTS(cmd *cobra.Command) (*parse.SETROPTSParser, error) {
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		tables, err := loadCache(cmd)
		if err != nil {
			return nil, err
		}
		return parse.RestoreSETROPTS(tables), nil
	}
	return parse.NewSETROPTS(input)
}

// buildDCollect makes a binary-unload engine the same way.
func buildDCollect(cmd *cobra.Command) (*parse.DCollectParser, error) {
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		tables, err := loadCache(cmd)
		if err != nil {
			return nil, err
		}
		return parse.RestoreDCollect(tables), nil
	}
	return parse.NewDCollect(input)
}

func loadCache(cmd *cobra.Command) (map[string]*table.Table, error) {
	dir, _ := cmd.Flags().GetString("cache-dir")
	prefix, _ := cmd.Flags().GetString("prefix")

	store, err := cache.Open(dir)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	tables, err := store.Load(prefix)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, parse.ErrNoInput
	}
	return tables, nil
}

func saveCache(cmd *cobra.Command, tables map[string]*table.Table) error {
	dir, _ := cmd.Flags().GetString("cache-dir")
	prefix, _ := cmd.Flags().GetString("prefix")

	store, err := cache.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(prefix, tables); err != nil {
		return err
	}
	fmt.Printf("%s - tables saved to %s\n", stamp(), dir)
	return nil
}

// textEngine is the command-side view of a line-oriented parser.
type textEngine interface {
	Parse()
	Status() parse.Status
	Wait() error
	Diagnostics() []string
}

// runWithBar drives a line-oriented scan with a progress bar, then
// prints the per-type summary and the diagnostics.
func runWithBar(p textEngine, input string) error {
	fmt.Printf("%s - parsing %s\n", stamp(), input)
	p.Parse()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		st := p.Status()
		if st.State == parse.StateReady || st.State == parse.StateBad {
			break
		}
		cells := 0
		if st.InputRecords > 0 {
			cells = st.RecordsSeen * barWidth / st.InputRecords
		}
		pct := float64(cells) / barWidth * 100
		line := fmt.Sprintf("%s - progress: %s%s (%.2f%%)",
			stamp(), strings.Repeat("▉", cells), strings.Repeat(" ", barWidth-cells), pct)
		fmt.Printf("%s\r", line)
		<-ticker.C
	}
	if err := p.Wait(); err != nil {
		fmt.Println()
		return err
	}
	// The completed line always shows 100%.
	fmt.Printf("%s - progress: %s (%.2f%%)\n", stamp(), strings.Repeat("▉", barWidth), 100.0)

	st := p.Status()
	for _, code := range sortedCodes(st.PerType) {
		fmt.Printf("%s - recordtype %s -> %d records parsed\n", stamp(), code, st.PerType[code].Parsed)
	}
	fmt.Printf("%s - total parse time: %.6f seconds\n", stamp(), st.ElapsedSeconds)

	diags := p.Diagnostics()
	fmt.Printf("%s - %d input lines could not be parsed\n", stamp(), len(diags))
	for _, d := range diags {
		fmt.Printf("%s   - %s\n", stamp(), d)
	}
	return nil
}

// runPlain drives a binary-unload scan; record counts are unknown up
// front so there is no bar, just the engine status until Done.
func runPlain(p *parse.DCollectParser, input string) error {
	fmt.Printf("%s - parsing %s\n", stamp(), input)
	p.Parse()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		st := p.Status()
		if st.State == parse.StateReady || st.State == parse.StateBad {
			break
		}
		fmt.Printf("%s - %s\r", stamp(), st.Status)
		<-ticker.C
	}
	if err := p.Wait(); err != nil {
		fmt.Println()
		return err
	}
	fmt.Printf("\n%s - Done.\n", stamp())

	st := p.Status()
	for _, code := range sortedCodes(st.PerType) {
		c := st.PerType[code]
		fmt.Printf("%s   - %d %s-records seen, %d parsed\n", stamp(), c.Seen, code, c.Parsed)
	}
	return nil
}

func sortedCodes(perType map[string]parse.Counter) []string {
	codes := make([]string, 0, len(perType))
	for code := range perType {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
