package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mfdata/zunload/pkg/parse"
	"github.com/mfdata/zunload/pkg/table"
)

// DCollect answers derived questions about a parsed DCOLLECT unload.
type DCollect struct {
	p *parse.DCollectParser
}

func NewDCollect(p *parse.DCollectParser) *DCollect {
	return &DCollect{p: p}
}

// DatasetsOnVolume returns the sorted names of all datasets on a
// volume. The volume must exist in the unload's volume records.
func (q *DCollect) DatasetsOnVolume(volser string) ([]string, error) {
	res, err := q.p.Result()
	if err != nil {
		return nil, err
	}
	known := res.Table("VRECS").Select(func(r table.Row) bool {
		return r.Str("DCVVOLSR") == volser
	})
	if len(known) == 0 {
		return nil, fmt.Errorf("volser %s not found", volser)
	}

	var names []string
	for _, r := range res.Table("DRECS").Rows {
		// DCDVOLSR keeps its fixed-width padding; the volume records
		// carry the trimmed serial.
		if strings.TrimRight(r.Str("DCDVOLSR"), " ") == volser {
			names = append(names, r.Str("DCDDSNAM"))
		}
	}
	sort.Strings(names)
	return names, nil
}
