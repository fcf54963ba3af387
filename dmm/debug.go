package dmm

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"dmmu/utils/debug"
)

// String returns a readable tree of the whole map.
func (m *Map) String() string {
	if m == nil {
		return "<nil Map>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Map size%s key_length[%d] format[%s]", m.Size, m.KeyLength, m.Format)
	if len(m.Header) > 0 {
		tw.TextBlock(1, "Header", m.Header)
	}

	tw.Line(1, "Dictionary: %d", m.dict.Len())
	for k, t := range m.dict.All() {
		tw.List(2, "Key["+string(k)+"]", t)
	}

	usage := make(map[string]int)
	for _, k := range m.grid {
		usage[string(k)]++
	}
	tw.Line(1, "Grid: %d of %d placed", len(m.grid), m.Size.volume())
	keys := slices.Collect(maps.Keys(usage))
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		tw.Line(2, "Key[%q] used %d time(s)", k, usage[k])
	}
	return tw.String()
}
