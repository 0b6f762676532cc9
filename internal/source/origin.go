package source

import (
	"sort"

	"fortio.org/safecast"
)

// OffsetMap translates offsets in a normalised buffer back to the bytes the
// buffer was produced from. Each normalisation step that changed the content
// contributes one stage. A nil map is the identity.
type OffsetMap struct {
	stages [][]shift // в порядке применения нормализаций
}

// shift: начиная со смещения at (в выходе стадии) к смещению прибавляется
// накопленная разница delta между входом и выходом.
type shift struct {
	at    uint32
	delta int64
}

func (m *OffsetMap) push(stage []shift) *OffsetMap {
	if len(stage) == 0 {
		return m
	}
	if m == nil {
		m = &OffsetMap{}
	}
	m.stages = append(m.stages, stage)
	return m
}

// Start maps an inclusive offset. An offset sitting on a removed sequence
// lands after it, so "\r\n" folded to "\n" maps the "\n" onto the "\n".
func (m *OffsetMap) Start(off uint32) uint32 { return m.translate(off, false) }

// End maps an exclusive offset. An offset sitting on a removed sequence
// stays before it, so a span ending at a folded line break does not
// swallow the "\r".
func (m *OffsetMap) End(off uint32) uint32 { return m.translate(off, true) }

// Span maps both ends of sp; empty spans stay empty.
func (m *OffsetMap) Span(sp Span) Span {
	if m == nil {
		return sp
	}
	start := m.Start(sp.Start)
	end := start
	if !sp.Empty() {
		end = max(m.End(sp.End), start)
	}
	return Span{File: sp.File, Start: start, End: end}
}

func (m *OffsetMap) translate(off uint32, exclusive bool) uint32 {
	if m == nil {
		return off
	}
	pos := int64(off)
	for i := len(m.stages) - 1; i >= 0; i-- {
		stage := m.stages[i]
		// первый сдвиг, который на pos ещё не действует
		k := sort.Search(len(stage), func(j int) bool {
			if exclusive {
				return int64(stage[j].at) >= pos
			}
			return int64(stage[j].at) > pos
		})
		if k > 0 {
			pos += stage[k-1].delta
		}
		if pos < 0 {
			pos = 0
		}
	}
	out, err := safecast.Conv[uint32](pos)
	if err != nil {
		panic(err)
	}
	return out
}
