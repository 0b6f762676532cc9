package cst

import (
	"xtread/internal/source"
	"xtread/internal/token"
)

// Hints presizes the node arena. Nodes is the expected node count.
type Hints struct{ Nodes uint }

// Builder collects the top-level data of one file.
type Builder struct {
	Nodes *Nodes
	top   []NodeID
}

// NewBuilder sizes arenas from hints; a zero hint is estimated by the caller
// (the parser uses the file length).
func NewBuilder(hints Hints, strs *source.Interner) *Builder {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 8
	}
	return &Builder{
		Nodes: NewNodes(hints.Nodes, strs),
		top:   make([]NodeID, 0, 16),
	}
}

func (b *Builder) PushTop(id NodeID) {
	b.top = append(b.top, id)
}

// Finish freezes the builder into a Program. The builder must not be reused.
func (b *Builder) Finish(file *source.File, trivia []token.Trivia) *Program {
	return &Program{
		File:   file,
		Nodes:  b.Nodes,
		Top:    b.top,
		Trivia: trivia,
	}
}
