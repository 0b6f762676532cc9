package cst

import (
	"xtread/internal/source"
	"xtread/internal/token"
)

// Program is the read-only result of parsing one buffer.
// Trivia is nil unless the parse was asked to keep it.
type Program struct {
	File   *source.File
	Nodes  *Nodes
	Top    []NodeID
	Trivia []token.Trivia
}

// Text returns the exact source slice covered by the node.
func (p *Program) Text(id NodeID) string {
	node := p.Nodes.Get(id)
	if node == nil || p.File == nil {
		return ""
	}
	return string(p.File.Slice(node.Span))
}

// Span of the node, zero for NoNodeID.
func (p *Program) Span(id NodeID) source.Span {
	if node := p.Nodes.Get(id); node != nil {
		return node.Span
	}
	return source.Span{}
}

// Kind of the node, zero for NoNodeID.
func (p *Program) Kind(id NodeID) NodeKind {
	if node := p.Nodes.Get(id); node != nil {
		return node.Kind
	}
	return 0
}

// TopTrivia returns the trivia not nested in any top-level node.
func (p *Program) TopTrivia() []token.Trivia {
	out := make([]token.Trivia, 0, len(p.Trivia))
	i := 0
	for _, tv := range p.Trivia {
		for i < len(p.Top) && p.Span(p.Top[i]).End <= tv.Span.Start {
			i++
		}
		if i < len(p.Top) && p.Span(p.Top[i]).Contains(tv.Span) {
			continue
		}
		out = append(out, tv)
	}
	return out
}
