package cst

import (
	"bytes"

	"xtread/internal/diag"
	"xtread/internal/source"
	"xtread/internal/token"
)

// Verify checks the structural invariants of a finished program.
// Any failure is a reader bug and is returned as an IntInvariantViolation.
func Verify(p *Program) *diag.Error {
	if p == nil || p.File == nil || p.Nodes == nil {
		return diag.Errorf(diag.IntInvariantViolation, source.Span{}, "program is incomplete")
	}
	v := verifier{p: p, n: p.File.Len()}
	var prev source.Span
	for i, id := range p.Top {
		node := p.Nodes.Get(id)
		if node == nil {
			return v.fail(source.Span{File: p.File.ID}, "top-level datum %d has no node", i)
		}
		if i > 0 && !prev.Before(node.Span) {
			return v.fail(node.Span, "top-level data overlap or are out of order")
		}
		prev = node.Span
		if err := v.tree(id); err != nil {
			return err
		}
	}
	return v.trivia()
}

type verifier struct {
	p *Program
	n uint32
}

func (v *verifier) fail(sp source.Span, format string, args ...any) *diag.Error {
	return diag.Errorf(diag.IntInvariantViolation, sp, format, args...)
}

func (v *verifier) inFile(sp source.Span) bool {
	return sp.File == v.p.File.ID && sp.Start <= sp.End && sp.End <= v.n
}

// tree проверяет поддерево без рекурсии: глубина вложенности не ограничена.
func (v *verifier) tree(root NodeID) *diag.Error {
	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := v.p.Nodes.Get(id)
		if node == nil {
			return v.fail(source.Span{File: v.p.File.ID}, "dangling node id %d", id)
		}
		if !v.inFile(node.Span) {
			return v.fail(node.Span, "%s span %s is outside the file", node.Kind, node.Span)
		}
		if node.Span.Empty() {
			return v.fail(node.Span, "%s node is empty", node.Kind)
		}
		if err := v.shape(id, node); err != nil {
			return err
		}
		kids := v.p.Nodes.Children(id)
		var prev source.Span
		for i, kid := range kids {
			child := v.p.Nodes.Get(kid)
			if child == nil {
				return v.fail(node.Span, "%s has a missing child", node.Kind)
			}
			if !node.Span.Contains(child.Span) || child.Span == node.Span {
				return v.fail(child.Span, "%s child escapes its parent %s", child.Kind, node.Span)
			}
			if i > 0 && !prev.Before(child.Span) {
				return v.fail(child.Span, "children of %s are out of order", node.Kind)
			}
			prev = child.Span
			stack = append(stack, kid)
		}
	}
	return nil
}

// shape проверяет разделители и payload конкретного вида узла.
func (v *verifier) shape(id NodeID, node *Node) *diag.Error {
	text := v.p.File.Slice(node.Span)
	switch node.Kind {
	case NodeList:
		data, _ := v.p.Nodes.List(id)
		if data == nil || !bytes.HasPrefix(text, []byte("(")) || !bytes.HasSuffix(text, []byte(")")) || len(text) < 2 {
			return v.fail(node.Span, "list is not delimited by parentheses")
		}
		if data.Tail.IsValid() {
			// голова может быть пустой: (. a)
			last := source.Span{File: node.Span.File, Start: node.Span.Start, End: node.Span.Start + 1}
			if len(data.Items) > 0 {
				last = v.p.Span(data.Items[len(data.Items)-1])
			}
			tail := v.p.Span(data.Tail)
			if data.Dot.Len() != 1 || !last.Before(data.Dot) || !data.Dot.Before(tail) {
				return v.fail(data.Dot, "dot is not between the head and the tail")
			}
			if dot := v.p.File.Slice(data.Dot); string(dot) != "." {
				return v.fail(data.Dot, "dot span covers %q", dot)
			}
		}
	case NodeVector:
		if !bytes.HasPrefix(text, []byte("#(")) || !bytes.HasSuffix(text, []byte(")")) || len(text) < 3 {
			return v.fail(node.Span, "vector is not delimited by #( and )")
		}
	case NodeQuote, NodeQuasiquote, NodeUnquote, NodeUnquoteSplicing:
		prefix := node.Kind.PrefixToken()
		if !bytes.HasPrefix(text, []byte(token.QuotePrefix(prefix))) {
			return v.fail(node.Span, "%s does not start with its %s prefix", node.Kind, prefix)
		}
		data, _ := v.p.Nodes.Quote(id)
		if data == nil || !data.Datum.IsValid() {
			return v.fail(node.Span, "%s has no datum", node.Kind)
		}
		if v.p.Span(data.Datum).End != node.Span.End {
			return v.fail(node.Span, "%s does not end with its datum", node.Kind)
		}
	case NodeTypedIdentifier:
		data, _ := v.p.Nodes.TypedIdentifier(id)
		if data == nil {
			return v.fail(node.Span, "typed identifier has no payload")
		}
		if data.NameSpan.Empty() || data.NameSpan.End != data.TypeSpan.Start {
			return v.fail(node.Span, "typed identifier name and annotation are not adjacent")
		}
		if data.NameSpan.Start != node.Span.Start || data.TypeSpan.End != node.Span.End {
			return v.fail(node.Span, "typed identifier parts do not cover the node")
		}
		if annot := v.p.File.Slice(data.TypeSpan); len(annot) < 2 || annot[0] != ':' {
			return v.fail(data.TypeSpan, "type annotation %q does not start with ':'", annot)
		}
	}
	return nil
}

// trivia: упорядочены, не пересекаются, и каждая либо внутри
// верхнеуровневого узла, либо не задевает ни один из них.
func (v *verifier) trivia() *diag.Error {
	var prev source.Span
	i := 0
	for k, tv := range v.p.Trivia {
		if !v.inFile(tv.Span) || tv.Span.Empty() {
			return v.fail(tv.Span, "%s trivia span %s is outside the file", tv.Kind, tv.Span)
		}
		if !tv.Kind.IsTrivia() {
			return v.fail(tv.Span, "%s is not a trivia kind", tv.Kind)
		}
		if k > 0 && !prev.Before(tv.Span) {
			return v.fail(tv.Span, "trivia overlap or are out of order")
		}
		prev = tv.Span
		for i < len(v.p.Top) && v.p.Span(v.p.Top[i]).End <= tv.Span.Start {
			i++
		}
		if i == len(v.p.Top) {
			continue
		}
		top := v.p.Span(v.p.Top[i])
		if top.Contains(tv.Span) || tv.Span.Before(top) {
			continue
		}
		return v.fail(tv.Span, "trivia straddles the datum at %s", top)
	}
	return nil
}
