package parser_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"xtread/internal/cst"
	"xtread/internal/diag"
	"xtread/internal/parser"
	"xtread/internal/provider/xtlang"
)

func parseOK(t *testing.T, src string, opts parser.Options) *cst.Program {
	t.Helper()
	prog, err := parser.ParseBytes("test.xtm", []byte(src), opts)
	if err != nil {
		t.Fatalf("parse %q: unexpected error: %v", src, err)
	}
	return prog
}

func parseErr(t *testing.T, src string, opts parser.Options) *diag.Error {
	t.Helper()
	prog, err := parser.ParseBytes("test.xtm", []byte(src), opts)
	if err == nil {
		t.Fatalf("parse %q: expected an error, got %s", src, dumpProgram(prog))
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("parse %q: error %T is not *diag.Error", src, err)
	}
	return de
}

func xt() parser.Options { return parser.Options{Provider: xtlang.New()} }

// dumpProgram печатает дерево в компактной форме, удобной для сравнения.
func dumpProgram(p *cst.Program) string {
	if p == nil {
		return "<nil>"
	}
	parts := make([]string, len(p.Top))
	for i, id := range p.Top {
		parts[i] = dump(p.Nodes, id)
	}
	return strings.Join(parts, " ")
}

func dump(n *cst.Nodes, id cst.NodeID) string {
	node := n.Get(id)
	switch node.Kind {
	case cst.NodeBoolean:
		d, _ := n.Boolean(id)
		if d.Value {
			return "#t"
		}
		return "#f"
	case cst.NodeCharacter:
		d, _ := n.Character(id)
		return fmt.Sprintf("char:%q", d.Value)
	case cst.NodeString:
		d, _ := n.String(id)
		return fmt.Sprintf("str:%q", d.Value)
	case cst.NodeNumber:
		d, _ := n.Number(id)
		s := fmt.Sprintf("num:%s/%d:%s", d.Lit.Form, d.Lit.Radix, d.Lit.Body)
		if d.Lit.Suffix != "" {
			s += ":" + d.Lit.Suffix
		}
		return s
	case cst.NodeSymbol:
		name, _ := n.Name(id)
		return name
	case cst.NodeXtlangType:
		name, _ := n.Name(id)
		return "type:" + name
	case cst.NodeGenericIdentifier:
		name, _ := n.Name(id)
		return "gen:" + name
	case cst.NodeTypedIdentifier:
		d, _ := n.TypedIdentifier(id)
		return "typed:" + n.Interner.MustLookup(d.Name) + ":" + n.Interner.MustLookup(d.Type)
	case cst.NodeList:
		d, _ := n.List(id)
		parts := make([]string, 0, len(d.Items)+2)
		for _, it := range d.Items {
			parts = append(parts, dump(n, it))
		}
		if d.Tail.IsValid() {
			parts = append(parts, ".", dump(n, d.Tail))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case cst.NodeVector:
		d, _ := n.Vector(id)
		parts := make([]string, len(d.Items))
		for i, it := range d.Items {
			parts[i] = dump(n, it)
		}
		return "#(" + strings.Join(parts, " ") + ")"
	default:
		d, _ := n.Quote(id)
		return node.Kind.String() + "[" + dump(n, d.Datum) + "]"
	}
}
