package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"xtread/internal/cst"
	"xtread/internal/token"
)

// WriteSexp prints the node as canonical reader text: single spaces between
// items, no comments, literals re-spelled from their decoded values.
// Reading the output back yields an isomorphic tree.
func WriteSexp(w io.Writer, prog *cst.Program, id cst.NodeID) error {
	bw := bufio.NewWriter(w)
	writeSexp(bw, prog.Nodes, id)
	return bw.Flush()
}

// WriteProgramSexp prints every top-level datum on its own line.
func WriteProgramSexp(w io.Writer, prog *cst.Program) error {
	bw := bufio.NewWriter(w)
	for _, id := range prog.Top {
		writeSexp(bw, prog.Nodes, id)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Sexp returns WriteSexp output as a string.
func Sexp(prog *cst.Program, id cst.NodeID) string {
	var b strings.Builder
	_ = WriteSexp(&b, prog, id)
	return b.String()
}

func writeSexp(w *bufio.Writer, n *cst.Nodes, id cst.NodeID) {
	node := n.Get(id)
	if node == nil {
		w.WriteString("#<nil>")
		return
	}
	switch node.Kind {
	case cst.NodeBoolean:
		d, _ := n.Boolean(id)
		if d.Value {
			w.WriteString("#t")
		} else {
			w.WriteString("#f")
		}
	case cst.NodeCharacter:
		d, _ := n.Character(id)
		w.WriteString(charLiteral(d.Value))
	case cst.NodeString:
		d, _ := n.String(id)
		w.WriteString(stringLiteral(d.Value))
	case cst.NodeNumber:
		d, _ := n.Number(id)
		w.WriteString(numberLiteral(d.Lit))
	case cst.NodeSymbol, cst.NodeXtlangType, cst.NodeGenericIdentifier:
		name, _ := n.Name(id)
		w.WriteString(name)
	case cst.NodeTypedIdentifier:
		d, _ := n.TypedIdentifier(id)
		w.WriteString(n.Interner.MustLookup(d.Name))
		w.WriteByte(':')
		w.WriteString(n.Interner.MustLookup(d.Type))
	case cst.NodeList:
		d, _ := n.List(id)
		w.WriteByte('(')
		writeItems(w, n, d.Items)
		if d.Tail.IsValid() {
			if len(d.Items) > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(". ")
			writeSexp(w, n, d.Tail)
		}
		w.WriteByte(')')
	case cst.NodeVector:
		d, _ := n.Vector(id)
		w.WriteString("#(")
		writeItems(w, n, d.Items)
		w.WriteByte(')')
	default:
		d, _ := n.Quote(id)
		w.WriteString(token.QuotePrefix(node.Kind.PrefixToken()))
		if node.Kind == cst.NodeUnquote && startsWithAt(n, d.Datum) {
			// ", @x" нельзя склеить в ",@x"
			w.WriteByte(' ')
		}
		writeSexp(w, n, d.Datum)
	}
}

func startsWithAt(n *cst.Nodes, id cst.NodeID) bool {
	if name, ok := n.Name(id); ok {
		return strings.HasPrefix(name, "@")
	}
	if d, ok := n.TypedIdentifier(id); ok {
		return strings.HasPrefix(n.Interner.MustLookup(d.Name), "@")
	}
	return false
}

func writeItems(w *bufio.Writer, n *cst.Nodes, items []cst.NodeID) {
	for i, it := range items {
		if i > 0 {
			w.WriteByte(' ')
		}
		writeSexp(w, n, it)
	}
}

func charLiteral(r rune) string {
	if name, ok := token.CharName(r); ok {
		return `#\` + name
	}
	if unicode.IsSpace(r) || !unicode.IsPrint(r) {
		return `#\x` + strconv.FormatInt(int64(r), 16)
	}
	return `#\` + string(r)
}

// stringLiteral экранирует только то, что читатель понимает: \" \\ \n \t \r \xHH.
func stringLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == utf8.RuneError && size <= 1, r < 0x20, r == 0x7f:
			fmt.Fprintf(&b, `\x%02X`, s[i])
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}

func numberLiteral(lit token.NumberLit) string {
	var b strings.Builder
	if lit.Prefixed {
		b.WriteByte('#')
		switch lit.Radix {
		case 16:
			b.WriteByte('x')
		case 2:
			b.WriteByte('b')
		case 8:
			b.WriteByte('o')
		default:
			b.WriteByte('d')
		}
	}
	b.WriteString(lit.Body)
	if lit.Suffix != "" {
		b.WriteByte(':')
		b.WriteString(lit.Suffix)
	}
	return b.String()
}
