package cst

import (
	"xtread/internal/source"
	"xtread/internal/token"
)

// Nodes manages allocation of data nodes and their per-kind payloads.
type Nodes struct {
	Arena    *Arena[Node]
	Bools    *Arena[BoolData]
	Chars    *Arena[CharData]
	Strings  *Arena[StringData]
	Numbers  *Arena[NumberData]
	Symbols  *Arena[SymbolData]
	Typed    *Arena[TypedIdentData]
	Lists    *Arena[ListData]
	Vectors  *Arena[ListData]
	Quotes   *Arena[QuoteData]
	Interner *source.Interner
}

// NewNodes creates the node arenas; capHint of 0 means 1<<8.
// A nil interner gets a fresh one.
func NewNodes(capHint uint, strs *source.Interner) *Nodes {
	if capHint == 0 {
		capHint = 1 << 8
	}
	if strs == nil {
		strs = source.NewInterner()
	}
	return &Nodes{
		Arena:    NewArena[Node](capHint),
		Bools:    NewArena[BoolData](capHint >> 3),
		Chars:    NewArena[CharData](capHint >> 3),
		Strings:  NewArena[StringData](capHint >> 2),
		Numbers:  NewArena[NumberData](capHint >> 2),
		Symbols:  NewArena[SymbolData](capHint),
		Typed:    NewArena[TypedIdentData](capHint >> 3),
		Lists:    NewArena[ListData](capHint >> 1),
		Vectors:  NewArena[ListData](capHint >> 4),
		Quotes:   NewArena[QuoteData](capHint >> 3),
		Interner: strs,
	}
}

func (n *Nodes) new(kind NodeKind, span source.Span, payload PayloadID) NodeID {
	return NodeID(n.Arena.Allocate(Node{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the node or nil for NoNodeID.
func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}

func (n *Nodes) Len() uint32 { return n.Arena.Len() }

func (n *Nodes) NewBoolean(span source.Span, v bool) NodeID {
	payload := PayloadID(n.Bools.Allocate(BoolData{Value: v}))
	return n.new(NodeBoolean, span, payload)
}

func (n *Nodes) NewCharacter(span source.Span, r rune) NodeID {
	payload := PayloadID(n.Chars.Allocate(CharData{Value: r}))
	return n.new(NodeCharacter, span, payload)
}

func (n *Nodes) NewString(span source.Span, decoded string) NodeID {
	payload := PayloadID(n.Strings.Allocate(StringData{Value: decoded}))
	return n.new(NodeString, span, payload)
}

func (n *Nodes) NewNumber(span source.Span, lit token.NumberLit) NodeID {
	payload := PayloadID(n.Numbers.Allocate(NumberData{Lit: lit}))
	return n.new(NodeNumber, span, payload)
}

func (n *Nodes) NewSymbol(span source.Span, name string) NodeID {
	return n.newNamed(NodeSymbol, span, name)
}

func (n *Nodes) NewXtlangType(span source.Span, text string) NodeID {
	return n.newNamed(NodeXtlangType, span, text)
}

func (n *Nodes) NewGenericIdentifier(span source.Span, text string) NodeID {
	return n.newNamed(NodeGenericIdentifier, span, text)
}

func (n *Nodes) newNamed(kind NodeKind, span source.Span, name string) NodeID {
	payload := PayloadID(n.Symbols.Allocate(SymbolData{Name: n.Interner.Intern(name)}))
	return n.new(kind, span, payload)
}

// NewTypedIdentifier joins a TypedName token and the TypeAnnotation right after it.
// annot is the annotation text including the leading ':'.
func (n *Nodes) NewTypedIdentifier(nameSpan source.Span, name string, annotSpan source.Span, annot string) NodeID {
	typ := annot
	if len(typ) > 0 && typ[0] == ':' {
		typ = typ[1:]
	}
	payload := PayloadID(n.Typed.Allocate(TypedIdentData{
		Name:     n.Interner.Intern(name),
		Type:     n.Interner.Intern(typ),
		NameSpan: nameSpan,
		TypeSpan: annotSpan,
	}))
	return n.new(NodeTypedIdentifier, nameSpan.Cover(annotSpan), payload)
}

// NewList allocates a list; tail is NoNodeID for a proper list and dot is then ignored.
func (n *Nodes) NewList(span source.Span, items []NodeID, tail NodeID, dot source.Span) NodeID {
	data := ListData{Items: items, Tail: tail}
	if tail.IsValid() {
		data.Dot = dot
	}
	payload := PayloadID(n.Lists.Allocate(data))
	return n.new(NodeList, span, payload)
}

func (n *Nodes) NewVector(span source.Span, items []NodeID) NodeID {
	payload := PayloadID(n.Vectors.Allocate(ListData{Items: items}))
	return n.new(NodeVector, span, payload)
}

// NewQuote allocates one of the four quote-family nodes.
func (n *Nodes) NewQuote(kind NodeKind, span source.Span, datum NodeID) NodeID {
	if !kind.IsQuote() {
		panic("cst: NewQuote with non-quote kind " + kind.String())
	}
	payload := PayloadID(n.Quotes.Allocate(QuoteData{Datum: datum}))
	return n.new(kind, span, payload)
}

func (n *Nodes) Boolean(id NodeID) (*BoolData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeBoolean {
		return nil, false
	}
	return n.Bools.Get(uint32(node.Payload)), true
}

func (n *Nodes) Character(id NodeID) (*CharData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeCharacter {
		return nil, false
	}
	return n.Chars.Get(uint32(node.Payload)), true
}

func (n *Nodes) String(id NodeID) (*StringData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeString {
		return nil, false
	}
	return n.Strings.Get(uint32(node.Payload)), true
}

func (n *Nodes) Number(id NodeID) (*NumberData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeNumber {
		return nil, false
	}
	return n.Numbers.Get(uint32(node.Payload)), true
}

// Symbol serves Symbol, XtlangType and GenericIdentifier nodes.
func (n *Nodes) Symbol(id NodeID) (*SymbolData, bool) {
	node := n.Get(id)
	if node == nil {
		return nil, false
	}
	switch node.Kind {
	case NodeSymbol, NodeXtlangType, NodeGenericIdentifier:
		return n.Symbols.Get(uint32(node.Payload)), true
	}
	return nil, false
}

func (n *Nodes) TypedIdentifier(id NodeID) (*TypedIdentData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeTypedIdentifier {
		return nil, false
	}
	return n.Typed.Get(uint32(node.Payload)), true
}

func (n *Nodes) List(id NodeID) (*ListData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeList {
		return nil, false
	}
	return n.Lists.Get(uint32(node.Payload)), true
}

func (n *Nodes) Vector(id NodeID) (*ListData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeVector {
		return nil, false
	}
	return n.Vectors.Get(uint32(node.Payload)), true
}

func (n *Nodes) Quote(id NodeID) (*QuoteData, bool) {
	node := n.Get(id)
	if node == nil || !node.Kind.IsQuote() {
		return nil, false
	}
	return n.Quotes.Get(uint32(node.Payload)), true
}

// Name returns the interned text of a symbol-like node.
func (n *Nodes) Name(id NodeID) (string, bool) {
	data, ok := n.Symbol(id)
	if !ok {
		return "", false
	}
	return n.Interner.Lookup(data.Name)
}

// Children returns direct children in source order; the dotted tail comes last.
func (n *Nodes) Children(id NodeID) []NodeID {
	node := n.Get(id)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case NodeList:
		data := n.Lists.Get(uint32(node.Payload))
		if !data.Tail.IsValid() {
			return data.Items
		}
		out := make([]NodeID, 0, len(data.Items)+1)
		out = append(out, data.Items...)
		return append(out, data.Tail)
	case NodeVector:
		return n.Vectors.Get(uint32(node.Payload)).Items
	default:
		if node.Kind.IsQuote() {
			return []NodeID{n.Quotes.Get(uint32(node.Payload)).Datum}
		}
	}
	return nil
}
