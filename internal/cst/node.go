package cst

import (
	"fmt"

	"xtread/internal/source"
	"xtread/internal/token"
)

// NodeKind tags the variant stored in a Node.
type NodeKind uint8

const (
	NodeBoolean NodeKind = iota + 1
	NodeCharacter
	NodeString
	NodeNumber
	NodeSymbol
	NodeXtlangType
	NodeTypedIdentifier
	NodeGenericIdentifier
	NodeList
	NodeVector
	NodeQuote
	NodeQuasiquote
	NodeUnquote
	NodeUnquoteSplicing
)

var nodeKindNames = [...]string{
	NodeBoolean:           "Boolean",
	NodeCharacter:         "Character",
	NodeString:            "String",
	NodeNumber:            "Number",
	NodeSymbol:            "Symbol",
	NodeXtlangType:        "XtlangType",
	NodeTypedIdentifier:   "TypedIdentifier",
	NodeGenericIdentifier: "GenericIdentifier",
	NodeList:              "List",
	NodeVector:            "Vector",
	NodeQuote:             "Quote",
	NodeQuasiquote:        "Quasiquote",
	NodeUnquote:           "Unquote",
	NodeUnquoteSplicing:   "UnquoteSplicing",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

func (k NodeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// IsQuote reports whether the node wraps exactly one datum.
func (k NodeKind) IsQuote() bool { return k >= NodeQuote && k <= NodeUnquoteSplicing }

// IsCompound reports whether the node has children.
func (k NodeKind) IsCompound() bool {
	return k == NodeList || k == NodeVector || k.IsQuote()
}

// QuoteKind maps a quote prefix token to its node kind.
func QuoteKind(k token.Kind) (NodeKind, bool) {
	switch k {
	case token.Quote:
		return NodeQuote, true
	case token.Quasiquote:
		return NodeQuasiquote, true
	case token.Unquote:
		return NodeUnquote, true
	case token.UnquoteSplicing:
		return NodeUnquoteSplicing, true
	}
	return 0, false
}

// PrefixToken is the inverse of QuoteKind.
func (k NodeKind) PrefixToken() token.Kind {
	switch k {
	case NodeQuote:
		return token.Quote
	case NodeQuasiquote:
		return token.Quasiquote
	case NodeUnquote:
		return token.Unquote
	case NodeUnquoteSplicing:
		return token.UnquoteSplicing
	}
	return token.Invalid
}

// Node is one datum. Payload indexes the per-kind arena in Nodes.
type Node struct {
	Kind    NodeKind
	Span    source.Span
	Payload PayloadID
}

type BoolData struct {
	Value bool
}

type CharData struct {
	Value rune
}

// StringData holds the decoded string; \xHH escapes may produce invalid UTF-8.
type StringData struct {
	Value string
}

type NumberData struct {
	Lit token.NumberLit
}

// SymbolData is shared by Symbol, XtlangType and GenericIdentifier nodes.
type SymbolData struct {
	Name source.StringID
}

// TypedIdentData: name part and ':'-prefixed annotation part, adjacent.
type TypedIdentData struct {
	Name     source.StringID
	Type     source.StringID // без ':'
	NameSpan source.Span
	TypeSpan source.Span // включая ':'
}

// ListData is used by lists and vectors. Tail and Dot are set only for dotted lists.
type ListData struct {
	Items []NodeID
	Tail  NodeID
	Dot   source.Span
}

type QuoteData struct {
	Datum NodeID
}
