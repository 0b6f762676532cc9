package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Whitespace is a maximal run of space, tab, CR, LF, FF and VT.
	Whitespace
	// Comment is a ';' or '#!' line comment, without the line feed.
	Comment
	// BlockComment is a nestable '#| ... |#' comment.
	BlockComment

	Boolean   // #t #f
	Character // #\a #\space #\x41
	String    // "..."
	Number    // 42 -1/2 3.5e2:f32 #xFF
	Symbol

	XtlangType        // [i64,i32]* <i32,double>
	TypedName         // name part of name:i64
	TypeAnnotation    // :i64 right after a TypedName
	GenericIdentifier // list{!a}*

	LParen          // (
	RParen          // )
	HashParen       // #(
	Quote           // '
	Quasiquote      // `
	Unquote         // ,
	UnquoteSplicing // ,@
)

var kindNames = [...]string{
	Invalid:           "Invalid",
	EOF:               "EOF",
	Whitespace:        "Whitespace",
	Comment:           "Comment",
	BlockComment:      "BlockComment",
	Boolean:           "Boolean",
	Character:         "Character",
	String:            "String",
	Number:            "Number",
	Symbol:            "Symbol",
	XtlangType:        "XtlangType",
	TypedName:         "TypedName",
	TypeAnnotation:    "TypeAnnotation",
	GenericIdentifier: "GenericIdentifier",
	LParen:            "LParen",
	RParen:            "RParen",
	HashParen:         "HashParen",
	Quote:             "Quote",
	Quasiquote:        "Quasiquote",
	Unquote:           "Unquote",
	UnquoteSplicing:   "UnquoteSplicing",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText renders the kind by name in JSON and YAML dumps.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i) // #nosec G115 -- len(kindNames) < 256
			return nil
		}
	}
	return fmt.Errorf("unknown token kind %q", b)
}

// IsTrivia reports whether tokens of this kind are discarded from the tree.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment || k == BlockComment
}

// IsExternal reports whether the kind can only come from a token provider.
func (k Kind) IsExternal() bool {
	return k >= XtlangType && k <= GenericIdentifier
}

// IsQuotePrefix reports whether the kind is one of ' ` , ,@.
func (k Kind) IsQuotePrefix() bool {
	return k >= Quote && k <= UnquoteSplicing
}
