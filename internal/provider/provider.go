// Package provider defines the hook through which context-sensitive xtlang
// tokens reach the lexer.
//
// Before the lexer classifies a raw atom it offers the position to a Provider
// together with the set of token kinds the parser can accept there. The
// provider either declines or claims [off, End) as one of those kinds.
// Providers must be deterministic and must not keep state between calls.
package provider

import (
	"xtread/internal/token"
)

// Want is a bit set of the external token kinds acceptable at a position.
type Want uint8

const (
	WantXtlangType Want = 1 << iota
	WantTypedName
	WantTypeAnnotation
	WantGenericIdentifier

	// WantNone disables the provider for one lookup.
	WantNone Want = 0
	// WantDatum is the set accepted wherever a datum may start.
	WantDatum = WantXtlangType | WantTypedName | WantGenericIdentifier
)

// WantOf maps an external token kind to its bit; other kinds map to WantNone.
func WantOf(k token.Kind) Want {
	switch k {
	case token.XtlangType:
		return WantXtlangType
	case token.TypedName:
		return WantTypedName
	case token.TypeAnnotation:
		return WantTypeAnnotation
	case token.GenericIdentifier:
		return WantGenericIdentifier
	default:
		return WantNone
	}
}

// Has reports whether k is in the set.
func (w Want) Has(k token.Kind) bool {
	bit := WantOf(k)
	return bit != WantNone && w&bit != 0
}

// Claim is a provider's answer: the token kind and the exclusive end offset.
type Claim struct {
	Kind token.Kind
	End  uint32
}

// Provider decides whether the bytes at off form an external token.
type Provider interface {
	Claim(src []byte, off uint32, want Want) (Claim, bool)
}

// Func adapts a plain function to Provider.
type Func func(src []byte, off uint32, want Want) (Claim, bool)

func (f Func) Claim(src []byte, off uint32, want Want) (Claim, bool) {
	return f(src, off, want)
}

// Nop declines every position. The reader then behaves as a plain Scheme reader.
var Nop Provider = Func(func([]byte, uint32, Want) (Claim, bool) { return Claim{}, false })

// IsHardDelimiter reports bytes that no claimed token may contain: every
// reader delimiter except ','. A ',' may only appear inside the bracket or
// brace groups of XtlangType, TypeAnnotation and GenericIdentifier claims.
func IsHardDelimiter(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v', '(', ')', ';', '"', '\'', '`', '#':
		return true
	}
	return false
}
