package token

import (
	"xtread/internal/source"
)

// Token represents a single source token with its location and leading trivia.
type Token struct {
	Kind    Kind        `json:"kind" yaml:"kind"`
	Span    source.Span `json:"span" yaml:"span"`
	Text    string      `json:"text" yaml:"text"`
	Leading []Trivia    `json:"leading,omitempty" yaml:"leading,omitempty"`
}

// IsLiteral reports whether the token is a self-evaluating atom.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Boolean, Character, String, Number:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is a bracket or a quote prefix.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case LParen, RParen, HashParen, Quote, Quasiquote, Unquote, UnquoteSplicing:
		return true
	default:
		return false
	}
}


// IsDot reports whether the token is an isolated '.' symbol.
func (t Token) IsDot() bool { return t.Kind == Symbol && t.Text == "." }
