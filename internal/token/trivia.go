package token

import "xtread/internal/source"

// Trivia is whitespace or a comment. Kind is Whitespace, Comment or BlockComment.
type Trivia struct {
	Kind Kind        `json:"kind" yaml:"kind"`
	Span source.Span `json:"span" yaml:"span"`
	Text string      `json:"text" yaml:"text"`
}

// Token converts the trivia into a standalone token, as used by tokenize dumps.
func (tv Trivia) Token() Token {
	return Token{Kind: tv.Kind, Span: tv.Span, Text: tv.Text}
}
