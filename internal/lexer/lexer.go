package lexer

import (
	"xtread/internal/diag"
	"xtread/internal/provider"
	"xtread/internal/source"
	"xtread/internal/token"
)

// Lexer turns a normalised source.File into tokens on demand. The parser
// drives it with Next, passing the external tokens it can accept at each
// position. The first lexical error is kept in Err and ends the stream.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	hold   []token.Trivia // накопленные leading trivia
	trivia []token.Trivia // все trivia при KeepTrivia
	err    *diag.Error
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// want: набор внешних токенов, которые парсер готов принять в этой позиции.
// После EOF или ошибки всегда возвращает EOF.
func (lx *Lexer) Next(want provider.Want) token.Token {
	if lx.err != nil {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	if tok, ok := lx.collectLeadingTrivia(); !ok {
		return tok
	}

	// EOF забирает хвостовые trivia, чтобы их не потерять
	if lx.cursor.EOF() {
		tok := token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.hold}
		lx.hold = nil
		return tok
	}

	var tok token.Token
	switch ch := lx.cursor.Peek(); ch {
	case '(':
		tok = lx.punct(token.LParen, 1)
	case ')':
		tok = lx.punct(token.RParen, 1)
	case '\'':
		tok = lx.punct(token.Quote, 1)
	case '`':
		tok = lx.punct(token.Quasiquote, 1)
	case ',':
		if b, ok := lx.cursor.PeekAt(1); ok && b == '@' {
			tok = lx.punct(token.UnquoteSplicing, 2)
		} else {
			tok = lx.punct(token.Unquote, 1)
		}
	case '"':
		tok = lx.scanString()
	case '#':
		tok = lx.scanSharp()
	default:
		tok = lx.scanAtom(want)
	}

	if tok.Kind == token.Invalid {
		return tok
	}
	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Err возвращает первую лексическую ошибку, если она была.
func (lx *Lexer) Err() *diag.Error {
	return lx.err
}

// Trivia возвращает все trivia, прочитанные с KeepTrivia, в порядке исходника.
func (lx *Lexer) Trivia() []token.Trivia {
	return lx.trivia
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) punct(k token.Kind, n uint32) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(n)
	return lx.emit(k, start)
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Slice(sp))
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
