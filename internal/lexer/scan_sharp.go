package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"xtread/internal/diag"
	"xtread/internal/token"
)

// scanSharp разбирает всё, что начинается с '#', кроме комментариев:
// #( вектор, #\ символ, #t/#f булево, #x/#b/#o/#d число.
func (lx *Lexer) scanSharp() token.Token {
	start := lx.cursor.Mark()
	next, _ := lx.cursor.PeekAt(1)

	switch {
	case next == '(':
		return lx.punct(token.HashParen, 2)

	case next == '\\':
		return lx.scanChar()

	case next == 't' || next == 'T' || next == 'f' || next == 'F':
		// ровно два байта: #true читается как #t и символ rue
		lx.cursor.Advance(2)
		return lx.emit(token.Boolean, start)

	case radixOf(next) != 0:
		radix := radixOf(next)
		lx.cursor.Advance(2)
		digits := lx.cursor.Mark()
		for isRadixDigit(lx.cursor.Peek(), radix) {
			lx.cursor.Bump()
		}
		if lx.cursor.Mark() == digits {
			return lx.fail(diag.SynUnexpectedToken, lx.cursor.SpanFrom(start),
				fmt.Sprintf("expected base-%d digits after %q", radix, lx.text(lx.cursor.SpanFrom(start))))
		}
		return lx.emit(token.Number, start)
	}

	// '|#' без открывающего '#|'
	if prev, ok := lx.cursor.Prev(); ok && prev == '|' {
		sp := lx.cursor.SpanFrom(start)
		sp.Start--
		sp.End = sp.Start + 2
		return lx.fail(diag.SynUnexpectedToken, sp, "stray '|#' outside of a block comment")
	}
	if next == 0 && lx.cursor.Off+1 >= lx.cursor.Len() {
		lx.cursor.Bump()
		return lx.fail(diag.SynUnexpectedToken, lx.cursor.SpanFrom(start), "unexpected '#' at end of input")
	}
	_, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off+1:])
	lx.cursor.Advance(1 + uint32(size)) // #nosec G115 -- size <= utf8.UTFMax
	return lx.fail(diag.SynUnexpectedToken, lx.cursor.SpanFrom(start),
		fmt.Sprintf("unexpected %q", lx.text(lx.cursor.SpanFrom(start))))
}

// scanChar: #\ + самое длинное из space|newline|return|tab, x+hex+, или одна непробельная руна.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(2)
	body := lx.cursor.Off

	r, size := utf8.DecodeRune(lx.file.Content[body:])
	if size == 0 || isCharSpace(r) {
		if size > 0 {
			lx.cursor.Advance(1)
		}
		return lx.fail(diag.LexInvalidCharacterLiteral, lx.cursor.SpanFrom(start),
			"'#\\' must be followed by a character, a character name or x and hex digits")
	}

	best := uint32(size) // #nosec G115 -- size <= utf8.UTFMax
	for _, name := range token.CharNames() {
		if lx.cursor.EatString(name) {
			n, err := safecast.Conv[uint32](len(name))
			if err == nil && n > best {
				best = n
			}
			lx.cursor.Off = body
		}
	}
	if r == 'x' {
		n := uint32(1)
		for {
			b, ok := lx.cursor.PeekAt(n)
			if !ok || !isHex(b) {
				break
			}
			n++
		}
		if n > 1 && n > best {
			best = n
		}
	}
	lx.cursor.Advance(best)
	tok := lx.emit(token.Character, start)
	if _, ok := DecodeChar(tok.Text); !ok {
		return lx.fail(diag.LexInvalidCharacterLiteral, tok.Span,
			fmt.Sprintf("%s is not a valid Unicode scalar value", tok.Text))
	}
	return tok
}
