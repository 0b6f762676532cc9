package lexer

import (
	"fmt"

	"xtread/internal/diag"
	"xtread/internal/token"
)

// scanString читает "..." целиком. Строки могут занимать несколько строк файла.
// Допустимые экранирования: \" \\ \n \t \r \xHH \XHH.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // "
	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			return lx.fail(diag.LexUnterminatedString, sp, "unterminated string literal",
				lx.insertAtEOF("insert closing '\"'", `"`))
		}
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return lx.emit(token.String, start)
		case '\\':
			esc := lx.cursor.Mark()
			n := escapeLen(lx.file.Content[lx.cursor.Off:])
			if n == 0 {
				lx.cursor.Advance(1)
				if !lx.cursor.EOF() {
					lx.cursor.Advance(1)
				}
				sp := lx.cursor.SpanFrom(esc)
				return lx.fail(diag.LexInvalidEscapeSequence, sp,
					fmt.Sprintf("invalid escape sequence %q in string literal", lx.text(sp)))
			}
			lx.cursor.Advance(uint32(n)) // #nosec G115 -- n <= 4
		default:
			lx.cursor.Bump()
		}
	}
}

// escapeLen возвращает длину корректного экранирования в начале b или 0.
func escapeLen(b []byte) int {
	if len(b) < 2 || b[0] != '\\' {
		return 0
	}
	switch b[1] {
	case '"', '\\', 'n', 't', 'r':
		return 2
	case 'x', 'X':
		if len(b) >= 4 && isHex(b[2]) && isHex(b[3]) {
			return 4
		}
	}
	return 0
}
