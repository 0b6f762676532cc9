package lexer

import (
	"strings"

	"xtread/internal/diag"
	"xtread/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - пробельные символы [ \t\r\n\f\v] коалесцируются в один Whitespace
//   - ';' ... и '#!' ... до \n (не включая) -> Comment
//   - '#|' ... '|#' с вложенностью -> BlockComment; незакрытый даёт ошибку
//
// Возвращает false и Invalid-токен, если комментарий не закрыт.
func (lx *Lexer) collectLeadingTrivia() (token.Token, bool) {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isSpace(b):
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.Whitespace, start)

		case b == ';':
			lx.skipLine()
			lx.pushTrivia(token.Comment, start)

		case b == '#':
			next, ok := lx.cursor.PeekAt(1)
			if !ok {
				return token.Token{}, true
			}
			switch next {
			case '!':
				lx.skipLine()
				lx.pushTrivia(token.Comment, start)
			case '|':
				if depth := lx.skipBlockComment(); depth > 0 {
					sp := lx.cursor.SpanFrom(start)
					return lx.fail(diag.LexUnterminatedBlockComment, sp, "unterminated block comment",
						lx.insertAtEOF("insert '|#'", closingComment(lx.text(sp), depth))), false
				}
				lx.pushTrivia(token.BlockComment, start)
			default:
				return token.Token{}, true
			}

		default:
			return token.Token{}, true
		}
	}
	return token.Token{}, true
}

func (lx *Lexer) pushTrivia(k token.Kind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	tv := token.Trivia{Kind: k, Span: sp, Text: lx.text(sp)}
	lx.hold = append(lx.hold, tv)
	if lx.opts.KeepTrivia {
		lx.trivia = append(lx.trivia, tv)
	}
}

func (lx *Lexer) skipLine() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

// skipBlockComment съедает '#| ... |#'. Глубина вложенности хранится в локальном счётчике.
// Возвращает число незакрытых уровней: 0 значит комментарий закрыт.
func (lx *Lexer) skipBlockComment() int {
	lx.cursor.Advance(2)
	depth := 1
	for depth > 0 {
		b0, b1, ok := lx.cursor.Peek2()
		if !ok {
			lx.cursor.Advance(lx.cursor.Len())
			return depth
		}
		switch {
		case b0 == '#' && b1 == '|':
			lx.cursor.Advance(2)
			depth++
		case b0 == '|' && b1 == '#':
			lx.cursor.Advance(2)
			depth--
		default:
			lx.cursor.Bump()
		}
	}
	return 0
}

// closingComment возвращает depth закрывающих '|#'. После висящего '#'
// ставится пробел, чтобы не получилось новое '#|'.
func closingComment(body string, depth int) string {
	closers := strings.Repeat("|#", depth)
	if strings.HasSuffix(body, "#") {
		return " " + closers
	}
	return closers
}
