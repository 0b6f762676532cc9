package lexer

import (
	"fmt"

	"xtread/internal/diag"
	"xtread/internal/provider"
	"xtread/internal/token"
)

// scanAtom сначала предлагает позицию провайдеру, затем читает сырой атом
// (максимальный отрезок без разделителей) и классифицирует его как Number или Symbol.
func (lx *Lexer) scanAtom(want provider.Want) token.Token {
	start := lx.cursor.Mark()

	if want != provider.WantNone {
		if c, ok := lx.provider().Claim(lx.file.Content, lx.cursor.Off, want); ok {
			if err := provider.Validate(lx.file.Content, lx.cursor.Off, want, c); err != nil {
				sp := lx.cursor.SpanFrom(start)
				sp.End = min(max(c.End, sp.Start), lx.cursor.Len())
				return lx.fail(diag.IntProviderContract, sp, fmt.Sprintf("token provider: %v", err))
			}
			lx.cursor.Off = c.End
			return lx.emit(c.Kind, start)
		}
	}

	for !lx.cursor.EOF() && !isDelimiter(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Symbol, start)
	if _, ok := ParseNumber(tok.Text); ok {
		tok.Kind = token.Number
	}
	return tok
}
