package lexer

import (
	"xtread/internal/diag"
	"xtread/internal/provider"
	"xtread/internal/source"
	"xtread/internal/token"
)

// Options настраивает Lexer. Нулевое значение пригодно: провайдер Nop, без репортера, trivia не копится.
type Options struct {
	// Provider claims xtlang tokens before atom classification. nil means provider.Nop.
	Provider provider.Provider
	// Reporter additionally receives the lexical error as a diagnostic. May be nil.
	Reporter diag.Reporter
	// KeepTrivia makes the lexer record every trivia piece for Trivia().
	KeepTrivia bool
}

func (lx *Lexer) provider() provider.Provider {
	if lx.opts.Provider == nil {
		return provider.Nop
	}
	return lx.opts.Provider
}

// fail записывает первую ошибку, репортит её и переводит лексер в состояние EOF.
// fixes прикладываются к ошибке как есть.
func (lx *Lexer) fail(code diag.Code, sp source.Span, msg string, fixes ...diag.Fix) token.Token {
	if lx.err == nil {
		lx.err = &diag.Error{Code: code, Span: sp, Msg: msg, Fixes: fixes}
		lx.err.Report(lx.opts.Reporter)
	}
	lx.cursor.Reset(Mark(lx.cursor.Len()))
	lx.hold = nil
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// insertAtEOF строит исправление, дописывающее text в конец файла.
func (lx *Lexer) insertAtEOF(title, text string) diag.Fix {
	end := lx.cursor.Len()
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: source.Span{File: lx.file.ID, Start: end, End: end}, NewText: text}},
	}
}
