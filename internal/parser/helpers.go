package parser

import (
	"fmt"

	"xtread/internal/diag"
	"xtread/internal/source"
	"xtread/internal/token"
)

// fail записывает первую синтаксическую ошибку и отдаёт её в Reporter.
func (p *Parser) fail(code diag.Code, sp source.Span, format string, args ...any) *diag.Error {
	return p.report(diag.Errorf(code, sp, format, args...))
}

func (p *Parser) report(err *diag.Error) *diag.Error {
	if p.err == nil {
		p.err = err
		err.Report(p.opts.Reporter)
	}
	return p.err
}

// lexError забирает ошибку лексера для Invalid-токена.
func (p *Parser) lexError(tok token.Token) *diag.Error {
	if err := p.lx.Err(); err != nil {
		// лексер уже отдал её в Reporter
		if p.err == nil {
			p.err = err
		}
		return p.err
	}
	return p.fail(diag.IntInvariantViolation, tok.Span, "lexer produced an invalid token without an error")
}

func describe(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return "end of file"
	case tok.Kind == token.Invalid:
		return "invalid token"
	case tok.IsPunct():
		return fmt.Sprintf("'%s'", tok.Text)
	case tok.IsLiteral():
		return fmt.Sprintf("%s literal %s", tok.Kind, tok.Text)
	}
	return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
}

// cover: от начала from до конца to.
func cover(from, to source.Span) source.Span {
	return source.Span{File: from.File, Start: from.Start, End: to.End}
}
