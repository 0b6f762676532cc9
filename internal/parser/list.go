package parser

import (
	"strings"

	"xtread/internal/cst"
	"xtread/internal/diag"
	"xtread/internal/provider"
	"xtread/internal/source"
	"xtread/internal/token"
)

// parseList: '(' data ')' либо '(' data '.' datum ')'.
// Точка разделяет пару, только если это отдельный символ "." и за ним есть trivia.
func (p *Parser) parseList(open token.Token) (cst.NodeID, bool) {
	var items []cst.NodeID
	p.open++
	for {
		tok := p.lx.Next(provider.WantDatum)
		switch {
		case tok.Kind == token.RParen:
			p.open--
			return p.b.Nodes.NewList(cover(open.Span, tok.Span), items, cst.NoNodeID, source.Span{}), true
		case tok.Kind == token.EOF:
			p.unterminated(open, tok)
			return cst.NoNodeID, false
		case tok.IsDot():
			return p.parseDottedTail(open, items, tok)
		}
		id, ok := p.parseDatumFrom(tok)
		if !ok {
			return cst.NoNodeID, false
		}
		items = append(items, id)
	}
}

func (p *Parser) parseDottedTail(open token.Token, items []cst.NodeID, dot token.Token) (cst.NodeID, bool) {
	tok := p.lx.Next(provider.WantDatum)
	switch {
	case tok.Kind == token.Invalid:
		p.lexError(tok)
		return cst.NoNodeID, false
	case tok.Kind == token.EOF:
		// ')' сразу после '.' не исправляет пару, поэтому без fix-it
		p.fail(diag.SynUnterminatedList, cover(open.Span, tok.Span), "unterminated %s: missing ')'", openName(open))
		return cst.NoNodeID, false
	case tok.Kind == token.RParen:
		p.fail(diag.SynMalformedDottedPair, dot.Span, "expected a datum after '.' in a dotted list")
		return cst.NoNodeID, false
	case len(tok.Leading) == 0:
		p.fail(diag.SynMalformedDottedPair, dot.Span, "'.' must be followed by whitespace or a comment")
		return cst.NoNodeID, false
	case tok.IsDot():
		p.fail(diag.SynMalformedDottedPair, tok.Span, "unexpected second '.' in a dotted list")
		return cst.NoNodeID, false
	}
	tail, ok := p.parseDatumFrom(tok)
	if !ok {
		return cst.NoNodeID, false
	}

	closing := p.lx.Next(provider.WantDatum)
	switch closing.Kind {
	case token.RParen:
		p.open--
		return p.b.Nodes.NewList(cover(open.Span, closing.Span), items, tail, dot.Span), true
	case token.EOF:
		p.unterminated(open, closing)
	case token.Invalid:
		p.lexError(closing)
	default:
		p.fail(diag.SynMalformedDottedPair, closing.Span,
			"expected ')' after the tail of a dotted list, found %s", describe(closing))
	}
	return cst.NoNodeID, false
}

// parseVector: '#(' data ')'. Точка внутри вектора считается обычным символом.
func (p *Parser) parseVector(open token.Token) (cst.NodeID, bool) {
	var items []cst.NodeID
	p.open++
	for {
		tok := p.lx.Next(provider.WantDatum)
		switch tok.Kind {
		case token.RParen:
			p.open--
			return p.b.Nodes.NewVector(cover(open.Span, tok.Span), items), true
		case token.EOF:
			p.unterminated(open, tok)
			return cst.NoNodeID, false
		}
		id, ok := p.parseDatumFrom(tok)
		if !ok {
			return cst.NoNodeID, false
		}
		items = append(items, id)
	}
}

// unterminated: EOF до закрывающей скобки; span от открывающей до конца файла.
// Исправление дописывает по ')' на каждую открытую скобку.
func (p *Parser) unterminated(open, eof token.Token) {
	err := diag.Errorf(diag.SynUnterminatedList, cover(open.Span, eof.Span),
		"unterminated %s: missing ')'", openName(open))
	if closers := closingParens(eof, p.open); closers != "" {
		at := source.Span{File: eof.Span.File, Start: eof.Span.Start, End: eof.Span.Start}
		err = err.WithFix("insert ')'", diag.FixEdit{Span: at, NewText: closers})
	}
	p.report(err)
}

// closingParens возвращает n скобок; после ';'-комментария в конце файла
// нужен перевод строки, иначе скобки уйдут в комментарий.
func closingParens(eof token.Token, n int) string {
	if n <= 0 {
		return ""
	}
	closers := strings.Repeat(")", n)
	if k := len(eof.Leading); k > 0 && eof.Leading[k-1].Kind == token.Comment {
		return "\n" + closers
	}
	return closers
}

func openName(open token.Token) string {
	if open.Kind == token.HashParen {
		return "vector"
	}
	return "list"
}
