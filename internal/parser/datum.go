package parser

import (
	"xtread/internal/cst"
	"xtread/internal/diag"
	"xtread/internal/lexer"
	"xtread/internal/provider"
	"xtread/internal/token"
)

// parseDatumFrom строит узел, начиная с уже прочитанного токена.
func (p *Parser) parseDatumFrom(tok token.Token) (cst.NodeID, bool) {
	nodes := p.b.Nodes
	switch tok.Kind {
	case token.Invalid:
		p.lexError(tok)
		return cst.NoNodeID, false
	case token.LParen:
		return p.parseList(tok)
	case token.HashParen:
		return p.parseVector(tok)
	case token.Quote, token.Quasiquote, token.Unquote, token.UnquoteSplicing:
		return p.parseQuote(tok)
	case token.TypedName:
		return p.parseTypedIdentifier(tok)
	case token.Boolean:
		return nodes.NewBoolean(tok.Span, tok.Text[1] == 't' || tok.Text[1] == 'T'), true
	case token.Character:
		r, ok := lexer.DecodeChar(tok.Text)
		if !ok {
			p.fail(diag.IntInvariantViolation, tok.Span, "character literal %q does not decode", tok.Text)
			return cst.NoNodeID, false
		}
		return nodes.NewCharacter(tok.Span, r), true
	case token.String:
		s, ok := lexer.DecodeString(tok.Text)
		if !ok {
			p.fail(diag.IntInvariantViolation, tok.Span, "string literal %q does not decode", tok.Text)
			return cst.NoNodeID, false
		}
		return nodes.NewString(tok.Span, s), true
	case token.Number:
		lit, ok := lexer.ParseNumber(tok.Text)
		if !ok {
			p.fail(diag.IntInvariantViolation, tok.Span, "number literal %q does not classify", tok.Text)
			return cst.NoNodeID, false
		}
		return nodes.NewNumber(tok.Span, lit), true
	case token.Symbol:
		return nodes.NewSymbol(tok.Span, tok.Text), true
	case token.XtlangType:
		return nodes.NewXtlangType(tok.Span, tok.Text), true
	case token.GenericIdentifier:
		return nodes.NewGenericIdentifier(tok.Span, tok.Text), true
	case token.TypeAnnotation:
		// аннотация допустима только сразу после TypedName
		p.fail(diag.IntProviderContract, tok.Span, "type annotation %q claimed without a typed name", tok.Text)
		return cst.NoNodeID, false
	}
	p.fail(diag.SynUnexpectedToken, tok.Span, "unexpected %s", describe(tok))
	return cst.NoNodeID, false
}

// parseTypedIdentifier: TypedName и сразу за ним, без trivia, TypeAnnotation.
func (p *Parser) parseTypedIdentifier(name token.Token) (cst.NodeID, bool) {
	annot := p.lx.Next(provider.WantTypeAnnotation)
	if annot.Kind == token.Invalid {
		p.lexError(annot)
		return cst.NoNodeID, false
	}
	if annot.Kind != token.TypeAnnotation || len(annot.Leading) > 0 || annot.Span.Start != name.Span.End {
		p.fail(diag.IntProviderContract, name.Span,
			"typed name %q is not followed by a type annotation (got %s)", name.Text, describe(annot))
		return cst.NoNodeID, false
	}
	return p.b.Nodes.NewTypedIdentifier(name.Span, name.Text, annot.Span, annot.Text), true
}

// parseQuote: префикс, необязательные trivia и ровно один datum.
func (p *Parser) parseQuote(prefix token.Token) (cst.NodeID, bool) {
	kind, _ := cst.QuoteKind(prefix.Kind)
	tok := p.lx.Next(provider.WantDatum)
	switch tok.Kind {
	case token.EOF, token.RParen:
		p.fail(diag.SynUnexpectedToken, tok.Span, "expected a datum after %s, found %s", prefix.Text, describe(tok))
		return cst.NoNodeID, false
	}
	datum, ok := p.parseDatumFrom(tok)
	if !ok {
		return cst.NoNodeID, false
	}
	return p.b.Nodes.NewQuote(kind, cover(prefix.Span, p.b.Nodes.Get(datum).Span), datum), true
}
