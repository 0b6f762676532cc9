package token_test

import (
	"encoding/json"
	"testing"

	"xtread/internal/source"
	"xtread/internal/token"
)

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}, Text: text}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.Boolean, token.Character, token.String, token.Number} {
		if !tok(k, "").IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Symbol, token.LParen, token.TypedName, token.Comment} {
		if tok(k, "").IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunct(t *testing.T) {
	for _, k := range []token.Kind{
		token.LParen, token.RParen, token.HashParen,
		token.Quote, token.Quasiquote, token.Unquote, token.UnquoteSplicing,
	} {
		if !tok(k, "").IsPunct() {
			t.Fatalf("%v should be punct", k)
		}
	}
	if tok(token.Symbol, "(").IsPunct() {
		t.Fatal("symbol must not be punct")
	}
}

func TestKindClasses(t *testing.T) {
	if !token.BlockComment.IsTrivia() || token.Symbol.IsTrivia() {
		t.Fatal("IsTrivia misclassifies")
	}
	for _, k := range []token.Kind{token.XtlangType, token.TypedName, token.TypeAnnotation, token.GenericIdentifier} {
		if !k.IsExternal() {
			t.Fatalf("%v should be external", k)
		}
	}
	if token.Symbol.IsExternal() || token.LParen.IsExternal() {
		t.Fatal("IsExternal misclassifies")
	}
	if !token.UnquoteSplicing.IsQuotePrefix() || token.HashParen.IsQuotePrefix() {
		t.Fatal("IsQuotePrefix misclassifies")
	}
	if !tok(token.Symbol, ".").IsDot() || tok(token.Symbol, "..").IsDot() || tok(token.Number, ".").IsDot() {
		t.Fatal("IsDot misclassifies")
	}
}

func TestKindText(t *testing.T) {
	b, err := json.Marshal(token.GenericIdentifier)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"GenericIdentifier"` {
		t.Fatalf("unexpected JSON %s", b)
	}
	var k token.Kind
	if err := json.Unmarshal(b, &k); err != nil || k != token.GenericIdentifier {
		t.Fatalf("round trip failed: %v %v", k, err)
	}
	if err := k.UnmarshalText([]byte("Nope")); err == nil {
		t.Fatal("unknown name must fail")
	}
	if s := token.Kind(200).String(); s != "Kind(200)" {
		t.Fatalf("unexpected fallback %q", s)
	}
}
