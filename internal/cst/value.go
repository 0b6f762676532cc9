package cst

import (
	"math/big"
	"strings"

	"xtread/internal/token"
)

// Int returns the value of an integer literal in its radix.
func (d *NumberData) Int() (*big.Int, bool) {
	if d.Lit.Form != token.NumInteger {
		return nil, false
	}
	return new(big.Int).SetString(d.Lit.Body, d.Lit.Radix)
}

// Rat returns the exact value of any decimal or radix literal.
// A rational with a zero denominator has no value.
func (d *NumberData) Rat() (*big.Rat, bool) {
	switch d.Lit.Form {
	case token.NumInteger:
		i, ok := d.Int()
		if !ok {
			return nil, false
		}
		return new(big.Rat).SetInt(i), true
	case token.NumRational:
		num, den, _ := strings.Cut(d.Lit.Body, "/")
		n, ok := new(big.Int).SetString(num, 10)
		if !ok {
			return nil, false
		}
		m, ok := new(big.Int).SetString(den, 10)
		if !ok || m.Sign() == 0 {
			return nil, false
		}
		return new(big.Rat).SetFrac(n, m), true
	case token.NumFloat:
		return new(big.Rat).SetString(decimalBody(d.Lit.Body))
	}
	return nil, false
}

// Float returns the value rounded to float64 precision.
func (d *NumberData) Float() (*big.Float, bool) {
	if d.Lit.Form == token.NumFloat {
		f, _, err := big.ParseFloat(decimalBody(d.Lit.Body), 10, 53, big.ToNearestEven)
		if err != nil {
			return nil, false
		}
		return f, true
	}
	r, ok := d.Rat()
	if !ok {
		return nil, false
	}
	return new(big.Float).SetPrec(53).SetRat(r), true
}

// decimalBody дописывает ноль вокруг точки: "-.5" → "-0.5", "1." → "1.0".
func decimalBody(body string) string {
	dot := strings.IndexByte(body, '.')
	if dot < 0 {
		return body
	}
	var b strings.Builder
	b.Grow(len(body) + 2)
	b.WriteString(body[:dot])
	if dot == 0 || body[dot-1] == '+' || body[dot-1] == '-' {
		b.WriteByte('0')
	}
	b.WriteByte('.')
	rest := body[dot+1:]
	if rest == "" || rest[0] < '0' || rest[0] > '9' {
		b.WriteByte('0')
	}
	b.WriteString(rest)
	return b.String()
}
