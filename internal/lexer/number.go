package lexer

import (
	"xtread/internal/token"
)

// ParseNumber classifies text as a numeric literal. The whole text must match
// one alternative, tried in order: radix-prefixed integer, rational, float,
// integer. Non-prefixed forms may carry a typed suffix ':' [A-Za-z][A-Za-z0-9]*.
// ok is false when text is a symbol.
func ParseNumber(text string) (lit token.NumberLit, ok bool) {
	if len(text) >= 3 && text[0] == '#' {
		return parseRadix(text)
	}

	s := numScanner{s: text}
	s.sign()
	intDigits := s.digits()
	bodyEnd := 0

	switch {
	case s.peek() == '/' && intDigits > 0:
		s.i++
		if s.digits() == 0 {
			return lit, false
		}
		lit.Form = token.NumRational

	default:
		fracDigits := 0
		isFloat := false
		if s.peek() == '.' {
			s.i++
			fracDigits = s.digits()
			if intDigits == 0 && fracDigits == 0 {
				return lit, false
			}
			isFloat = true
		}
		if c := s.peek(); (c == 'e' || c == 'E') && intDigits+fracDigits > 0 {
			s.i++
			s.sign()
			if s.digits() == 0 {
				return lit, false
			}
			isFloat = true
		}
		if intDigits == 0 && !isFloat {
			return lit, false
		}
		lit.Form = token.NumInteger
		if isFloat {
			lit.Form = token.NumFloat
		}
	}
	bodyEnd = s.i

	if s.peek() == ':' {
		s.i++
		if !isLetter(s.peek()) {
			return lit, false
		}
		for s.i < len(s.s) && (isLetter(s.s[s.i]) || isDec(s.s[s.i])) {
			s.i++
		}
		lit.Suffix = text[bodyEnd+1 : s.i]
	}
	if s.i != len(text) {
		return token.NumberLit{}, false
	}
	lit.Radix = 10
	lit.Body = text[:bodyEnd]
	return lit, true
}

// parseRadix: '#' + радикс + цифры этого основания, без знака и суффикса.
func parseRadix(text string) (token.NumberLit, bool) {
	radix := radixOf(text[1])
	if radix == 0 {
		return token.NumberLit{}, false
	}
	for i := 2; i < len(text); i++ {
		if !isRadixDigit(text[i], radix) {
			return token.NumberLit{}, false
		}
	}
	return token.NumberLit{Form: token.NumInteger, Radix: radix, Prefixed: true, Body: text[2:]}, true
}

type numScanner struct {
	s string
	i int
}

func (n *numScanner) peek() byte {
	if n.i >= len(n.s) {
		return 0
	}
	return n.s[n.i]
}

func (n *numScanner) sign() {
	if c := n.peek(); c == '+' || c == '-' {
		n.i++
	}
}

func (n *numScanner) digits() int {
	start := n.i
	for n.i < len(n.s) && isDec(n.s[n.i]) {
		n.i++
	}
	return n.i - start
}
