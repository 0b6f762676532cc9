// Package xtlang is the default token provider for Extempore sources.
// It recognises xtlang type expressions ([i64,i32]*, <i32,double>, |4,i8|),
// typed names (name:i64) and generic identifiers (list{!a}*).
//
// Unlike a scanner that reads to the end of input looking for a closing
// bracket, this provider declines as soon as a bracket or brace group runs
// into whitespace, a parenthesis, ';' or '"'. Every claim therefore ends
// before the next hard delimiter.
package xtlang

import (
	"fortio.org/safecast"

	"xtread/internal/provider"
	"xtread/internal/token"
)

// Provider implements provider.Provider for xtlang.
type Provider struct{}

// New returns the xtlang provider.
func New() Provider { return Provider{} }

var _ provider.Provider = Provider{}

// Claim implements provider.Provider.
func (Provider) Claim(src []byte, off uint32, want provider.Want) (provider.Claim, bool) {
	if int(off) >= len(src) {
		return provider.Claim{}, false
	}
	s := &scanner{src: src, pos: int(off)}
	first := s.peek()

	switch {
	case first == '[' || first == '<' || first == '|' || first == '/':
		if want&provider.WantXtlangType == 0 || !s.bracketType() {
			return provider.Claim{}, false
		}
		return s.claim(token.XtlangType)

	case first == ':':
		if want&provider.WantTypeAnnotation == 0 {
			return provider.Claim{}, false
		}
		s.bump()
		if !s.typeAfterColon() {
			return provider.Claim{}, false
		}
		return s.claim(token.TypeAnnotation)

	case isNameStart(first):
		for isSymbolChar(s.peek()) && s.peek() != ':' && s.peek() != '{' {
			s.bump()
		}
		switch {
		case s.peek() == ':' && want&provider.WantTypedName != 0:
			nameEnd := s.pos
			s.bump()
			if !s.typeAfterColon() {
				return provider.Claim{}, false
			}
			// имя заканчивается перед ':', аннотацию лексер запросит отдельно
			s.pos = nameEnd
			return s.claim(token.TypedName)
		case s.peek() == '{' && want&provider.WantGenericIdentifier != 0:
			if !s.genericTail() {
				return provider.Claim{}, false
			}
			return s.claim(token.GenericIdentifier)
		}
	}
	return provider.Claim{}, false
}

type scanner struct {
	src []byte
	pos int
}

// peek возвращает 0 на конце входа, как lookahead в исходном сканере.
func (s *scanner) peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) bump() {
	if s.pos < len(s.src) {
		s.pos++
	}
}

func (s *scanner) eat(lit string) bool {
	for i := 0; i < len(lit); i++ {
		if s.peek() != lit[i] {
			return false
		}
		s.bump()
	}
	return true
}

func (s *scanner) skipStars() {
	for s.peek() == '*' {
		s.bump()
	}
}

func (s *scanner) claim(k token.Kind) (provider.Claim, bool) {
	end, err := safecast.Conv[uint32](s.pos)
	if err != nil {
		return provider.Claim{}, false
	}
	return provider.Claim{Kind: k, End: end}, true
}

// stop сообщает, что группу скобок дальше сканировать нельзя.
func stop(c byte) bool {
	return c == 0 || provider.IsHardDelimiter(c)
}

func (s *scanner) typeAfterColon() bool {
	switch s.peek() {
	case '[', '<', '|', '/':
		return s.bracketType()
	}
	return s.simpleType()
}

// simpleType: i1 i8 i16 i32 i64 f float f32 f64 d double void, then '*'s, then a delimiter.
func (s *scanner) simpleType() bool {
	matched := false
	switch s.peek() {
	case 'i':
		s.bump()
		switch s.peek() {
		case '1':
			s.bump()
			if s.peek() == '6' {
				s.bump()
				matched = true
			} else if c := s.peek(); c == '*' || isDelimiter(c) {
				matched = true
			}
		case '8':
			s.bump()
			matched = true
		case '3':
			s.bump()
			matched = s.eat("2")
		case '6':
			s.bump()
			matched = s.eat("4")
		}
	case 'f':
		s.bump()
		switch s.peek() {
		case 'l':
			matched = s.eat("loat")
		case '3':
			s.bump()
			matched = s.eat("2")
		case '6':
			s.bump()
			matched = s.eat("4")
		default:
			matched = true
		}
	case 'd':
		s.bump()
		if s.peek() == 'o' {
			matched = s.eat("ouble")
		} else {
			matched = true
		}
	case 'v':
		matched = s.eat("void")
	}
	if !matched {
		return false
	}
	s.skipStars()
	return isDelimiter(s.peek())
}

func closing(open byte) byte {
	switch open {
	case '[':
		return ']'
	case '<':
		return '>'
	case '|':
		return '|'
	case '/':
		return '/'
	}
	return 0
}

// bracketType сканирует [..], <..>, |N..| или /N../ с запятой или вложенным типом на верхнем уровне.
func (s *scanner) bracketType() bool {
	open := s.peek()
	closeCh := closing(open)
	if closeCh == 0 {
		return false
	}
	s.bump()

	if open == '|' || open == '/' {
		if !isDigit(s.peek()) {
			return false
		}
	} else if c := s.peek(); c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == 0 {
		return false
	}

	foundComma, foundNested := false, false
	depth := 1
	for depth > 0 {
		c := s.peek()
		if stop(c) {
			return false
		}
		switch {
		case c == open && open != closeCh:
			depth++
			s.bump()
		case c == closeCh:
			depth--
			s.bump()
		case c == ',' && depth == 1:
			foundComma = true
			s.bump()
		case c == '[' || c == '<':
			if depth == 1 {
				foundNested = true
			}
			if !s.innerGroup(c) {
				return false
			}
		case c == '|' || c == '/':
			s.bump()
			if isDigit(s.peek()) {
				if depth == 1 {
					foundNested = true
				}
				ic := closing(c)
				for s.peek() != ic {
					if stop(s.peek()) {
						return false
					}
					s.bump()
				}
				s.bump()
			}
		default:
			s.bump()
		}
	}
	if !foundComma && !foundNested {
		return false
	}
	s.skipStars()
	return isDelimiter(s.peek())
}

// innerGroup пропускает вложенную группу [..] или <..> с учётом глубины.
func (s *scanner) innerGroup(open byte) bool {
	closeCh := closing(open)
	depth := 1
	s.bump()
	for depth > 0 {
		c := s.peek()
		if stop(c) {
			return false
		}
		switch c {
		case open:
			depth++
		case closeCh:
			depth--
		}
		s.bump()
	}
	return true
}

// genericTail: {..} с непустым содержимым, затем '*', затем разделитель.
func (s *scanner) genericTail() bool {
	s.bump() // '{'
	depth := 1
	content := false
	for depth > 0 {
		c := s.peek()
		if stop(c) {
			return false
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
		default:
			content = true
		}
		s.bump()
	}
	if !content {
		return false
	}
	s.skipStars()
	return isDelimiter(s.peek())
}

func isDelimiter(c byte) bool {
	switch c {
	case 0, ' ', '\t', '\n', '\r', '\f', '\v', '(', ')', '"', '\'', '`', ',', ';', '#':
		return true
	}
	return false
}

func isSymbolChar(c byte) bool { return !isDelimiter(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	if !isSymbolChar(c) || isDigit(c) {
		return false
	}
	switch c {
	case '[', '<', '|', '/', '{', ':', '.', '+', '-':
		return false
	}
	return true
}
