package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"xtread/internal/token"
)

// DecodeString returns the value of a String token's text, quotes included.
// \xHH yields the raw byte HH.
func DecodeString(text string) (string, bool) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", false
	}
	body := text[1 : len(text)-1]
	if strings.IndexByte(body, '\\') < 0 {
		return body, true
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		n := escapeLen([]byte(body[i:]))
		if n == 0 {
			return "", false
		}
		switch body[i+1] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'x', 'X':
			v, err := strconv.ParseUint(body[i+2:i+4], 16, 8)
			if err != nil {
				return "", false
			}
			b.WriteByte(byte(v))
		}
		i += n
	}
	return b.String(), true
}

// DecodeChar returns the rune of a Character token's text, '#\' included.
func DecodeChar(text string) (rune, bool) {
	body, ok := strings.CutPrefix(text, `#\`)
	if !ok || body == "" {
		return 0, false
	}
	if r, ok := token.LookupCharName(body); ok {
		return r, true
	}
	if len(body) > 1 && body[0] == 'x' {
		v, err := strconv.ParseUint(body[1:], 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) { // #nosec G115 -- ParseUint ограничен 32 битами
			return 0, false
		}
		return rune(v), true // #nosec G115
	}
	r, size := utf8.DecodeRuneInString(body)
	if r == utf8.RuneError || size != len(body) {
		return 0, false
	}
	return r, true
}
