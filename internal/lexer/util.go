package lexer

import (
	"unicode"
	"unicode/utf8"
)

// isSpace: пробельные разделители ридера. Прочие Unicode-пробелы входят в символы.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// isDelimiter завершает сырой атом, не входя в него.
func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', ';', '"', '\'', '`', ',', '#':
		return true
	}
	return isSpace(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// radixOf возвращает основание для буквы после '#', или 0.
func radixOf(b byte) int {
	switch b {
	case 'x', 'X':
		return 16
	case 'b', 'B':
		return 2
	case 'o', 'O':
		return 8
	case 'd', 'D':
		return 10
	}
	return 0
}

func isRadixDigit(b byte, radix int) bool {
	switch radix {
	case 2:
		return b == '0' || b == '1'
	case 8:
		return b >= '0' && b <= '7'
	case 10:
		return isDec(b)
	case 16:
		return isHex(b)
	}
	return false
}

// isCharSpace: пробел в смысле литерала #\ (ASCII и Unicode); битый UTF-8 туда же.
func isCharSpace(r rune) bool {
	return r == utf8.RuneError || unicode.IsSpace(r)
}
