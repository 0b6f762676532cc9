package diag

import (
	"fmt"
)

// Code identifies a diagnostic. The thousands digit selects the range (LEX, SYN, INT, ...).
type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexInvalidCharacterLiteral  Code = 1006
	LexInvalidEscapeSequence    Code = 1007

	// Синтаксические
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnterminatedList    Code = 2006
	SynMalformedDottedPair Code = 2030

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Проект и конфигурация
	ProjInfo          Code = 5000
	ProjInvalidConfig Code = 5001

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001

	// Внутренние ошибки ридера: это баги, а не ошибки в исходнике
	IntInvariantViolation Code = 9001
	IntProviderContract   Code = 9002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexInvalidCharacterLiteral:  "Invalid character literal",
		LexInvalidEscapeSequence:    "Invalid escape sequence",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnterminatedList:         "Unterminated list",
		SynMalformedDottedPair:      "Malformed dotted pair",
		IOLoadFileError:             "I/O load file error",
		IOCacheError:                "Parse cache error",
		ProjInfo:                    "Project information",
		ProjInvalidConfig:           "Invalid project configuration",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
		IntInvariantViolation:       "Internal invariant violation",
		IntProviderContract:         "Token provider contract violation",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// IsInternal reports whether the code denotes a reader bug rather than bad input.
func (c Code) IsInternal() bool {
	return c >= 9000 && c < 10000
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// MarshalText renders the code by its stable ID.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.ID()), nil
}
