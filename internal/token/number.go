package token

import "fmt"

// NumberForm is the grammar alternative a numeric literal matched.
type NumberForm uint8

const (
	NumInteger NumberForm = iota
	NumRational
	NumFloat
)

func (f NumberForm) String() string {
	switch f {
	case NumInteger:
		return "integer"
	case NumRational:
		return "rational"
	case NumFloat:
		return "float"
	}
	return "unknown"
}

func (f NumberForm) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *NumberForm) UnmarshalText(b []byte) error {
	for _, form := range []NumberForm{NumInteger, NumRational, NumFloat} {
		if form.String() == string(b) {
			*f = form
			return nil
		}
	}
	return fmt.Errorf("unknown number form %q", b)
}

// NumberLit is the structural decomposition of a Number token.
// Body excludes the radix prefix and the typed suffix but keeps the sign;
// Suffix excludes the ':'. Prefixed marks #x #b #o #d literals.
type NumberLit struct {
	Form     NumberForm `json:"form" yaml:"form"`
	Radix    int        `json:"radix" yaml:"radix"`
	Prefixed bool       `json:"prefixed,omitempty" yaml:"prefixed,omitempty"`
	Body     string     `json:"body" yaml:"body"`
	Suffix   string     `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}
