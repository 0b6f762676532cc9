package token

// charNames lists the named character literals accepted after '#\'.
var charNames = map[string]rune{
	"space":   ' ',
	"newline": '\n',
	"return":  '\r',
	"tab":     '\t',
}

// charNameOrder is the order names are tried in for the longest-name match.
var charNameOrder = []string{"newline", "return", "space", "tab"}

// LookupCharName returns the rune for a named character literal.
func LookupCharName(name string) (rune, bool) {
	r, ok := charNames[name]
	return r, ok
}

// CharNames returns the named character literals in match order.
func CharNames() []string {
	return charNameOrder
}

// CharName returns the literal name for r, if it has one.
func CharName(r rune) (string, bool) {
	for _, name := range charNameOrder {
		if charNames[name] == r {
			return name, true
		}
	}
	return "", false
}

var quoteForms = map[Kind]string{
	Quote:           "quote",
	Quasiquote:      "quasiquote",
	Unquote:         "unquote",
	UnquoteSplicing: "unquote-splicing",
}

var quotePrefixes = map[Kind]string{
	Quote:           "'",
	Quasiquote:      "`",
	Unquote:         ",",
	UnquoteSplicing: ",@",
}

// QuoteFormName returns the long form of a quote prefix: ' → quote.
func QuoteFormName(k Kind) (string, bool) {
	name, ok := quoteForms[k]
	return name, ok
}

// QuotePrefix returns the reader spelling of a quote prefix kind.
func QuotePrefix(k Kind) string {
	return quotePrefixes[k]
}
