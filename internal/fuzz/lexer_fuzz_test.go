package fuzztests

import (
	"testing"

	"xtread/internal/diag"
	"xtread/internal/lexer"
	"xtread/internal/provider"
	"xtread/internal/provider/xtlang"
	"xtread/internal/source"
	"xtread/internal/token"
)

const maxFuzzInput = maxSeedBytes

// FuzzLexerTokens checks that tokens and their trivia tile the input in
// order and that the lexer always terminates.
func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.xtm", input))

		bag := diag.NewBag(8)
		lx := lexer.New(file, lexer.Options{
			Provider: xtlang.New(),
			Reporter: diag.BagReporter{Bag: bag},
		})

		var pos uint32
		// каждый токен съедает хотя бы байт, кроме последнего EOF/Invalid
		for steps := 0; steps <= len(input)+1; steps++ {
			tok := lx.Next(provider.WantDatum)
			for _, tv := range tok.Leading {
				if tv.Span.Start != pos {
					t.Fatalf("trivia %s starts at %d, want %d", tv.Kind, tv.Span.Start, pos)
				}
				pos = tv.Span.End
			}
			switch tok.Kind {
			case token.EOF:
				if lx.Err() == nil && pos != file.Len() {
					t.Fatalf("EOF at %d, input is %d bytes", pos, file.Len())
				}
				return
			case token.Invalid:
				if lx.Err() == nil {
					t.Fatalf("Invalid token without a lexer error")
				}
				if lx.Err().Internal() {
					t.Fatalf("lexer reported a bug: %v", lx.Err())
				}
				return
			}
			if tok.Span.Start != pos || tok.Span.End <= tok.Span.Start {
				t.Fatalf("token %s at %s, expected start %d", tok.Kind, tok.Span, pos)
			}
			pos = tok.Span.End
			if tok.Kind == token.TypedName {
				ann := lx.Next(provider.WantTypeAnnotation)
				if ann.Kind != token.TypeAnnotation {
					// парсер превратит это в INT9002; лексер тут ни при чём
					return
				}
				if ann.Span.Start != pos || len(ann.Leading) != 0 {
					t.Fatalf("annotation at %s is not adjacent to its name", ann.Span)
				}
				pos = ann.Span.End
			}
		}
		t.Fatalf("lexer did not reach EOF within %d steps", len(input)+2)
	})
}
