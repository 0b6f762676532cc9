package parser

import (
	"xtread/internal/cst"
	"xtread/internal/diag"
	"xtread/internal/lexer"
	"xtread/internal/provider"
	"xtread/internal/source"
	"xtread/internal/token"
)

// Options configures Parse. The zero value reads plain Scheme without trivia.
type Options struct {
	// Provider claims xtlang tokens; nil declines everything.
	Provider provider.Provider
	// KeepTrivia fills Program.Trivia with every whitespace and comment piece.
	KeepTrivia bool
	// Reporter additionally receives the error as a diagnostic. May be nil.
	Reporter diag.Reporter
	// Interner is shared between parses when set; a fresh one is used otherwise.
	Interner *source.Interner
}

// Parser хранит состояние разбора одного файла. Ошибка одна: первая найденная
// останавливает разбор, частичных деревьев нет.
type Parser struct {
	lx   *lexer.Lexer
	b    *cst.Builder
	file *source.File
	opts Options
	err  *diag.Error
	open int // незакрытые '(' и '#(' на текущем пути
}

// Parse reads every top-level datum of file. It returns either a verified
// program or a single located *diag.Error.
func Parse(file *source.File, opts Options) (*cst.Program, error) {
	p := &Parser{
		lx: lexer.New(file, lexer.Options{
			Provider:   opts.Provider,
			Reporter:   opts.Reporter,
			KeepTrivia: opts.KeepTrivia,
		}),
		b:    cst.NewBuilder(cst.Hints{Nodes: hintFor(file)}, opts.Interner),
		file: file,
		opts: opts,
	}
	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseBytes parses an in-memory buffer registered as a virtual file.
func ParseBytes(name string, src []byte, opts Options) (*cst.Program, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return Parse(fs.Get(id), opts)
}

// hintFor: в среднем один узел на 4 байта исходника.
func hintFor(file *source.File) uint {
	n := uint(file.Len() / 4)
	if n < 1<<4 {
		n = 1 << 4
	}
	return n
}

func (p *Parser) parseProgram() (*cst.Program, *diag.Error) {
	for {
		tok := p.lx.Next(provider.WantDatum)
		switch tok.Kind {
		case token.EOF:
			prog := p.b.Finish(p.file, p.trivia())
			if err := cst.Verify(prog); err != nil {
				return nil, p.report(err)
			}
			return prog, nil
		case token.RParen:
			return nil, p.fail(diag.SynUnexpectedToken, tok.Span, "unexpected ')' at top level")
		}
		id, ok := p.parseDatumFrom(tok)
		if !ok {
			return nil, p.err
		}
		p.b.PushTop(id)
	}
}

func (p *Parser) trivia() []token.Trivia {
	if !p.opts.KeepTrivia {
		return nil
	}
	return p.lx.Trivia()
}
