package driver

import (
	"context"
	"fmt"

	"xtread/internal/diag"
	"xtread/internal/lexer"
	"xtread/internal/provider"
	"xtread/internal/source"
	"xtread/internal/token"
	"xtread/internal/trace"
)

// TokenizeResult holds the token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens ends with EOF, or with Invalid when the lexer failed.
	Tokens []token.Token
	Bag    *diag.Bag
	Err    *diag.Error
}

// Tokenize loads path ("-" reads stdin) and lexes it to the end.
// A lexical error lands in Bag and Err; the returned error is I/O only.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs, file, err := loadOne(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(ctx, fs, file, opts), nil
}

// TokenizeSource lexes an in-memory buffer.
func TokenizeSource(ctx context.Context, name string, src []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	content, flags, origin := source.Normalize(src, opts.Load)
	file := fs.Get(fs.AddWithOrigin(name, content, flags|source.FileVirtual, origin))
	return tokenizeFile(ctx, fs, file, opts)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	_, span := trace.StartSpan(ctx, trace.ScopePass, "lex")
	done := opts.Timer.Track("lex")

	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Provider:   opts.Provider,
		Reporter:   diag.BagReporter{Bag: bag},
		KeepTrivia: opts.KeepTrivia,
	})

	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	// без парсера контекст неизвестен: везде ждём начало datum
	for {
		tok := lx.Next(provider.WantDatum)
		if tok.Kind == token.TypedName {
			tokens = append(tokens, tok)
			tok = lx.Next(provider.WantTypeAnnotation)
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}

	note := fmt.Sprintf("%d tokens", len(tokens))
	done(note)
	span.End(note)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Err:     lx.Err(),
	}
}
