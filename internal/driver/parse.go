package driver

import (
	"context"
	"fmt"

	"xtread/internal/cst"
	"xtread/internal/diag"
	"xtread/internal/parser"
	"xtread/internal/source"
	"xtread/internal/trace"
)

// ParseResult is the outcome of reading one file: a program or a single error.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Program is nil when Err is set.
	Program *cst.Program
	Bag     *diag.Bag
	Err     *diag.Error
}

// Parse loads path ("-" reads stdin) and reads every datum in it.
// A reader error lands in Bag and Err; the returned error is I/O only.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs, file, err := loadOne(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx, fs, file, opts, nil), nil
}

// ParseSource parses an in-memory buffer.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) *ParseResult {
	fs := source.NewFileSet()
	content, flags, origin := source.Normalize(src, opts.Load)
	file := fs.Get(fs.AddWithOrigin(name, content, flags|source.FileVirtual, origin))
	return parseFile(ctx, fs, file, opts, nil)
}

// parseFile: bag == nil означает собственный bag на MaxDiagnostics.
func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options, bag *diag.Bag) *ParseResult {
	_, span := trace.StartSpan(ctx, trace.ScopePass, "parse")
	done := opts.Timer.Track("parse")

	if bag == nil {
		bag = diag.NewBag(opts.MaxDiagnostics)
	}
	res := &ParseResult{FileSet: fs, File: file, Bag: bag}
	prog, err := parser.Parse(file, parser.Options{
		Provider:   opts.Provider,
		KeepTrivia: opts.KeepTrivia,
		Reporter:   diag.BagReporter{Bag: bag},
	})

	var note string
	if err != nil {
		de, ok := diag.AsError(err)
		if !ok {
			de = diag.Errorf(diag.IntInvariantViolation, source.Span{File: file.ID}, "parser returned a foreign error: %v", err)
			de.Report(diag.BagReporter{Bag: bag})
		}
		res.Err = de
		note = res.Err.Code.ID()
		span.WithExtra("error", note)
	} else {
		res.Program = prog
		note = fmt.Sprintf("%d data", len(prog.Top))
	}
	done(note)
	span.End(note)
	return res
}
