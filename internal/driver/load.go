package driver

import (
	"context"
	"fmt"
	"io"
	"os"

	"xtread/internal/diag"
	"xtread/internal/source"
	"xtread/internal/trace"
)

// StdinName is the path argument that reads standard input.
const StdinName = "-"

// Stdin is read when a path is StdinName. Tests swap it.
var Stdin io.Reader = os.Stdin

func loadOne(ctx context.Context, path string, opts Options) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	id, err := loadInto(ctx, fs, path, opts)
	if err != nil {
		return nil, nil, err
	}
	return fs, fs.Get(id), nil
}

func loadInto(ctx context.Context, fs *source.FileSet, path string, opts Options) (source.FileID, error) {
	_, span := trace.StartSpan(ctx, trace.ScopePass, "load")
	defer span.End(path)
	done := opts.Timer.Track("load")
	defer done(path)

	if path == StdinName {
		content, err := io.ReadAll(Stdin)
		if err != nil {
			return 0, fmt.Errorf("failed to read stdin: %w", err)
		}
		content, flags, origin := source.Normalize(content, opts.Load)
		return fs.AddWithOrigin("<stdin>", content, flags|source.FileVirtual, origin), nil
	}
	id, err := fs.LoadWith(path, opts.Load)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return id, nil
}

// loadFailure регистрирует пустой виртуальный файл под path, чтобы у
// IO4001 было место в выводе, и возвращает саму диагностику.
func loadFailure(fs *source.FileSet, path string, err error) (source.FileID, diag.Diagnostic) {
	id := fs.Add(path, nil, source.FileVirtual)
	return id, diag.NewError(diag.IOLoadFileError, source.Span{File: id}, err.Error())
}
