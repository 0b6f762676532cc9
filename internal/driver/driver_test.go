package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"xtread/internal/diag"
	"xtread/internal/observ"
	"xtread/internal/project"
	"xtread/internal/token"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	opts, err := OptionsFromConfig(project.Default())
	require.NoError(t, err)
	return opts
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeSourceWithProvider(t *testing.T) {
	res := TokenizeSource(context.Background(), "t.xtm", []byte("(f x:i64)"), testOptions(t))
	require.Nil(t, res.Err)
	require.Equal(t, []token.Kind{
		token.LParen, token.Symbol, token.TypedName, token.TypeAnnotation, token.RParen, token.EOF,
	}, kinds(res.Tokens))
	require.Zero(t, res.Bag.Len())
}

func TestTokenizeStopsAtError(t *testing.T) {
	res := TokenizeSource(context.Background(), "t.xtm", []byte(`(a "open`), testOptions(t))
	require.NotNil(t, res.Err)
	require.Equal(t, diag.LexUnterminatedString, res.Err.Code)
	require.Equal(t, token.Invalid, res.Tokens[len(res.Tokens)-1].Kind)
	require.Equal(t, 1, res.Bag.Len())
}

func TestParseFileAndStdin(t *testing.T) {
	root := writeTree(t, map[string]string{"ok.xtm": "(define (f) 1)\n'x\n"})
	timer := observ.NewTimer()
	opts := testOptions(t)
	opts.Timer = timer

	res, err := Parse(context.Background(), filepath.Join(root, "ok.xtm"), opts)
	require.NoError(t, err)
	require.Nil(t, res.Err)
	require.Len(t, res.Program.Top, 2)
	names := []string{}
	for _, p := range timer.Report().Phases {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"load", "parse"}, names)

	prev := Stdin
	Stdin = strings.NewReader("(a b")
	t.Cleanup(func() { Stdin = prev })
	res, err = Parse(context.Background(), StdinName, testOptions(t))
	require.NoError(t, err)
	require.Nil(t, res.Program)
	require.Equal(t, diag.SynUnterminatedList, res.Err.Code)
	require.Equal(t, "<stdin>", res.File.Path)

	_, err = Parse(context.Background(), filepath.Join(root, "missing.xtm"), testOptions(t))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseSpansMapToDiskBytes(t *testing.T) {
	disk := "\xEF\xBB\xBF(a)\r\n(b)"
	root := writeTree(t, map[string]string{"bom.xtm": disk})
	path := filepath.Join(root, "bom.xtm")

	for _, crlf := range []bool{false, true} {
		cfg := project.Default()
		cfg.Source.NormalizeCRLF = crlf
		opts, err := OptionsFromConfig(cfg)
		require.NoError(t, err)

		res, err := Parse(context.Background(), path, opts)
		require.NoError(t, err)
		require.Nil(t, res.Err)
		require.True(t, res.File.Normalized())
		require.Len(t, res.Program.Top, 2)

		var got []string
		for _, id := range res.Program.Top {
			sp := res.File.DiskSpan(res.Program.Nodes.Get(id).Span)
			got = append(got, disk[sp.Start:sp.End])
		}
		require.Equal(t, []string{"(a)", "(b)"}, got, "normalize_crlf=%v", crlf)
	}
}

func TestParseDir(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.xtm":         "(a b c)",
		"lib/b.scm":     "(unclosed",
		"notes.txt":     "(",
		".git/skip.xtm": "(",
	})
	opts := testOptions(t)
	opts.Jobs = 2
	missing := filepath.Join(root, "gone.xtm")

	res, err := ParseDir(context.Background(), []string{root, missing}, opts)
	require.NoError(t, err)
	require.Len(t, res.Files, 3)
	require.Equal(t, filepath.Join(root, "a.xtm"), res.Files[0].Path)
	require.Equal(t, filepath.Join(root, "lib", "b.scm"), res.Files[1].Path)
	require.Equal(t, missing, res.Files[2].Path)

	require.False(t, res.Files[0].Failed())
	require.Equal(t, 1, res.Files[0].Data)
	require.Equal(t, diag.SynUnterminatedList, res.Files[1].Err.Code)
	require.Equal(t, diag.IOLoadFileError, res.Files[2].Bag.Items()[0].Code)
	require.Equal(t, 2, res.Failed())

	all := res.Diagnostics(0)
	require.Equal(t, 2, all.Len())
	require.Equal(t, 1, res.Diagnostics(1).Len())
	// IO4001 указывает на виртуальный файл с путём аргумента
	f := res.FileSet.Get(all.Items()[1].Primary.File)
	require.NotNil(t, f)
	require.Equal(t, filepath.ToSlash(missing), filepath.ToSlash(f.Path))
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) final() map[string]Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]Status{}
	for _, ev := range s.events {
		out[filepath.Base(ev.File)] = ev.Status
	}
	return out
}

func TestParseDirCache(t *testing.T) {
	root := writeTree(t, map[string]string{
		"good.xtm": "(a) (b)",
		"bad.xtm":  "(a . )",
		"open.xtm": "(a (b",
	})
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	opts := testOptions(t)
	opts.Cache = cache

	first, err := ParseDir(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	for _, f := range first.Files {
		require.False(t, f.Cached, f.Path)
	}

	sink := &recordingSink{}
	opts.Progress = sink
	second, err := ParseDir(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	require.Len(t, second.Files, 3)
	for i, f := range second.Files {
		require.True(t, f.Cached, f.Path)
		require.Nil(t, f.Program)
		require.Equal(t, first.Files[i].Data, f.Data)
		if first.Files[i].Err == nil {
			require.Nil(t, f.Err)
			continue
		}
		require.Equal(t, first.Files[i].Err.Code, f.Err.Code)
		require.Equal(t, first.Files[i].Err.Span.Start, f.Err.Span.Start)
		require.Equal(t, first.Files[i].Err.Msg, f.Err.Msg)
		require.Equal(t, f.FileID, f.Err.Span.File)
		require.Len(t, f.Err.Fixes, len(first.Files[i].Err.Fixes))
		for j, fix := range f.Err.Fixes {
			want := first.Files[i].Err.Fixes[j]
			require.Equal(t, want.Title, fix.Title)
			require.Len(t, fix.Edits, len(want.Edits))
			require.Equal(t, want.Edits[0].NewText, fix.Edits[0].NewText)
			require.Equal(t, want.Edits[0].Span.Start, fix.Edits[0].Span.Start)
			require.Equal(t, f.FileID, fix.Edits[0].Span.File)
		}
	}
	require.Equal(t, "))", second.Files[2].Err.Fixes[0].Edits[0].NewText)
	require.Equal(t, map[string]Status{
		"bad.xtm": StatusCached, "good.xtm": StatusCached, "open.xtm": StatusCached,
	}, sink.final())

	// другой fingerprint - другой ключ
	opts.Fingerprint = project.Combine(opts.Fingerprint)
	third, err := ParseDir(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	require.False(t, third.Files[0].Cached)

	require.NoError(t, cache.DropAll())
}

func TestParseDirCacheWarningsInSourceOrder(t *testing.T) {
	root := writeTree(t, map[string]string{"bad.xtm": "(a . )"})
	dir := filepath.Join(t.TempDir(), "cache")
	cache, err := OpenDiskCacheAt(dir)
	require.NoError(t, err)
	// файл на месте каталога: и чтение, и запись кэша падают
	require.NoError(t, os.WriteFile(filepath.Join(dir, "parse"), []byte("x"), 0o600))

	opts := testOptions(t)
	opts.Cache = cache
	res, err := ParseDir(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	items := res.Files[0].Bag.Items()
	require.Len(t, items, 3)
	require.Equal(t, diag.IOCacheError, items[0].Code)
	require.Equal(t, diag.IOCacheError, items[1].Code)
	require.Equal(t, diag.SynMalformedDottedPair, items[2].Code)
}

func TestParseDirCanceled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.xtm": "a", "b.xtm": "b"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := ParseDir(ctx, []string{root}, testOptions(t))
	require.True(t, IsCanceled(err))
	require.NotNil(t, res)
	require.Zero(t, res.Diagnostics(0).Len())
}

func TestProviderByName(t *testing.T) {
	_, err := ProviderByName("lisp")
	require.Error(t, err)

	cfg := project.Default()
	cfg.Reader.Provider = project.ProviderNone
	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	res := TokenizeSource(context.Background(), "t.xtm", []byte("x:i64"), opts)
	require.Equal(t, []token.Kind{token.Symbol, token.EOF}, kinds(res.Tokens))
}
