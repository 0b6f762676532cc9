package diag

import (
	"testing"

	"xtread/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/libs/core/sample.xtm", []byte("(a\nb\n"), 0)
	stdin := fs.AddVirtual("<stdin>", []byte(")"))

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnterminatedList,
			Message:  "unterminated list\nopened here",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 3, End: 4}, Msg: "last datum"},
				{Span: source.Span{File: source.FileID(42)}, Msg: "dropped"},
			},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "unexpected ')'",
			Primary:  source.Span{File: stdin, Start: 0, End: 1},
		},
	}

	expected := "error SYN2001 <stdin>:1:1 unexpected ')'\n" +
		"error SYN2006 libs/core/sample.xtm:1:1 unterminated list opened here\n" +
		"note SYN2006 libs/core/sample.xtm:2:1 last datum"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	short := FormatShortDiagnostics(diags[:1], fs, false)
	if want := "error SYN2006 /workspace/libs/core/sample.xtm:1:1 unterminated list opened here"; short != want {
		t.Fatalf("short format:\nwant %q\ngot  %q", want, short)
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	b := NewBag(3)
	sp := func(start uint32) source.Span { return source.Span{Start: start, End: start + 1} }

	b.Add(NewError(SynUnexpectedToken, sp(5), "b"))
	b.Add(NewError(SynUnexpectedToken, sp(5), "b again"))
	b.Add(New(SevWarning, LexInfo, sp(1), "a"))
	if b.Add(NewError(SynUnterminatedList, sp(0), "over the limit")) {
		t.Fatal("bag must refuse items past its limit")
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("expected both errors and warnings")
	}

	b.Sort()
	items := b.Items()
	if len(items) != 3 || items[0].Message != "a" || items[1].Message != "b" || items[2].Message != "b again" {
		t.Fatalf("unexpected items after sort: %+v", items)
	}

	other := NewBag(10)
	other.Add(NewError(IOLoadFileError, sp(9), "io"))
	b.Merge(other)
	if b.Len() != 4 {
		t.Fatalf("Merge must add the other bag, got %d items", b.Len())
	}
}

func TestErrorConversion(t *testing.T) {
	e := Errorf(SynMalformedDottedPair, source.Span{Start: 3, End: 4}, "expected one datum after %q", ".")
	if e.Internal() {
		t.Fatal("syntax errors are not internal")
	}
	if got := e.Error(); got != `SYN2030 0:3-4: expected one datum after "."` {
		t.Fatalf("Error() = %q", got)
	}

	bag := NewBag(4)
	e.Report(BagReporter{Bag: bag})
	if bag.Len() != 1 || bag.Items()[0].Code != SynMalformedDottedPair {
		t.Fatalf("Report must forward the diagnostic, got %+v", bag.Items())
	}

	bug := &Error{Code: IntInvariantViolation, Msg: "child escapes parent"}
	if !bug.Internal() || len(bug.Diagnostic().Notes) != 1 {
		t.Fatal("internal errors carry a bug-report note")
	}

	wrapped := wrap(bug)
	got, ok := AsError(wrapped)
	if !ok || got != bug {
		t.Fatal("AsError must unwrap the located error")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		Errorf(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "dup").Report(r)
	}
	ReportWarning(r, SynUnexpectedToken, source.Span{Start: 1, End: 2}, "dup").WithNote(source.Span{}, "n").Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

type wrapErr struct{ err error }

func (w wrapErr) Error() string { return "load: " + w.err.Error() }
func (w wrapErr) Unwrap() error { return w.err }

func wrap(err error) error { return wrapErr{err: err} }
