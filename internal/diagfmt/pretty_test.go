package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"xtread/internal/diag"
	"xtread/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("(define s \"unterminated\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.xtm", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 10, End: 24}, "unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.xtm"},
		{"relative", PathModeRelative, "src/test.xtm:1:11"},
		{"basename", PathModeBasename, "test.xtm:1:11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "unterminated string literal"} {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettyCaretAlignment(t *testing.T) {
	fs := source.NewFileSet()
	// широкие руны и таб перед ошибкой
	content := []byte("(a\n\t(\"日本\" . )\n")
	fileID := fs.AddVirtual("w.xtm", content)
	dot := uint32(bytes.IndexByte(content, '.'))

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynMalformedDottedPair, source.Span{File: fileID, Start: dot, End: dot + 1}, "expected a datum after '.'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, 2 context lines and caret line, got:\n%s", buf.String())
	}
	if lines[0] != "w.xtm:2:12: ERROR SYN2030: expected a datum after '.'" {
		t.Fatalf("header = %q", lines[0])
	}
	src, caret := lines[2], lines[3]
	// "    (\"日本\" " = 4 (tab) + 1 + 1 + 4 + 1 + 1 = 12 колонок
	srcBar := strings.Index(src, "| ") + 2
	caretBar := strings.Index(caret, "| ") + 2
	if got := strings.Index(caret, "^") - caretBar; got != 12 {
		t.Fatalf("caret at display column %d, want 12:\n%s\n%s", got, src, caret)
	}
	if srcBar != caretBar {
		t.Fatalf("gutters differ:\n%s\n%s", src, caret)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("(a .(b))\n")
	fileID := fs.AddVirtual("test.xtm", content)

	primary := source.Span{File: fileID, Start: 3, End: 4}
	d := diag.NewError(diag.SynMalformedDottedPair, primary, "'.' must be followed by whitespace or a comment").
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "list starts here").
		WithFix("insert a space", diag.FixEdit{Span: source.Span{File: fileID, Start: 4, End: 4}, NewText: " "})
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})
	output := buf.String()
	for _, want := range []string{"note: test.xtm:1:1: list starts here", "fix #1: insert a space", `apply=" "`} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q, got:\n%s", want, output)
		}
	}
}

func TestPrettyWidthTruncates(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("(" + strings.Repeat("x", 200) + "\n")
	fileID := fs.AddVirtual("long.xtm", content)
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnterminatedList, source.Span{File: fileID, Start: 0, End: uint32(len(content))}, "unterminated list"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Width: 40})
	for _, line := range strings.Split(buf.String(), "\n")[1:] {
		if len([]rune(line)) > 40+8 {
			t.Fatalf("line not truncated: %q", line)
		}
	}
	if !strings.Contains(buf.String(), "…") {
		t.Fatalf("expected ellipsis:\n%s", buf.String())
	}
}

func TestPrettyColorToggle(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.xtm", []byte(")"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 0, End: 1}, "unexpected ')'"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}
