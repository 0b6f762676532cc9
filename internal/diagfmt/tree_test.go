package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"xtread/internal/cst"
	"xtread/internal/parser"
	"xtread/internal/provider/xtlang"
	"xtread/internal/source"
)

func mustParse(t *testing.T, src string) *cst.Program {
	t.Helper()
	prog, err := parser.ParseBytes("tree.xtm", []byte(src), parser.Options{Provider: xtlang.New()})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return prog
}

func TestWriteSexp_Canonical(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"(a   b\n . ;c\n c)", "(a b . c)"},
		{"( . x )", "(. x)"},
		{"' ( 1  2 )", "'(1 2)"},
		{"#(#T #\\x41 #\\space)", "#(#t #\\A #\\space)"},
		{`"ab\x41cd"`, `"abAcd"`},
		{`"q\"\\\n\x01"`, `"q\"\\\n\x01"`},
		{"#X1a:i32", "#x1a :i32"},
		{", @x", ", @x"},
		{",@x", ",@x"},
		{"(f x:i64 #| c |# 2:i8)", "(f x:i64 2:i8)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := mustParse(t, tt.src)
			var buf bytes.Buffer
			if err := WriteProgramSexp(&buf, prog); err != nil {
				t.Fatal(err)
			}
			got := strings.TrimRight(strings.ReplaceAll(buf.String(), "\n", " "), " ")
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// Канонический текст читается обратно в изоморфное дерево.
func TestWriteSexp_Reparses(t *testing.T) {
	srcs := []string{
		"(define (f x) (if (< x 1) 'small `(big ,x ,@(list x))))",
		"#(\"tab\\there\" #\\newline #\\x3bb 1/2 -3.5e2 #b101)",
		"(bind-func f:[i64,i64]* (lambda (n:i64) (* n 2:i64)))",
		"(a . (b . (c . ())))",
	}
	for _, src := range srcs {
		prog := mustParse(t, src)
		for _, id := range prog.Top {
			text := Sexp(prog, id)
			again := mustParse(t, text)
			if len(again.Top) != 1 || !cst.Equal(prog.Nodes, id, again.Nodes, again.Top[0]) {
				t.Fatalf("%q printed as %q does not reparse to the same tree", src, text)
			}
		}
	}
}

func TestFormatTreePretty(t *testing.T) {
	prog := mustParse(t, "(a . b) 'c")
	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, prog, nil); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"tree.xtm (2 data)",
		"├─ List (span: span(0-7))",
		"│  ├─ Symbol a (span: span(1-2))",
		"│  └─ tail: Symbol b (span: span(5-6))",
		"└─ Quote (span: span(8-10))",
		"   └─ Symbol c (span: span(9-10))",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatTreeJSONAndYAML(t *testing.T) {
	prog := mustParse(t, `(x:i64 "s" 1.5:f)`)

	var jbuf bytes.Buffer
	if err := FormatTreeJSON(&jbuf, prog); err != nil {
		t.Fatal(err)
	}
	var fromJSON ProgramOutput
	if err := json.Unmarshal(jbuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	var ybuf bytes.Buffer
	if err := FormatTreeYAML(&ybuf, prog); err != nil {
		t.Fatal(err)
	}
	var fromYAML struct {
		File string `yaml:"file"`
		Data []struct {
			Kind     string `yaml:"kind"`
			Children []struct {
				Kind   string `yaml:"kind"`
				Value  string `yaml:"value"`
				Type   string `yaml:"type"`
				Number struct {
					Form   string `yaml:"form"`
					Suffix string `yaml:"suffix"`
				} `yaml:"number"`
			} `yaml:"children"`
		} `yaml:"data"`
	}
	if err := yaml.Unmarshal(ybuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, ybuf.String())
	}

	if len(fromJSON.Data) != 1 || len(fromJSON.Data[0].Children) != 3 {
		t.Fatalf("json data = %+v", fromJSON.Data)
	}
	typed := fromJSON.Data[0].Children[0]
	if typed.Kind != "TypedIdentifier" || typed.Value != "x" || typed.Type != "i64" {
		t.Fatalf("typed = %+v", typed)
	}
	kids := fromYAML.Data[0].Children
	if fromYAML.File != "tree.xtm" || len(kids) != 3 {
		t.Fatalf("yaml = %+v", fromYAML)
	}
	if kids[1].Value != "s" || kids[2].Number.Form != "float" || kids[2].Number.Suffix != "f" {
		t.Fatalf("yaml children = %+v", kids)
	}
}

func TestBuildProgramOutputUsesDiskOffsets(t *testing.T) {
	disk := []byte("\xEF\xBB\xBF; c\r\n(a)")
	content, flags, origin := source.Normalize(disk, source.LoadOptions{StripBOM: true, NormalizeCRLF: true})
	fs := source.NewFileSet()
	file := fs.Get(fs.AddWithOrigin("crlf.xtm", content, flags, origin))
	prog, err := parser.Parse(file, parser.Options{KeepTrivia: true})
	if err != nil {
		t.Fatal(err)
	}

	out := BuildProgramOutput(prog)
	if strings.Join(out.Normalized, ",") != "bom,crlf" {
		t.Fatalf("normalized = %v", out.Normalized)
	}
	if sp := out.Data[0].Span; string(disk[sp.Start:sp.End]) != "(a)" {
		t.Fatalf("list span %v covers %q on disk", sp, disk[sp.Start:sp.End])
	}
	if len(out.Trivia) == 0 {
		t.Fatal("expected trivia")
	}
	if sp := out.Trivia[0].Span; string(disk[sp.Start:sp.End]) != "; c" {
		t.Fatalf("comment span %v covers %q on disk", sp, disk[sp.Start:sp.End])
	}
}
