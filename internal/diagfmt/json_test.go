package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"xtread/internal/diag"
	"xtread/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("(define x\n  \"unterminated\n")
	fileID := fs.AddVirtual("test.xtm", content)

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 12, End: 26}, "unterminated string literal").
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "inside this list"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("count = %d", output.Count)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" || d.Title != diag.LexUnterminatedString.Title() {
		t.Errorf("unexpected header: %+v", d)
	}
	if d.Location.File != "test.xtm" || d.Location.StartByte != 12 || d.Location.EndByte != 26 {
		t.Errorf("location = %+v", d.Location)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 3 {
		t.Errorf("position = %d:%d, want 2:3", d.Location.StartLine, d.Location.StartCol)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "inside this list" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONMaxAndOmissions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.xtm", []byte(") ) )"))
	bag := diag.NewBag(10)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 2 * i, End: 2*i + 1}, "unexpected ')'").
			WithNote(source.Span{File: fileID}, "dropped"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("count = %d, want 2", out.Count)
	}
	for _, d := range out.Diagnostics {
		if d.Notes != nil || d.Location.StartLine != 0 {
			t.Fatalf("notes/positions must be omitted: %+v", d)
		}
	}
}

func TestJSONByteOffsetsIndexDisk(t *testing.T) {
	disk := []byte("\xEF\xBB\xBF(a\r\n  )x)")
	content, flags, origin := source.Normalize(disk, source.LoadOptions{StripBOM: true, NormalizeCRLF: true})
	fs := source.NewFileSet()
	fileID := fs.AddWithOrigin("bom.xtm", content, flags, origin)

	// в нормализованном тексте "(a\n  )x)" лишняя скобка стоит на 7
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 7, End: 8}, "unexpected ')' at top level"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true})
	loc := out.Diagnostics[0].Location
	if got := string(disk[loc.StartByte:loc.EndByte]); got != ")" || loc.StartByte != 11 {
		t.Fatalf("bytes %d-%d cover %q on disk", loc.StartByte, loc.EndByte, got)
	}
	if loc.StartLine != 2 || loc.StartCol != 5 {
		t.Errorf("position = %d:%d, want 2:5", loc.StartLine, loc.StartCol)
	}
}
