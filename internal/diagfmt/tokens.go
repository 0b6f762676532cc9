package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"xtread/internal/source"
	"xtread/internal/token"
)

// TokenOutput is one token of a JSON dump; Span points into the file on disk.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

func leadingKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	out := make([]string, len(tok.Leading))
	for i, tv := range tok.Leading {
		out[i] = tv.Kind.String()
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-17s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if leading := leadingKinds(tok); len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}
	return nil
}

// diskSpan переводит span в координаты файла на диске, если файл известен.
func diskSpan(fs *source.FileSet, span source.Span) source.Span {
	if f := fs.Get(span.File); f != nil {
		return f.DiskSpan(span)
	}
	return span
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    diskSpan(fs, tok.Span),
			Leading: leadingKinds(tok),
		})
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// FormatTokensTable выводит токены таблицей; trivia идут отдельными строками.
func FormatTokensTable(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Kind", "Text", "Line:Col", "Bytes"})

	n := 0
	row := func(tok token.Token) {
		n++
		start, _ := fs.Resolve(tok.Span)
		disk := diskSpan(fs, tok.Span)
		t.AppendRow(table.Row{
			n,
			tok.Kind.String(),
			fmt.Sprintf("%q", tok.Text),
			fmt.Sprintf("%d:%d", start.Line, start.Col),
			fmt.Sprintf("%d-%d", disk.Start, disk.End),
		})
	}
	for _, tok := range tokens {
		for _, tv := range tok.Leading {
			row(tv.Token())
		}
		row(tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}

	t.Render()
	_, err := fmt.Fprintf(w, "(%d tokens)\n", n)
	return err
}
