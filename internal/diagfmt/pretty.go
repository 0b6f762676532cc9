package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"xtread/internal/diag"
	"xtread/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items(); порядок задаёт вызывающий (driver сортирует bag файла).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	start, end := f.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, fs, opts.PathMode), start.Line, start.Col,
		pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)

	gutterWidth := len(fmt.Sprint(start.Line))
	from := start.Line
	if opts.Context > 0 {
		ctx := uint32(opts.Context) // #nosec G115 -- проверено > 0
		if ctx >= from {
			from = 1
		} else {
			from -= ctx
		}
	}
	for line := from; line <= start.Line; line++ {
		text := displayLine(f.GetLine(line), opts.Width)
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, line), text)
	}

	raw := f.GetLine(start.Line)
	col := int(start.Col) - 1
	if col > len(raw) {
		col = len(raw)
	}
	pad := displayWidth(raw[:col])
	underline := 1
	if end.Line == start.Line && end.Col > start.Col {
		stop := int(end.Col) - 1
		if stop > len(raw) {
			stop = len(raw)
		}
		underline = max(displayWidth(raw[col:stop]), 1)
	} else if end.Line != start.Line {
		underline = max(displayWidth(raw[col:]), 1)
	}
	if opts.Width > 0 {
		limit := int(opts.Width)
		if pad >= limit {
			pad, underline = limit-1, 1
		} else if pad+underline > limit {
			underline = limit - pad
		}
	}
	fmt.Fprintf(w, " %s %s%s\n",
		pal.gutter.Sprint(strings.Repeat(" ", gutterWidth)+" |"),
		strings.Repeat(" ", pad),
		pal.caret.Sprint("^"+strings.Repeat("~", underline-1)))

	if opts.ShowNotes {
		for _, n := range d.Notes {
			loc := ""
			if nf := fs.Get(n.Span.File); nf != nil {
				ns, _ := nf.Resolve(n.Span)
				loc = fmt.Sprintf("%s:%d:%d: ", formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col)
			}
			fmt.Fprintf(w, "  %s %s%s\n", pal.note.Sprint("note:"), loc, n.Msg)
		}
	}
	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprintf("fix #%d:", i+1), fix.Title)
			for _, e := range fix.Edits {
				fmt.Fprintf(w, "    at %s apply=%q\n", formatSpan(e.Span, fs), e.NewText)
			}
		}
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

func displayLine(s string, width uint8) string {
	s = expandTabs(s)
	if width > 0 && runewidth.StringWidth(s) > int(width) {
		return runewidth.Truncate(s, int(width), "…")
	}
	return s
}
