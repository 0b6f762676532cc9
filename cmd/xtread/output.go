package main

import (
	"fmt"
	"io"

	"xtread/internal/diag"
	"xtread/internal/diagfmt"
	"xtread/internal/source"
)

// printDiagnostics renders bag in one of pretty|json|short.
func (s *session) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format string) error {
	switch format {
	case "pretty":
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     s.useColor(w),
			Context:   2,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
			ShowFixes: true,
		})
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	case "short":
		out := diag.FormatShortDiagnostics(bag.Pointers(), fs, false)
		if out == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, out)
		return err
	default:
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
}

// printTimings пишет сводку таймера, если включён --timings.
func (s *session) printTimings(w io.Writer) {
	if s.timer == nil {
		return
	}
	fmt.Fprint(w, s.timer.Summary())
}

// note печатает служебную строку, если не задан --quiet.
func (s *session) note(w io.Writer, format string, args ...any) {
	if s.quiet {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}
