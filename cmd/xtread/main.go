package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"xtread/internal/diag"
	"xtread/internal/version"
)

// exitError carries a process exit code without printing anything more:
// the command has already rendered its diagnostics.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// errHasErrors: во входе есть ошибки, они уже напечатаны.
var errHasErrors = exitError{code: 1}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xtread",
		Short:         "Extempore/xtlang S-expression reader",
		Long:          `xtread reads Extempore Scheme and xtlang sources into a concrete syntax tree and reports the first syntax error of each file`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = from config)")
	pf.String("config", "", "path to xtread.toml (default: search upward from the working directory)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 = off)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
	return root
}

// main executes the root command and maps its error onto the exit status.
func main() {
	os.Exit(run(newRootCmd(), os.Args[1:], os.Stderr))
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var ce configError
	if errors.As(err, &ce) {
		fmt.Fprintf(stderr, "xtread: %s: %v\n", diag.ProjInvalidConfig.ID(), ce.err)
		return 2
	}
	fmt.Fprintf(stderr, "xtread: %v\n", err)
	return 2
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
