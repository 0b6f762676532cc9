package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xtread/internal/diagfmt"
	"xtread/internal/driver"
	"xtread/internal/project"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.xtm|->",
		Short: "Read a source file and print its syntax tree",
		Long:  `Parse reads every datum of a source file and prints the tree, or the first syntax error with its location`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "sexp", "output format (sexp|tree|json|yaml)")
	cmd.Flags().Bool("trivia", false, "keep whitespace and comments (json|yaml)")
	cmd.Flags().Bool("no-provider", false, "disable the xtlang token provider")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	defer dumpTraceOnPanic(cmd)
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "sexp", "tree", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if cmd.Flags().Changed("trivia") {
		if s.cfg.Reader.Trivia, err = cmd.Flags().GetBool("trivia"); err != nil {
			return fmt.Errorf("failed to get trivia flag: %w", err)
		}
	}
	noProvider, err := cmd.Flags().GetBool("no-provider")
	if err != nil {
		return fmt.Errorf("failed to get no-provider flag: %w", err)
	}
	if noProvider {
		s.cfg.Reader.Provider = project.ProviderNone
	}
	if err := s.rebuildOptions(); err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), args[0], s.opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if result.Err != nil {
		if err := s.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, "pretty"); err != nil {
			return err
		}
		s.printTimings(cmd.ErrOrStderr())
		return errHasErrors
	}

	out := cmd.OutOrStdout()
	switch format {
	case "sexp":
		err = diagfmt.WriteProgramSexp(out, result.Program)
	case "tree":
		err = diagfmt.FormatTreePretty(out, result.Program, result.FileSet)
	case "json":
		err = diagfmt.FormatTreeJSON(out, result.Program)
	case "yaml":
		err = diagfmt.FormatTreeYAML(out, result.Program)
	}
	if err != nil {
		return err
	}
	s.printTimings(cmd.ErrOrStderr())
	return nil
}
