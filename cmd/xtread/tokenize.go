package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xtread/internal/diagfmt"
	"xtread/internal/driver"
	"xtread/internal/project"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.xtm|->",
		Short: "Print the token stream of a source file",
		Long:  `Tokenize lexes a source file and prints every token with its leading trivia, stopping at the first lexical error`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|table)")
	cmd.Flags().Bool("no-provider", false, "disable the xtlang token provider")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
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
	noProvider, err := cmd.Flags().GetBool("no-provider")
	if err != nil {
		return fmt.Errorf("failed to get no-provider flag: %w", err)
	}
	if noProvider {
		s.cfg.Reader.Provider = project.ProviderNone
		if err := s.rebuildOptions(); err != nil {
			return err
		}
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], s.opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	case "table":
		err = diagfmt.FormatTokensTable(out, result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if err := s.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, "pretty"); err != nil {
		return err
	}
	s.printTimings(cmd.ErrOrStderr())
	if result.Err != nil {
		return errHasErrors
	}
	return nil
}
