package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xtread/internal/driver"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <path>...",
		Short: "Read every source file under the given paths",
		Long: `Check reads every .xtm/.scm file under the given paths in parallel and
reports the first syntax error of each file. Exit status is 1 when any
file has errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max parallel files (0 = from config, then GOMAXPROCS)")
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse parse outcomes from the on-disk cache")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("jobs") {
		if s.cfg.Check.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if cmd.Flags().Changed("cache") {
		if s.cfg.Check.Cache, err = cmd.Flags().GetBool("cache"); err != nil {
			return fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if err := s.rebuildOptions(); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if s.cfg.Check.Cache {
		cache, cerr := driver.OpenDiskCache("xtread")
		if cerr != nil {
			s.note(stderr, "warning: parse cache disabled: %v", cerr)
		} else {
			s.opts.Cache = cache
		}
	}

	// JSON в stdout нельзя смешивать с кадрами TUI
	useTUI := format != "json" && !s.quiet && shouldUseTUI(mode, stderr)

	var result *driver.CheckResult
	if useTUI {
		files, derr := driver.Discover(args, s.opts.Extensions)
		if derr != nil {
			return derr
		}
		result, err = runCheckWithUI(cmd.Context(), stderr, "checking", files, args, s.opts)
	} else {
		result, err = driver.ParseDir(cmd.Context(), args, s.opts)
	}
	if err != nil {
		if driver.IsCanceled(err) {
			return fmt.Errorf("check canceled: %w", err)
		}
		return fmt.Errorf("check failed: %w", err)
	}

	bag := result.Diagnostics(s.cfg.Check.MaxDiagnostics)
	if format == "json" {
		driver.AppendTimings(bag, "check", "", s.timer)
		if err := s.printDiagnostics(cmd.OutOrStdout(), bag, result.FileSet, format); err != nil {
			return err
		}
	} else {
		if err := s.printDiagnostics(stderr, bag, result.FileSet, format); err != nil {
			return err
		}
		s.printTimings(stderr)
	}

	failed := result.Failed()
	cached := 0
	for i := range result.Files {
		if result.Files[i].Cached {
			cached++
		}
	}
	summary := fmt.Sprintf("checked %d files: %d ok, %d failed", len(result.Files), len(result.Files)-failed, failed)
	if cached > 0 {
		summary += fmt.Sprintf(" (%d cached)", cached)
	}
	s.note(stderr, "%s", summary)

	if failed > 0 {
		return errHasErrors
	}
	return nil
}
