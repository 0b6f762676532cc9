package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"xtread/internal/driver"
	"xtread/internal/observ"
	"xtread/internal/project"
)

// configError marks failures to load xtread.toml (reported as PRJ5001).
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }

func (e configError) Unwrap() error { return e.err }

// session is what every command needs: the effective config, driver
// options built from it and the global output flags.
type session struct {
	cfg        project.Config
	configPath string // "" when defaults are used
	opts       driver.Options
	color      string
	quiet      bool
	timer      *observ.Timer
}

func newSession(cmd *cobra.Command) (*session, error) {
	pf := cmd.Root().PersistentFlags()

	configPath, err := pf.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, usedPath, err := loadConfig(configPath)
	if err != nil {
		return nil, configError{err: err}
	}

	maxDiagnostics, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics > 0 {
		cfg.Check.MaxDiagnostics = maxDiagnostics
	}
	colorFlag, err := pf.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	quiet, err := pf.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	s := &session{cfg: cfg, configPath: usedPath, color: colorFlag, quiet: quiet}
	if timings {
		s.timer = observ.NewTimer()
	}
	if err := s.rebuildOptions(); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuildOptions пересобирает driver.Options после правок cfg флагами команды.
func (s *session) rebuildOptions() error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	opts, err := driver.OptionsFromConfig(s.cfg)
	if err != nil {
		return err
	}
	opts.Timer = s.timer
	s.opts = opts
	return nil
}

func loadConfig(explicit string) (project.Config, string, error) {
	if explicit != "" {
		cfg, err := project.Load(explicit)
		return cfg, explicit, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return project.Config{}, "", fmt.Errorf("failed to get working directory: %w", err)
	}
	m, ok, err := project.Discover(wd)
	if err != nil {
		return project.Config{}, "", err
	}
	if !ok {
		return project.Default(), "", nil
	}
	return m.Config, m.Path, nil
}

// useColor решает, красить ли вывод в w.
func (s *session) useColor(w io.Writer) bool {
	switch s.color {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(w)
}
