package driver

import (
	"fmt"

	"xtread/internal/observ"
	"xtread/internal/project"
	"xtread/internal/provider"
	"xtread/internal/provider/xtlang"
	"xtread/internal/source"
)

// Options drives every entry point of the package.
type Options struct {
	Provider       provider.Provider
	KeepTrivia     bool
	Load           source.LoadOptions
	MaxDiagnostics int
	// Jobs bounds ParseDir workers; 0 means GOMAXPROCS.
	Jobs       int
	Extensions []string

	// Cache is consulted by ParseDir when non-nil. Fingerprint must change
	// whenever a setting above would change the parse outcome.
	Cache       *DiskCache
	Fingerprint project.Digest

	Timer    *observ.Timer
	Progress ProgressSink
}

// ProviderByName maps [reader].provider onto an implementation.
func ProviderByName(name string) (provider.Provider, error) {
	switch name {
	case project.ProviderXtlang:
		return xtlang.New(), nil
	case project.ProviderNone, "":
		return provider.Nop, nil
	default:
		return nil, fmt.Errorf("unknown token provider %q", name)
	}
}

// OptionsFromConfig builds Options from a validated project config.
// Cache and progress wiring are left to the caller.
func OptionsFromConfig(cfg project.Config) (Options, error) {
	p, err := ProviderByName(cfg.Reader.Provider)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Provider:       p,
		KeepTrivia:     cfg.Reader.Trivia,
		Load:           cfg.LoadOptions(),
		MaxDiagnostics: cfg.Check.MaxDiagnostics,
		Jobs:           cfg.Check.Jobs,
		Extensions:     cfg.Check.Extensions,
		Fingerprint:    cfg.Fingerprint(),
	}, nil
}
