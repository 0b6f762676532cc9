package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"xtread/internal/source"
)

// ErrInvalidConfig marks every validation failure of xtread.toml.
var ErrInvalidConfig = errors.New("invalid project config")

// Provider names accepted in [reader].provider.
const (
	ProviderXtlang = "xtlang"
	ProviderNone   = "none"
)

// Config mirrors xtread.toml.
type Config struct {
	Reader ReaderConfig `toml:"reader"`
	Source SourceConfig `toml:"source"`
	Check  CheckConfig  `toml:"check"`
}

type ReaderConfig struct {
	Provider string `toml:"provider"`
	Trivia   bool   `toml:"trivia"`
}

// SourceConfig selects load-time normalisation. The reader sees the
// normalised bytes; File.DiskSpan maps its spans back to the file on disk.
type SourceConfig struct {
	StripBOM      bool `toml:"strip_bom"`
	NormalizeCRLF bool `toml:"normalize_crlf"`
	NFC           bool `toml:"nfc"`
}

type CheckConfig struct {
	Jobs           int      `toml:"jobs"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Extensions     []string `toml:"extensions"`
	Cache          bool     `toml:"cache"`
}

// Manifest is a loaded xtread.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default is the configuration used when no xtread.toml exists.
func Default() Config {
	return Config{
		Reader: ReaderConfig{Provider: ProviderXtlang},
		Source: SourceConfig{StripBOM: true},
		Check: CheckConfig{
			MaxDiagnostics: 100,
			Extensions:     []string{".xtm", ".scm"},
		},
	}
}

// LoadOptions maps [source] onto the FileSet loader.
func (c Config) LoadOptions() source.LoadOptions {
	return source.LoadOptions{
		StripBOM:      c.Source.StripBOM,
		NormalizeCRLF: c.Source.NormalizeCRLF,
		NFC:           c.Source.NFC,
	}
}

// HasExtension reports whether path should be read by a directory check.
func (c Config) HasExtension(path string) bool {
	return slices.Contains(c.Check.Extensions, strings.ToLower(filepath.Ext(path)))
}

// Load reads path on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges; errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	switch c.Reader.Provider {
	case ProviderXtlang, ProviderNone:
	default:
		return fmt.Errorf("[reader].provider must be %q or %q, got %q: %w",
			ProviderXtlang, ProviderNone, c.Reader.Provider, ErrInvalidConfig)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("[check].jobs must not be negative: %w", ErrInvalidConfig)
	}
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must not be negative: %w", ErrInvalidConfig)
	}
	if len(c.Check.Extensions) == 0 {
		return fmt.Errorf("[check].extensions must not be empty: %w", ErrInvalidConfig)
	}
	for _, ext := range c.Check.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("[check].extensions entry %q must look like \".xtm\": %w", ext, ErrInvalidConfig)
		}
	}
	return nil
}

// Discover finds xtread.toml above startDir and loads it.
// ok is false when there is none; the caller then uses Default.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	return LoadManifest(path)
}

// LoadManifest loads an explicit config path.
func LoadManifest(path string) (*Manifest, bool, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}
