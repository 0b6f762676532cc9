package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigName), `
[reader]
provider = "none"
trivia = true

[check]
jobs = 3
extensions = [".xtm"]
`)
	nested := filepath.Join(root, "libs", "core")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	cfg := m.Config
	if cfg.Reader.Provider != ProviderNone || !cfg.Reader.Trivia || cfg.Check.Jobs != 3 {
		t.Fatalf("config = %+v", cfg)
	}
	// не заданные ключи берутся из Default
	if !cfg.Source.StripBOM || cfg.Check.MaxDiagnostics != 100 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if !cfg.HasExtension("a/B.XTM") || cfg.HasExtension("a/b.scm") {
		t.Fatalf("extension filter wrong: %v", cfg.Check.Extensions)
	}
}

func TestDiscoverNone(t *testing.T) {
	// t.TempDir() лежит в /tmp; выше xtread.toml обычно нет
	dir := t.TempDir()
	if _, ok, err := FindConfig(dir); err != nil {
		t.Fatalf("FindConfig: %v", err)
	} else if ok {
		t.Skip("an xtread.toml exists above the temp dir")
	}
	m, ok, err := Discover(dir)
	if err != nil || ok || m != nil {
		t.Fatalf("Discover = %v, %v, %v", m, ok, err)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"unknown provider", "[reader]\nprovider = \"lisp\"\n", true},
		{"negative jobs", "[check]\njobs = -1\n", true},
		{"bad extension", "[check]\nextensions = [\"xtm\"]\n", true},
		{"empty extensions", "[check]\nextensions = []\n", true},
		{"unknown key", "[reader]\nprovder = \"none\"\n", true},
		{"syntax", "[reader\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigName)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tt.invalid {
				t.Fatalf("errors.Is(ErrInvalidConfig) = %v for %v", got, err)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := Default()
	b := Default()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("equal configs differ")
	}
	b.Reader.Provider = ProviderNone
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("provider change not reflected")
	}
	c := Default()
	c.Check.Jobs = 8
	if a.Fingerprint() != c.Fingerprint() {
		t.Fatalf("jobs must not affect parse results")
	}
	if Combine(a.Fingerprint()) == Combine(a.Fingerprint(), c.Fingerprint()) {
		t.Fatalf("Combine ignores parts")
	}
}
