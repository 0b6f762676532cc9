package version

import (
	"testing"

	"github.com/fatih/color"
)

func withNoColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestColoredKeepsText(t *testing.T) {
	withNoColor(t)
	tests := []struct{ in, want string }{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3+meta", "1.2.3+meta"},
		{"nightly", "nightly"},
	}
	orig := Version
	t.Cleanup(func() { Version = orig })
	for _, tt := range tests {
		Version = tt.in
		if got := Colored(); got != tt.want {
			t.Errorf("Colored(%q) = %q", tt.in, got)
		}
	}
}

func TestStringIncludesOverrides(t *testing.T) {
	withNoColor(t)
	origV, origC, origD := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origV, origC, origD })

	Version = "1.2.3"
	GitCommit = "abc123def4567890"
	BuildDate = "2024-01-15T10:30:00Z"
	want := "xtread 1.2.3 (commit abc123def456, built 2024-01-15T10:30:00Z)"
	if got := String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
