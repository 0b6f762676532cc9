package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	for _, d := range []string{baseDir, otherDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}

	target := filepath.Join(otherDir, "synth.xtm")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "libs", "core", "audio_dsp.xtm")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := "libs/core/audio_dsp.xtm"; got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestNormalizeOptions(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	src := append(append([]byte{}, bom...), []byte("(a\r\nb)\r")...)

	out, flags, origin := Normalize(src, LoadOptions{})
	if string(out) != string(src) || flags != 0 || origin != nil {
		t.Fatalf("zero options must keep bytes, got %q flags=%b", out, flags)
	}

	out, flags, _ = Normalize(src, LoadOptions{StripBOM: true, NormalizeCRLF: true})
	if string(out) != "(a\nb)\r" {
		t.Fatalf("unexpected normalised content %q", out)
	}
	if flags&FileHadBOM == 0 || flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", flags)
	}

	// e + combining acute → é
	out, flags, _ = Normalize([]byte("\"é\""), LoadOptions{NFC: true})
	if string(out) != "\"é\"" || flags&FileNormalizedNFC == 0 {
		t.Fatalf("expected NFC composition, got %q flags=%b", out, flags)
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("(a\n b)\n\n")
	idx := buildLineIndex(content)
	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам \n принадлежит первой строке
		{3, LineCol{2, 1}},
		{5, LineCol{2, 3}},
		{7, LineCol{3, 1}},
		{8, LineCol{4, 1}},
	}
	for _, c := range cases {
		if got := toLineCol(idx, c.off); got != c.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", c.off, got, c.want)
		}
	}
}
