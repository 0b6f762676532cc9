package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит хеш: H( content || part1 || part2 ... ).
// Порядок частей должен быть детерминированным.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint hashes the settings that change what a parse produces.
// Cached results are keyed by Combine(file hash, Fingerprint).
func (c Config) Fingerprint() Digest {
	h := sha256.New()
	_, _ = h.Write([]byte("provider=" + c.Reader.Provider + "\n"))
	for _, flag := range []struct {
		name string
		on   bool
	}{
		{"trivia", c.Reader.Trivia},
		{"strip_bom", c.Source.StripBOM},
		{"normalize_crlf", c.Source.NormalizeCRLF},
		{"nfc", c.Source.NFC},
	} {
		if flag.on {
			_, _ = h.Write([]byte(flag.name + "\n"))
		}
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
