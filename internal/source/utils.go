package source

import (
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Каждый выкинутый \r даёт сдвиг на позиции получившегося \n.
func normalizeCRLF(content []byte) ([]byte, []shift) {
	if !slices.Contains(content, '\r') {
		return content, nil
	}

	out := make([]byte, 0, len(content))
	var shifts []shift
	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			shifts = append(shifts, shift{at: uint32(len(out)), delta: int64(len(shifts) + 1)}) // #nosec G115 -- длина проверяется в Add
			out = append(out, '\n')
			i += 2
		} else {
			out = append(out, content[i])
			i++
		}
	}
	if len(shifts) == 0 {
		return content, nil
	}
	return out, shifts
}

func removeBOM(content []byte) ([]byte, []shift) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], []shift{{at: 0, delta: 3}}
	}
	return content, nil
}

// normalizeNFC приводит текст к NFC, если он ещё не в этой форме.
// Сдвиги считаются по сегментам нормализации: смещение внутри
// перестроенного сегмента отображается с точностью до его начала.
func normalizeNFC(content []byte) ([]byte, []shift, bool) {
	if norm.NFC.IsNormal(content) {
		return content, nil, false
	}
	out := norm.NFC.Bytes(content)

	var shifts []shift
	var last int64
	written := 0
	for in := 0; in < len(content); {
		n := norm.NFC.NextBoundary(content[in:], true)
		if n <= 0 {
			n = len(content) - in
		}
		written += len(norm.NFC.Bytes(content[in : in+n]))
		in += n
		if d := int64(in - written); d != last {
			shifts = append(shifts, shift{at: uint32(written), delta: d}) // #nosec G115 -- длина проверяется в Add
			last = d
		}
	}
	return out, shifts, true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- длина проверяется в Add
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: наибольший lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	// hi: индекс последнего \n строго перед off
	if hi < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	startOff := lineIdx[hi] + 1
	return LineCol{Line: uint32(hi + 2), Col: off - startOff + 1} // #nosec G115
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the cleaned absolute form of path with forward slashes.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}

// RelativePath returns path relative to baseDir.
// Paths outside baseDir are returned in absolute form instead of climbing with "..".
func RelativePath(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(absPath), nil
	}
	return filepath.ToSlash(rel), nil
}

// BaseName returns the last element of path.
func BaseName(path string) string {
	return filepath.Base(filepath.FromSlash(path))
}
