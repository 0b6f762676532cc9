package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// NoFileID marks spans that belong to no file (run-level diagnostics).
// FileSet.Get returns nil for it.
const NoFileID = ^FileID(0)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
// Content is never mutated after Add; spans produced by the reader index into it.
// When Content was normalised on load, Origin maps its offsets back to disk.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
	Origin  *OffsetMap
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, в байтах
}

// LoadOptions controls the normalisation applied by FileSet.LoadWith.
// Zero value keeps the bytes exactly as they are on disk.
type LoadOptions struct {
	StripBOM      bool
	NormalizeCRLF bool
	NFC           bool
}
