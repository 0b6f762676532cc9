package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"xtread/internal/diag"
	"xtread/internal/project"
	"xtread/internal/source"
)

// Current schema version - increment when CachedParse changes.
const diskCacheSchemaVersion uint16 = 2

// DiskCache хранит итог разбора файла по ключу
// project.Combine(file hash, config fingerprint). Потокобезопасен.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedParse is the outcome of one parse: enough to replay the
// diagnostic without reading the file again.
type CachedParse struct {
	Schema uint16 `msgpack:"schema"`
	Path   string `msgpack:"path"`
	Data   int    `msgpack:"data"` // число top-level datum

	Failed  bool        `msgpack:"failed"`
	ErrCode uint16      `msgpack:"err_code,omitempty"`
	ErrSpan source.Span `msgpack:"err_span"`
	ErrMsg  string      `msgpack:"err_msg,omitempty"`
	ErrFix  []diag.Fix  `msgpack:"err_fix,omitempty"`
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens the cache rooted at dir, creating it.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Key derives the cache key of file under a config fingerprint.
func Key(file *source.File, fingerprint project.Digest) project.Digest {
	return project.Combine(project.Digest(file.Hash), fingerprint)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// два уровня, чтобы не класть тысячи файлов в один каталог
	return filepath.Join(c.dir, "parse", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload, replacing any previous entry atomically.
func (c *DiskCache) Put(key project.Digest, payload *CachedParse) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or one written by another schema
// version is a miss, not an error.
func (c *DiskCache) Get(key project.Digest, out *CachedParse) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "parse"))
}

// cachedFrom сворачивает результат разбора в запись кэша.
func cachedFrom(res *ParseResult) *CachedParse {
	out := &CachedParse{Path: res.File.Path}
	if res.Err != nil {
		out.Failed = true
		out.ErrCode = uint16(res.Err.Code)
		out.ErrSpan = res.Err.Span
		out.ErrMsg = res.Err.Msg
		out.ErrFix = res.Err.Fixes
		return out
	}
	out.Data = len(res.Program.Top)
	return out
}

// replay восстанавливает ошибку из записи; span переносится на текущий FileID.
func (p *CachedParse) replay(file source.FileID) *diag.Error {
	if !p.Failed {
		return nil
	}
	sp := p.ErrSpan
	sp.File = file
	fixes := make([]diag.Fix, len(p.ErrFix))
	for i, fix := range p.ErrFix {
		edits := make([]diag.FixEdit, len(fix.Edits))
		for j, e := range fix.Edits {
			e.Span.File = file
			edits[j] = e
		}
		fixes[i] = diag.Fix{Title: fix.Title, Edits: edits}
	}
	return &diag.Error{Code: diag.Code(p.ErrCode), Span: sp, Msg: p.ErrMsg, Fixes: fixes}
}
