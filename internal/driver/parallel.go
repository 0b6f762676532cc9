package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"xtread/internal/cst"
	"xtread/internal/diag"
	"xtread/internal/project"
	"xtread/internal/source"
	"xtread/internal/trace"
)

// FileResult is the outcome of one file of a check run.
type FileResult struct {
	Path   string
	FileID source.FileID
	// Data is the number of top-level data read.
	Data int
	Bag  *diag.Bag
	Err  *diag.Error
	// Cached is true when the outcome came from DiskCache; Program is nil then.
	Cached  bool
	Program *cst.Program
}

// Failed reports whether the file produced an error-severity diagnostic.
func (r *FileResult) Failed() bool { return r.Bag != nil && r.Bag.HasErrors() }

// CheckResult collects the per-file results in discovery order.
type CheckResult struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Diagnostics merges the per-file bags in file order, stopping at limit.
func (r *CheckResult) Diagnostics(limit int) *diag.Bag {
	out := diag.NewBag(limit)
	for i := range r.Files {
		if r.Files[i].Bag == nil {
			// файл не успели обработать до отмены
			continue
		}
		for _, d := range r.Files[i].Bag.Items() {
			if !out.Add(d) {
				return out
			}
		}
	}
	return out
}

// Failed counts files with errors.
func (r *CheckResult) Failed() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Failed() {
			n++
		}
	}
	return n
}

// Discover expands paths into the list of files to read. Directories are
// walked for files with one of exts (case-insensitive), skipping hidden
// subdirectories; explicit file arguments are kept whatever their extension.
// The result keeps argument order, sorts each directory and drops duplicates.
func Discover(paths []string, exts []string) ([]string, error) {
	seen := make(map[string]struct{}, len(paths))
	var out []string
	add := func(p string) {
		key := filepath.Clean(p)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}

	for _, root := range paths {
		if root == StdinName {
			add(root)
			continue
		}
		info, err := os.Stat(root)
		if err != nil {
			// несуществующий файл всё равно попадёт в отчёт как IO4001
			add(root)
			continue
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		var found []string
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
		slices.Sort(found)
		for _, p := range found {
			add(p)
		}
	}
	return out, nil
}

// ParseDir reads every file under paths in parallel, bounded by opts.Jobs.
// Each worker owns its lexer, parser and builder; only the FileSet is shared.
// Reader and load errors are reported per file; the returned error is
// discovery failure or ctx cancellation.
func ParseDir(ctx context.Context, paths []string, opts Options) (*CheckResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "check")
	defer span.End("")

	doneDiscover := opts.Timer.Track("discover")
	files, err := Discover(paths, opts.Extensions)
	doneDiscover(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}
	span.WithExtra("files", fmt.Sprint(len(files)))

	fileSet := source.NewFileSetWithBase(baseDirFor(paths))
	res := &CheckResult{FileSet: fileSet, Files: make([]FileResult, len(files))}
	if len(files) == 0 {
		return res, nil
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// воркерам таймер не передаём: фазы сотен файлов только засорят сводку
	worker := opts
	worker.Timer = nil

	doneCheck := opts.Timer.Track("parse")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// индекс i уникален для горутины, мьютекс не нужен
			res.Files[i] = checkFile(gctx, fileSet, path, worker)
			return nil
		})
	}
	err = g.Wait()
	doneCheck(fmt.Sprintf("%d files, %d failed", len(files), res.Failed()))
	if err != nil {
		return res, err
	}
	return res, nil
}

func checkFile(ctx context.Context, fileSet *source.FileSet, path string, opts Options) FileResult {
	started := time.Now()
	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "file:"+path)
	defer span.End("")

	out := FileResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})

	id, err := loadInto(ctx, fileSet, path, opts)
	if err != nil {
		var d diag.Diagnostic
		out.FileID, d = loadFailure(fileSet, path, err)
		out.Bag.Add(d)
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return out
	}
	out.FileID = id
	file := fileSet.Get(id)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: out.Bag})

	var key project.Digest
	if opts.Cache != nil {
		key = Key(file, opts.Fingerprint)
		var cached CachedParse
		hit, cerr := opts.Cache.Get(key, &cached)
		switch {
		case cerr != nil:
			diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: id},
				"parse cache unreadable, reparsing: "+cerr.Error()).Emit()
		case hit:
			out.Cached = true
			out.Data = cached.Data
			if out.Err = cached.replay(id); out.Err != nil {
				out.Err.Report(reporter)
			}
			span.WithExtra("cache", "hit")
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusCached, Err: errOrNil(out.Err), Elapsed: time.Since(started)})
			return out
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	parsed := parseFile(ctx, fileSet, file, opts, out.Bag)
	out.Err = parsed.Err
	out.Program = parsed.Program
	if parsed.Program != nil {
		out.Data = len(parsed.Program.Top)
	}

	if opts.Cache != nil && !out.Err.Internal() {
		if perr := opts.Cache.Put(key, cachedFrom(parsed)); perr != nil {
			diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: id},
				"failed to write parse cache: "+perr.Error()).Emit()
		}
	}

	// предупреждения кэша пишутся после ошибки разбора, выводим в порядке исходника
	out.Bag.Sort()
	status := StatusDone
	if out.Err != nil {
		status = StatusError
	}
	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: status, Err: errOrNil(out.Err), Elapsed: time.Since(started)})
	return out
}

// errOrNil не даёт typed-nil *diag.Error превратиться в ненулевой error.
func errOrNil(e *diag.Error) error {
	if e == nil {
		return nil
	}
	return e
}

// baseDirFor: относительные пути в выводе считаются от единственного
// каталога-аргумента, иначе от рабочего каталога.
func baseDirFor(paths []string) string {
	if len(paths) == 1 {
		if info, err := os.Stat(paths[0]); err == nil && info.IsDir() {
			return paths[0]
		}
	}
	return ""
}

// IsCanceled reports whether err came from ctx cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
