package driver

import (
	"context"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"declgen/internal/decl"
	"declgen/internal/declfile"
	"declgen/internal/diag"
	"declgen/internal/gen"
	"declgen/internal/logger"
	"declgen/internal/observ"
	"declgen/internal/source"
	"declgen/internal/trace"
)

// Options configure one Generate run. Everything is passed explicitly.
type Options struct {
	Config gen.Config
	// Jobs bounds parallel documents; <= 0 means GOMAXPROCS.
	Jobs int
	// OutDir receives one <name>.h per document; empty disables writing.
	OutDir string
	// Cache is optional.
	Cache *Cache
	// Version salts cache keys so a new generator never reads old output.
	Version          string
	WarningsAsErrors bool
	Logger           *zap.Logger
	Progress         ProgressSink
	Timer            *observ.Timer
}

// DocumentResult is the outcome for one input document.
type DocumentResult struct {
	Path    string
	FileID  source.FileID
	HasFile bool
	Text    string
	Bag     *diag.Bag
	// Dropped counts diagnostics cut by the per-document limit.
	Dropped    int
	Cached     bool
	OutputPath string
}

// Failed reports whether the document produced error diagnostics.
func (r *DocumentResult) Failed() bool { return r.Bag.HasErrors() }

// Result holds all documents in input order.
type Result struct {
	FileSet   *source.FileSet
	Documents []DocumentResult
}

// HasErrors reports whether any document failed.
func (r *Result) HasErrors() bool {
	for i := range r.Documents {
		if r.Documents[i].Failed() {
			return true
		}
	}
	return false
}

// Diagnostics merges all document bags, sorted by file and position.
func (r *Result) Diagnostics() *diag.Bag {
	out := diag.NewBag(0)
	for i := range r.Documents {
		out.Merge(r.Documents[i].Bag)
	}
	out.Sort()
	return out
}

type loaded struct {
	format declfile.Format
	id     source.FileID
	err    error
}

// Generate loads every document, generates declarations in parallel and
// optionally writes them to OutDir. Per-document failures are diagnostics;
// the returned error is reserved for cancellation and output I/O.
func Generate(ctx context.Context, paths []string, opts Options) (*Result, error) {
	log := logger.OrNop(opts.Logger)
	progress := opts.Progress
	if progress == nil {
		progress = nopSink{}
	}
	ctx, runSpan := trace.Start(ctx, trace.ScopeDriver, "generate")
	defer runSpan.End("")

	baseDir := ""
	if len(paths) > 0 {
		baseDir = commonDir(paths)
	}
	fileSet := source.NewFileSetWithBase(baseDir)
	for _, path := range paths {
		progress.OnEvent(Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet is not safe for concurrent use, so reading stays sequential.
	doneLoad := opts.Timer.Track("load")
	_, loadSpan := trace.Start(ctx, trace.ScopePhase, "load")
	inputs := make([]loaded, len(paths))
	for i, path := range paths {
		format, id, err := declfile.Read(fileSet, path)
		inputs[i] = loaded{format: format, id: id, err: err}
	}
	loadSpan.End("")
	doneLoad(strconv.Itoa(len(paths)) + " documents")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]DocumentResult, len(paths))

	doneGen := opts.Timer.Track("generate")
	genCtx, genSpan := trace.Start(ctx, trace.ScopePhase, "generate")
	g, gctx := errgroup.WithContext(genCtx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// index i is owned by this goroutine
			results[i] = generateOne(gctx, fileSet, path, inputs[i], opts, log, progress)
			return nil
		})
	}
	err := g.Wait()
	genSpan.End("")
	doneGen("")
	if err != nil {
		return &Result{FileSet: fileSet, Documents: results}, errors.Wrap(err, "generation cancelled")
	}

	res := &Result{FileSet: fileSet, Documents: results}
	if opts.OutDir != "" {
		doneWrite := opts.Timer.Track("write")
		_, writeSpan := trace.Start(ctx, trace.ScopePhase, "write")
		err := writeOutputs(res, opts.OutDir, progress)
		writeSpan.End("")
		doneWrite("")
		if err != nil {
			return res, err
		}
	}
	log.Info("generation finished",
		zap.Int("documents", len(paths)),
		zap.Int("jobs", jobs),
		zap.Bool("errors", res.HasErrors()))
	return res, nil
}

func generateOne(ctx context.Context, fs *source.FileSet, path string, in loaded, opts Options, log *zap.Logger, progress ProgressSink) DocumentResult {
	start := time.Now()
	ctx, span := trace.Start(ctx, trace.ScopeDocument, "doc:"+filepath.Base(path))
	progress.OnEvent(Event{File: path, Stage: StageGenerate, Status: StatusWorking})

	out := DocumentResult{Path: path, FileID: in.id, HasFile: in.err == nil}
	finish := func(status Status, err error) DocumentResult {
		if opts.WarningsAsErrors {
			out.Bag.PromoteWarnings()
		}
		if out.Dropped > 0 {
			truncated := diag.New(diag.SevWarning, diag.GenTruncated, diag.Subject{},
				strconv.Itoa(out.Dropped)+" more diagnostics were dropped")
			if out.HasFile {
				truncated = truncated.WithFile(out.FileID)
			}
			out.Bag.Merge(bagOf(truncated))
		}
		if status == StatusDone && out.Failed() {
			status = StatusError
		}
		elapsed := time.Since(start)
		span.WithExtra("status", string(status)).End("")
		progress.OnEvent(Event{File: path, Stage: StageGenerate, Status: status, Err: err, Elapsed: elapsed})
		log.Debug("document generated",
			zap.String("path", path),
			zap.String("status", string(status)),
			zap.Int("diagnostics", out.Bag.Len()),
			zap.Duration("elapsed", elapsed))
		return out
	}

	if in.err != nil {
		out.Bag = bagOf(documentDiagnostic(in.err, path, 0, false))
		return finish(StatusError, in.err)
	}

	file := fs.Get(in.id)
	var key Digest
	if opts.Cache != nil {
		key = CacheKey(file.Hash, opts.Config.Fingerprint(), opts.Version)
		payload, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			log.Warn("cache read failed", zap.String("path", path), zap.Error(err))
		case ok:
			out.Text = payload.Text
			out.Bag = payload.diagnostics(opts.Config.MaxDiagnostics, in.id)
			out.Dropped = payload.Dropped
			out.Cached = true
			span.Mark("cache hit", key.String())
			log.Debug("cache hit", zap.String("path", path))
			return finish(StatusCached, nil)
		}
	}

	unit, err := declfile.Parse(in.format, file.Content)
	if err != nil {
		out.Bag = bagOf(documentDiagnostic(err, path, in.id, true))
		return finish(StatusError, err)
	}

	docBag := diag.NewBag(opts.Config.MaxDiagnostics)
	texts := make([]string, 0, len(unit.Types))
	for _, td := range unit.Types {
		_, typeSpan := trace.Start(ctx, trace.ScopeType, td.Name)
		res := gen.Emit(td, opts.Config, unit.Facts)
		typeSpan.WithExtra("fragments", strconv.Itoa(len(res.Fragments))).End("")
		texts = append(texts, res.Text())
		for _, d := range res.Bag.Items() {
			docBag.Add(d.WithFile(in.id))
		}
		out.Dropped += res.Bag.Dropped()
	}
	out.Dropped += docBag.Dropped()
	out.Text = strings.Join(texts, "\n")
	out.Bag = docBag

	if opts.Cache != nil {
		payload := toPayload(out.Text, out.Bag)
		payload.Dropped = out.Dropped
		if err := opts.Cache.Put(key, payload); err != nil {
			log.Warn("cache write failed", zap.String("path", path), zap.Error(err))
		}
	}
	return finish(StatusDone, nil)
}

// documentDiagnostic turns a load failure into one diagnostic for the document.
func documentDiagnostic(err error, path string, id source.FileID, hasFile bool) diag.Diagnostic {
	code := diag.IOLoadFileError
	switch {
	case errors.Is(err, decl.ErrInvalidTree):
		code = diag.DclInvalidTree
	case errors.Is(err, declfile.ErrDecode):
		code = diag.IODecodeError
	}
	d := diag.NewError(code, diag.Subject{Type: filepath.Base(path)}, err.Error())
	if hint := errors.FlattenHints(err); hint != "" {
		d = d.WithNote(diag.Subject{}, hint)
	}
	if hasFile {
		d = d.WithFile(id)
	}
	return d
}

func bagOf(d diag.Diagnostic) *diag.Bag {
	bag := diag.NewBag(0)
	bag.Add(d)
	return bag
}

func commonDir(paths []string) string {
	dir := filepath.Dir(paths[0])
	for _, p := range paths[1:] {
		for !strings.HasPrefix(filepath.Dir(p)+string(filepath.Separator), dir+string(filepath.Separator)) {
			parent := filepath.Dir(dir)
			if parent == dir {
				return dir
			}
			dir = parent
		}
	}
	return dir
}
