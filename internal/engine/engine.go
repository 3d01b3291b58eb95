// Package engine orchestrates a lint run: include resolution, the
// per-file check pipeline, the preprocess/realign/count pass, and the
// whole-project consistency check. Files are processed by a worker
// pool; per-file failures are isolated so one broken file never hides
// findings in the rest of the set.
package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mbund/cse2331-linter/internal/checks"
	"github.com/mbund/cse2331-linter/internal/complexity"
	"github.com/mbund/cse2331-linter/internal/config"
	"github.com/mbund/cse2331-linter/internal/cparse"
	"github.com/mbund/cse2331-linter/internal/errors"
	"github.com/mbund/cse2331-linter/internal/identcase"
	"github.com/mbund/cse2331-linter/internal/includes"
	"github.com/mbund/cse2331-linter/internal/lint"
	"github.com/mbund/cse2331-linter/internal/logging"
	"github.com/mbund/cse2331-linter/internal/preproc"
	"github.com/mbund/cse2331-linter/internal/storage"
)

// ExpanderFactory builds an Expander whose relative includes resolve
// against dir. Swappable so tests (or a future in-process macro
// expander) can replace the subprocess.
type ExpanderFactory func(dir string) preproc.Expander

// Options tune one lint run.
type Options struct {
	// Jobs is the worker count; 0 means one per CPU.
	Jobs int
	// NoCache disables the preprocessor output cache.
	NoCache bool
	// DebugPass additionally runs the DEBUG-predefined expansion pass.
	// Placeholder for symmetry with the release pass; its output does
	// not feed the counter.
	DebugPass bool
}

// Result is the outcome of one run.
type Result struct {
	RunID      string
	Files      []string
	Findings   []lint.Finding
	FileErrors []string
}

// Engine runs the lint pipeline.
type Engine struct {
	cfg         *config.Config
	logger      *logging.Logger
	baseDir     string
	newExpander ExpanderFactory
}

// New creates an Engine. baseDir anchors the cache directory.
func New(cfg *config.Config, logger *logging.Logger, baseDir string) *Engine {
	e := &Engine{
		cfg:     cfg,
		logger:  logger,
		baseDir: baseDir,
	}
	e.newExpander = func(dir string) preproc.Expander {
		return &preproc.CommandExpander{
			Command:   cfg.Preprocessor.Command,
			Args:      cfg.Preprocessor.Args,
			DebugArgs: cfg.Preprocessor.DebugArgs,
			Dir:       dir,
			Timeout:   time.Duration(cfg.Preprocessor.TimeoutMs) * time.Millisecond,
		}
	}
	return e
}

// SetExpanderFactory replaces the subprocess expander.
func (e *Engine) SetExpanderFactory(f ExpanderFactory) {
	e.newExpander = f
}

// Run lints the translation units rooted at roots and returns the
// ordered findings. Fatal errors (unreadable files, include cycles)
// abort before any result is produced, so a partial report is never
// emitted.
func (e *Engine) Run(ctx context.Context, roots []string, opts Options) (*Result, error) {
	runID := uuid.NewString()
	logger := e.logger.With(map[string]interface{}{"runId": runID})

	fileset := make(includes.FileSet)
	resolver := includes.NewResolver()
	for _, root := range roots {
		set, err := resolver.Resolve(ctx, root)
		if err != nil {
			return nil, err
		}
		fileset.Merge(set)
	}
	files := fileset.Paths()
	logger.Debug("Resolved translation units", map[string]interface{}{
		"roots": len(roots),
		"files": len(files),
	})

	var cache *storage.DB
	if e.cfg.Cache.Enabled && !opts.NoCache {
		db, err := storage.Open(e.baseDir, logger)
		if err != nil {
			// a broken cache degrades to uncached operation
			logger.Warn("Preprocessor cache unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			cache = db
			defer func() { _ = cache.Close() }()
		}
	}

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = e.cfg.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	collector := lint.NewCollector()
	var mu sync.Mutex
	var fileErrors []string
	var fatal error

	work := make(chan string)
	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range work {
				if err := e.lintFile(ctx, logger, path, cache, opts, collector); err != nil {
					mu.Lock()
					le, ok := err.(*errors.LintError)
					if ok && !le.IsFatal() {
						fileErrors = append(fileErrors, err.Error())
					} else if fatal == nil {
						fatal = err
					}
					mu.Unlock()
				}
			}
		}()
	}
	for _, path := range files {
		work <- path
	}
	close(work)
	wg.Wait()

	if fatal != nil {
		return nil, fatal
	}

	collector.Add(identcase.ConsistencyFindings(collector.Identifiers())...)

	sort.Strings(fileErrors)
	return &Result{
		RunID:      runID,
		Files:      files,
		Findings:   collector.Findings(),
		FileErrors: fileErrors,
	}, nil
}

// lintFile runs every per-file stage. Returned errors are isolated to
// this file unless marked fatal.
func (e *Engine) lintFile(ctx context.Context, logger *logging.Logger, path string, cache *storage.DB, opts Options, collector *lint.Collector) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.NewPath(errors.ReadError, "cannot read file", path, err)
	}

	parser := cparse.NewParser()
	tree, err := parser.Parse(ctx, source)
	if err != nil {
		return errors.NewPath(errors.ParseError, "cannot parse file", path, err)
	}
	root := tree.RootNode()

	collector.Add(checks.CheckFile(root, source, path)...)

	findings, identifiers, err := identcase.Classify(root, source, path)
	if err != nil {
		return errors.NewPath(errors.ParseError, "identifier query failed", path, err)
	}
	collector.Add(findings...)
	collector.AddIdentifiers(identifiers...)

	return e.complexityPass(ctx, logger, path, source, cache, opts, collector)
}

// complexityPass expands the file, realigns the output to the original
// line numbering, and counts logical lines per function. Preprocessor
// failures skip only this pass; the file's other findings stand.
func (e *Engine) complexityPass(ctx context.Context, logger *logging.Logger, path string, source []byte, cache *storage.DB, opts Options, collector *lint.Collector) error {
	expander := e.newExpander(filepath.Dir(path))

	raw, err := e.expand(ctx, expander, source, false, cache)
	if err != nil {
		return err
	}

	if opts.DebugPass {
		// release/debug dual-pass symmetry; the debug expansion is not
		// yet consumed by any check
		if _, err := e.expand(ctx, expander, source, true, cache); err != nil {
			logger.Warn("Debug pass failed", map[string]interface{}{
				"file":  path,
				"error": err.Error(),
			})
		}
	}

	virtual, malformed := preproc.Realign(raw, preproc.StdinPath)
	if malformed > 0 {
		logger.Warn("Skipped malformed line markers", map[string]interface{}{
			"file":  path,
			"count": malformed,
		})
	}
	if virtual == "" {
		// no stdin-attributed segment: degenerate but not an error
		return nil
	}

	parser := cparse.NewParser()
	virtualSource := []byte(virtual)
	tree, err := parser.Parse(ctx, virtualSource)
	if err != nil {
		return errors.NewPath(errors.ParseError, "cannot parse expanded source", path, err)
	}

	collector.Add(complexity.CheckFile(tree.RootNode(), virtualSource, path)...)
	return nil
}

// expand returns preprocessor output for source, consulting the cache
// first when one is available.
func (e *Engine) expand(ctx context.Context, expander preproc.Expander, source []byte, debug bool, cache *storage.DB) ([]byte, error) {
	invocation := append([]string{e.cfg.Preprocessor.Command}, e.cfg.Preprocessor.Args...)
	if debug {
		invocation = append(invocation, e.cfg.Preprocessor.DebugArgs...)
	}
	key := storage.ContentHash(source, invocation...)

	if cache != nil {
		if out, ok, err := cache.Get(key, debug); err == nil && ok {
			return out, nil
		}
	}

	out, err := expander.Expand(ctx, source, debug)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Put(key, debug, out); err != nil {
			e.logger.Warn("Failed to store cache entry", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return out, nil
}

// ExpandRoots expands doublestar glob patterns in CLI arguments into
// concrete root paths, passing non-pattern arguments through.
func ExpandRoots(args []string) ([]string, error) {
	var roots []string
	seen := make(map[string]struct{})
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			roots = append(roots, p)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matches, err := globRoots(arg)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}
	return roots, nil
}
