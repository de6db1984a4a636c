package gen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/regen"
	"github.com/syssam/regen/internal/ctxlog"
	"github.com/syssam/regen/rewriter"
)

// Writer rewrites the generated regions of every target file with
// parallel execution.
type Writer struct {
	cfg     *Config
	workers int

	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks the outcome of a run.
type WriterMetrics struct {
	FilesRewritten int
	FilesUnchanged int
	TotalBytes     int64
	// Stale lists the files that would change, in check and dry-run modes.
	Stale []string
}

// NewWriter creates a writer for cfg.
func NewWriter(cfg *Config) *Writer {
	return &Writer{
		cfg:     cfg,
		workers: cfg.workers(),
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the run metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// RewriteAll rewrites all targets in parallel. In ModeCheck it returns a
// *regen.StaleError naming every file that is out of date.
func (w *Writer) RewriteAll(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)

	for _, t := range w.cfg.Targets {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.rewriteFile(ctx, t)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	w.mu.Lock()
	slices.Sort(w.metrics.Stale)
	stale := slices.Clone(w.metrics.Stale)
	w.mu.Unlock()

	if w.cfg.Mode == ModeCheck && len(stale) > 0 {
		return &regen.StaleError{Files: stale}
	}
	return nil
}

// rewriteFile rewrites a single target.
func (w *Writer) rewriteFile(ctx context.Context, t Target) error {
	log := ctxlog.FromContext(ctx)
	path := w.cfg.Path(t.File)

	src, err := os.ReadFile(path)
	if err != nil {
		return NewRewriteError(path, "", err)
	}

	out, err := rewriter.Apply(string(src), rewriter.Options{Version: w.cfg.Version}, t.Rewriters...)
	if err != nil {
		var (
			me *rewriter.MarkerError
			pe *rewriter.PatternError
		)
		switch {
		case errors.As(err, &me):
			return NewRewriteError(path, me.Pattern, err)
		case errors.As(err, &pe):
			return NewRewriteError(path, pe.Pattern, err)
		}
		return NewRewriteError(path, "", err)
	}

	if out == string(src) {
		log.Debug("file up to date", "file", path)
		w.mu.Lock()
		w.metrics.FilesUnchanged++
		w.mu.Unlock()
		return nil
	}

	switch w.cfg.Mode {
	case ModeCheck:
		log.Warn("file is stale", "file", path)
	case ModeDryRun:
		log.Info("would rewrite file", "file", path, "bytes", len(out))
	default:
		if err := writeFile(path, []byte(out)); err != nil {
			return NewRewriteError(path, "", err)
		}
		log.Info("rewrote file", "file", path, "regions", len(t.Rewriters))
	}

	w.mu.Lock()
	if w.cfg.Mode == ModeWrite {
		w.metrics.FilesRewritten++
		w.metrics.TotalBytes += int64(len(out))
	} else {
		w.metrics.Stale = append(w.metrics.Stale, path)
	}
	w.mu.Unlock()
	return nil
}

// writeFile replaces path with data through a temporary file in the same
// directory, keeping the original permissions.
func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
