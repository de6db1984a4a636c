package gen

import (
	"context"
	"time"

	"github.com/syssam/regen/gomirror"
	"github.com/syssam/regen/internal/ctxlog"
)

// Generate runs one generation: every target is rewritten, then the Go
// mirror is written when configured. The mirror is skipped in check and
// dry-run modes.
func Generate(ctx context.Context, cfg *Config) (*WriterMetrics, error) {
	if cfg == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := ctxlog.FromContext(ctx)
	start := time.Now()

	w := NewWriter(cfg)
	if err := w.RewriteAll(ctx); err != nil {
		return w.Metrics(), err
	}

	if m := cfg.Mirror; m != nil && cfg.Mode == ModeWrite {
		path, err := gomirror.Write(m.Access, m.Dir, m.Package, m.Registries...)
		if err != nil {
			return w.Metrics(), NewGenerationError("mirror", m.Dir, "write registry mirror", err)
		}
		log.Info("wrote registry mirror", "file", path)
	}

	metrics := w.Metrics()
	log.Info("generation finished",
		"mode", cfg.Mode,
		"rewritten", metrics.FilesRewritten,
		"unchanged", metrics.FilesUnchanged,
		"stale", len(metrics.Stale),
		"elapsed", time.Since(start))
	return metrics, nil
}
