package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/regen/internal/ctxlog"
	"github.com/syssam/regen/load"
)

// debounce is how long the watcher waits for writes to settle before
// regenerating.
var debounce = 250 * time.Millisecond

// watch runs run once and again after every change to the job file or the
// inputs it names, until ctx is done. Failed runs are logged.
func watch(ctx context.Context, jobPath string, run func(context.Context) error) error {
	log := ctxlog.FromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	dirs := make(map[string]bool)
	files := make(map[string]bool)

	// track adds the directories of the job inputs. Directories are watched
	// instead of files so that editors replacing files are noticed.
	track := func() {
		paths := []string{jobPath}
		if job, err := load.ReadJob(jobPath); err == nil {
			paths = append(paths, job.Inputs()...)
		}
		for _, p := range paths {
			abs, err := filepath.Abs(p)
			if err != nil {
				log.Warn("cannot resolve path", "path", p, "error", err)
				continue
			}
			files[abs] = true
			dir := filepath.Dir(abs)
			if dirs[dir] {
				continue
			}
			if err := w.Add(dir); err != nil {
				log.Warn("cannot watch directory", "dir", dir, "error", err)
				continue
			}
			dirs[dir] = true
			log.Debug("watching directory", "dir", dir)
		}
	}

	runOnce := func() {
		if err := run(ctx); err != nil {
			log.Error("generation failed", "error", err)
		}
		track()
	}

	runOnce()
	log.Info("watching for changes", "job", jobPath)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || ev.Op == fsnotify.Chmod {
				continue
			}
			log.Debug("input changed", "file", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			log.Info("inputs changed, regenerating")
			runOnce()
		}
	}
}
