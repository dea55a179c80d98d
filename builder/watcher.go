package builder

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/viant/sourcejump/metrics"
)

// DefaultDebounce is how long the watcher waits for more changes before rebuilding
const DefaultDebounce = 100 * time.Millisecond

// Watcher rebuilds changed files of a source tree until its context is cancelled
type Watcher struct {
	builder  *Builder
	src      string
	dest     string
	debounce time.Duration
	logger   *slog.Logger
	// OnBuild, when set, receives every batch result
	OnBuild func(results []*Result, err error)
}

// NewWatcher creates a watcher over src writing into dest
func NewWatcher(builder *Builder, src, dest string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{builder: builder, src: src, dest: dest, debounce: debounce, logger: builder.logger}
}

// Run performs an initial build, then watches src; it returns when ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	src, dest, err := roots(w.src, w.dest)
	if err != nil {
		return err
	}
	w.src, w.dest = src, dest
	results, err := w.builder.Build(ctx, src, dest)
	w.notify(results, err)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	done := metrics.WatchStarted()
	defer done()

	if err = w.addRecursive(watcher, src); err != nil {
		return err
	}
	w.logger.Info("watching", slog.String("src", src), slog.String("dest", dest))

	pending := map[string]bool{}
	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			rel, _ := filepath.Rel(src, event.Name)
			if w.builder.plugin.Config().Excluded(rel) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(watcher, event.Name)
					continue
				}
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				delete(pending, event.Name)
				if err := w.builder.Remove(ctx, src, dest, event.Name); err != nil {
					w.logger.Warn("failed to remove output", slog.String("file", rel), slog.Any("error", err))
				}
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", slog.Any("error", err))
		case <-timerC:
			timer, timerC = nil, nil
			files := make([]string, 0, len(pending))
			for file := range pending {
				if _, err := os.Stat(file); err == nil {
					files = append(files, file)
				}
			}
			pending = map[string]bool{}
			if len(files) == 0 {
				continue
			}
			sort.Strings(files)
			results, err := w.builder.BuildFiles(ctx, src, dest, files)
			if err != nil {
				w.logger.Error("rebuild failed", slog.Any("error", err))
			}
			w.notify(results, err)
		}
	}
}

func (w *Watcher) notify(results []*Result, err error) {
	if w.OnBuild != nil {
		w.OnBuild(results, err)
	}
}

func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(w.src, path)
		if rel != "." && w.builder.plugin.Config().Excluded(rel) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
