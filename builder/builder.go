// Package builder annotates a source tree into an output tree.
package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/sourcejump/inspector/graph"
	"github.com/viant/sourcejump/metrics"
	"github.com/viant/sourcejump/plugin"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoSources reports a build that found no source files
	ErrNoSources = errors.New("no sources found")
	// ErrInPlace rejects builds writing over their own input, which would annotate files twice
	ErrInPlace = errors.New("output location overlaps source location")
)

// Result represents a single file outcome
type Result struct {
	Source    string
	Dest      string
	Changed   bool // rewritten by the plugin
	Unchanged bool // skipped, source identical to the last build
}

// Builder transforms every file under a source root and writes it under a destination root.
// Files whose content has not changed since the previous Build are skipped.
type Builder struct {
	plugin      *plugin.Plugin
	fs          afs.Service
	concurrency int
	logger      *slog.Logger
	mux         sync.Mutex
	built       map[string]uint64 // source path -> fingerprint of the last written input
}

// New creates a builder
func New(aPlugin *plugin.Plugin, concurrency int, logger *slog.Logger) *Builder {
	if concurrency <= 0 {
		concurrency = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		plugin:      aPlugin,
		fs:          afs.New(),
		concurrency: concurrency,
		logger:      logger,
		built:       make(map[string]uint64),
	}
}

// Build transforms all files under src into dest
func (b *Builder) Build(ctx context.Context, src, dest string) ([]*Result, error) {
	src, dest, err := roots(src, dest)
	if err != nil {
		return nil, err
	}
	var files []string
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(src, path)
		if rel != "." && b.plugin.Config().Excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", src, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSources, src)
	}
	return b.BuildFiles(ctx, src, dest, files)
}

// BuildFiles transforms the listed files, each located under src, into dest
func (b *Builder) BuildFiles(ctx context.Context, src, dest string, files []string) ([]*Result, error) {
	src, dest, err := roots(src, dest)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, len(files))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(b.concurrency)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			result, err := b.buildFile(ctx, src, dest, file)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (b *Builder) buildFile(ctx context.Context, src, dest, file string) (*Result, error) {
	rel, err := filepath.Rel(src, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("file %s is outside %s", file, src)
	}
	result := &Result{Source: file, Dest: filepath.Join(dest, rel)}
	code, err := b.fs.DownloadWithURL(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	fingerprint, err := graph.Hash(code)
	if err != nil {
		return nil, err
	}
	if b.isBuilt(file, fingerprint) {
		result.Unchanged = true
		metrics.RecordFile(metrics.ResultUnchanged)
		return result, nil
	}
	output, changed, err := b.plugin.Transform(ctx, file, code)
	if err != nil {
		return nil, err
	}
	result.Changed = changed
	if err = b.fs.Upload(ctx, result.Dest, 0o644, bytes.NewReader(output)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", result.Dest, err)
	}
	b.markBuilt(file, fingerprint)
	if changed {
		b.logger.Debug("built", slog.String("file", rel))
	}
	return result, nil
}

// Remove deletes the output of a source file or directory that no longer exists and forgets its fingerprints
func (b *Builder) Remove(ctx context.Context, src, dest, file string) error {
	src, dest, err := roots(src, dest)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(src, file)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("file %s is outside %s", file, src)
	}
	b.Forget(file)
	target := filepath.Join(dest, rel)
	exists, err := b.fs.Exists(ctx, target)
	if err != nil || !exists {
		return err
	}
	if err = b.fs.Delete(ctx, target); err != nil {
		return fmt.Errorf("failed to remove %s: %w", target, err)
	}
	b.logger.Debug("removed", slog.String("file", rel))
	return nil
}

// Forget drops the cached fingerprint of file, or of every file under it, so the next build rewrites it
func (b *Builder) Forget(file string) {
	b.mux.Lock()
	defer b.mux.Unlock()
	prefix := file + string(filepath.Separator)
	for key := range b.built {
		if key == file || strings.HasPrefix(key, prefix) {
			delete(b.built, key)
		}
	}
}

func (b *Builder) isBuilt(file string, fingerprint uint64) bool {
	b.mux.Lock()
	defer b.mux.Unlock()
	prev, ok := b.built[file]
	return ok && prev == fingerprint
}

func (b *Builder) markBuilt(file string, fingerprint uint64) {
	b.mux.Lock()
	defer b.mux.Unlock()
	b.built[file] = fingerprint
}

func roots(src, dest string) (string, string, error) {
	var err error
	if src, err = filepath.Abs(src); err != nil {
		return "", "", err
	}
	if dest, err = filepath.Abs(dest); err != nil {
		return "", "", err
	}
	if src == dest || strings.HasPrefix(dest, src+string(os.PathSeparator)) || strings.HasPrefix(src, dest+string(os.PathSeparator)) {
		return "", "", fmt.Errorf("%w: %s -> %s", ErrInPlace, src, dest)
	}
	return src, dest, nil
}
