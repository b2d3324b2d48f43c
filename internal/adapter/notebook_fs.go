package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	m "nbforge.dev/pkg/nbforge/internal/model"
)

// watchSettle is how long a notebook must stay quiet before a change is
// reported, coalescing the editor write/rename bursts fsnotify sees.
const watchSettle = 200 * time.Millisecond

// NotebookFS resolves notebook path patterns and watches notebooks for
// changes.
type NotebookFS interface {
	// Expand resolves doublestar glob patterns to a sorted, deduplicated
	// list of paths. A pattern without glob metacharacters passes through
	// as a literal path.
	Expand(patterns []m.Path) ([]m.Path, error)

	// Watch reports changes to any of the given notebooks until the
	// context is cancelled.
	Watch(ctx context.Context, paths []m.Path, onChange func(m.Path)) error
}

// LocalNotebookFS is the concrete NotebookFS backed by the local
// filesystem.
type LocalNotebookFS struct{}

// NewLocalNotebookFS constructs a LocalNotebookFS.
func NewLocalNotebookFS() *LocalNotebookFS {
	return &LocalNotebookFS{}
}

// Expand resolves each pattern with doublestar and merges the results.
func (fs *LocalNotebookFS) Expand(patterns []m.Path) ([]m.Path, error) {
	seen := make(map[m.Path]struct{})
	paths := make([]m.Path, 0, len(patterns))

	for _, pattern := range patterns {
		matches, err := fs.expandOne(string(pattern))
		if err != nil {
			return nil, err
		}

		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}

			seen[match] = struct{}{}
			paths = append(paths, match)
		}
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths, nil
}

func (fs *LocalNotebookFS) expandOne(pattern string) ([]m.Path, error) {
	if !hasGlobMeta(pattern) {
		return []m.Path{m.Path(pattern)}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	paths := make([]m.Path, 0, len(matches))
	for _, match := range matches {
		paths = append(paths, m.Path(match))
	}

	return paths, nil
}

func hasGlobMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}

	return false
}

// Watch registers the parent directories of the given paths with fsnotify
// and invokes onChange for writes to watched notebooks, debounced per
// path. It blocks until the context is cancelled.
func (fs *LocalNotebookFS) Watch(ctx context.Context, paths []m.Path, onChange func(m.Path)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	defer func() {
		if err := watcher.Close(); err != nil {
			slog.Warn("failed to close watcher", "error", err)
		}
	}()

	watched := make(map[string]m.Path, len(paths))
	dirs := make(map[string]struct{})

	for _, path := range paths {
		abs, err := filepath.Abs(string(path))
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}

		watched[abs] = path
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	pending := make(map[string]*time.Timer)

	defer func() {
		for _, timer := range pending {
			timer.Stop()
		}
	}()

	fired := make(chan string)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			if _, ok := watched[abs]; !ok {
				continue
			}

			if timer, ok := pending[abs]; ok {
				timer.Reset(watchSettle)
				continue
			}

			pending[abs] = time.AfterFunc(watchSettle, func() {
				select {
				case fired <- abs:
				case <-ctx.Done():
				}
			})

		case abs := <-fired:
			delete(pending, abs)
			onChange(watched[abs])

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("watch error", "error", err)
		}
	}
}
