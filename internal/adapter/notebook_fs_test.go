package adapter

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "nbforge.dev/pkg/nbforge/internal/model"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
}

func TestNotebookFS_ExpandLiteralPassesThrough(t *testing.T) {
	fs := NewLocalNotebookFS()

	// Literal paths are not checked for existence; patching reports the
	// read error instead.
	paths, err := fs.Expand([]m.Path{"does/not/exist.ipynb"})
	require.NoError(t, err)
	assert.Equal(t, []m.Path{"does/not/exist.ipynb"}, paths)
}

func TestNotebookFS_ExpandGlob(t *testing.T) {
	fs := NewLocalNotebookFS()
	dir := t.TempDir()

	touch(t, filepath.Join(dir, "b.ipynb"))
	touch(t, filepath.Join(dir, "a.ipynb"))
	touch(t, filepath.Join(dir, "notes.txt"))

	paths, err := fs.Expand([]m.Path{m.Path(filepath.Join(dir, "*.ipynb"))})
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, m.Path(filepath.Join(dir, "a.ipynb")), paths[0])
	assert.Equal(t, m.Path(filepath.Join(dir, "b.ipynb")), paths[1])
}

func TestNotebookFS_ExpandRecursiveGlob(t *testing.T) {
	fs := NewLocalNotebookFS()
	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o750))
	touch(t, filepath.Join(dir, "top.ipynb"))
	touch(t, filepath.Join(dir, "sub", "nested.ipynb"))

	paths, err := fs.Expand([]m.Path{m.Path(filepath.Join(dir, "**", "*.ipynb"))})
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestNotebookFS_ExpandDeduplicates(t *testing.T) {
	fs := NewLocalNotebookFS()
	dir := t.TempDir()

	target := filepath.Join(dir, "nb.ipynb")
	touch(t, target)

	paths, err := fs.Expand([]m.Path{
		m.Path(target),
		m.Path(filepath.Join(dir, "*.ipynb")),
	})
	require.NoError(t, err)
	assert.Equal(t, []m.Path{m.Path(target)}, paths)
}

func TestNotebookFS_ExpandBadPattern(t *testing.T) {
	fs := NewLocalNotebookFS()

	_, err := fs.Expand([]m.Path{"[broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad pattern")
}

func TestNotebookFS_WatchReportsWrites(t *testing.T) {
	fs := NewLocalNotebookFS()
	dir := t.TempDir()

	target := filepath.Join(dir, "nb.ipynb")
	touch(t, target)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		mu      sync.Mutex
		changes []m.Path
	)

	done := make(chan error, 1)
	go func() {
		done <- fs.Watch(ctx, []m.Path{m.Path(target)}, func(path m.Path) {
			mu.Lock()
			changes = append(changes, path)
			mu.Unlock()
			cancel()
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte(`{"cells":[]}`), 0o644))

	err := <-done
	require.ErrorIs(t, err, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, changes)
	assert.Equal(t, m.Path(target), changes[0])
}

func TestNotebookFS_WatchIgnoresOtherFiles(t *testing.T) {
	fs := NewLocalNotebookFS()
	dir := t.TempDir()

	target := filepath.Join(dir, "nb.ipynb")
	other := filepath.Join(dir, "other.ipynb")
	touch(t, target)
	touch(t, other)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var (
		mu      sync.Mutex
		changes []m.Path
	)

	done := make(chan error, 1)
	go func() {
		done <- fs.Watch(ctx, []m.Path{m.Path(target)}, func(path m.Path) {
			mu.Lock()
			changes = append(changes, path)
			mu.Unlock()
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte(`{"cells":[]}`), 0o644))

	err := <-done
	require.ErrorIs(t, err, context.DeadlineExceeded)

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, changes)
}
