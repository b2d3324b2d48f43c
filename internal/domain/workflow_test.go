package domain

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbforge.dev/pkg/nbforge/internal/domain/blueprints"
	m "nbforge.dev/pkg/nbforge/internal/model"
)

// fakeStore keeps notebooks in memory and counts saves.
type fakeStore struct {
	mu        sync.Mutex
	notebooks map[m.Path]*m.Notebook
	saves     map[m.Path]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		notebooks: make(map[m.Path]*m.Notebook),
		saves:     make(map[m.Path]int),
	}
}

func (s *fakeStore) Load(_ context.Context, path m.Path) (*m.Notebook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nb, ok := s.notebooks[path]
	if !ok {
		return nil, fmt.Errorf("read notebook: %s does not exist", path)
	}

	clone := *nb
	clone.Cells = append([]m.Cell(nil), nb.Cells...)

	return &clone, nil
}

func (s *fakeStore) Save(_ context.Context, path m.Path, nb *m.Notebook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notebooks[path] = nb
	s.saves[path]++

	return nil
}

func (s *fakeStore) Encode(_ *m.Notebook) ([]byte, error) {
	return nil, nil
}

func (s *fakeStore) saveCount(path m.Path) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saves[path]
}

// fakeFS expands every pattern to itself, simulating literal paths.
type fakeFS struct{}

func (fakeFS) Expand(patterns []m.Path) ([]m.Path, error) {
	return patterns, nil
}

func (fakeFS) Watch(ctx context.Context, _ []m.Path, _ func(m.Path)) error {
	<-ctx.Done()
	return ctx.Err()
}

// emptyFS matches nothing.
type emptyFS struct{ fakeFS }

func (emptyFS) Expand(_ []m.Path) ([]m.Path, error) {
	return nil, nil
}

// recordingUI captures what the workflow displays.
type recordingUI struct {
	mu      sync.Mutex
	builds  []string
	reports []m.PatchReport
	catalog []m.CatalogEntry
	viewed  []m.Path
	watches int
}

func (u *recordingUI) DisplayCatalog(_ context.Context, entries []m.CatalogEntry) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.catalog = entries

	return nil
}

func (u *recordingUI) DisplayBuildResult(_ context.Context, name string, _ m.Path, _ int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.builds = append(u.builds, name)
}

func (u *recordingUI) DisplayPatchReport(_ context.Context, report m.PatchReport, _ bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.reports = append(u.reports, report)
}

func (u *recordingUI) DisplayNotebook(_ context.Context, path m.Path, _ *m.Notebook) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.viewed = append(u.viewed, path)

	return nil
}

func (u *recordingUI) DisplayWatchStart(_ context.Context, _ int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.watches++
}

func (u *recordingUI) watchCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.watches
}

func newTestWorkflow(store *fakeStore) (Workflow, *recordingUI) {
	ui := &recordingUI{}
	w := NewWorkflow(store, fakeFS{}, ui, NewAssembler(), NewPatcher())

	return w, ui
}

func TestWorkflow_BuildAllBlueprints(t *testing.T) {
	store := newFakeStore()
	w, ui := newTestWorkflow(store)

	err := w.Build(context.Background(), BuildArgs{OutputDir: "out"})
	require.NoError(t, err)

	require.Len(t, store.notebooks, 2)
	assert.Contains(t, store.notebooks, m.Path("out/GeoSafeMonitor.ipynb"))
	assert.Contains(t, store.notebooks, m.Path("out/GeoSafeMonitor_LandUseChange.ipynb"))

	assert.Equal(t, []string{"vegetation-monitor", "land-use-change"}, ui.builds)
}

func TestWorkflow_BuildSingleBlueprint(t *testing.T) {
	store := newFakeStore()
	w, _ := newTestWorkflow(store)

	err := w.Build(context.Background(), BuildArgs{
		Names:     []string{"vegetation-monitor"},
		OutputDir: ".",
	})
	require.NoError(t, err)

	require.Len(t, store.notebooks, 1)
	assert.Contains(t, store.notebooks, m.Path("GeoSafeMonitor.ipynb"))
}

func TestWorkflow_BuildUnknownBlueprint(t *testing.T) {
	store := newFakeStore()
	w, _ := newTestWorkflow(store)

	err := w.Build(context.Background(), BuildArgs{Names: []string{"nonsense"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown blueprint "nonsense"`)
	assert.Empty(t, store.notebooks)
}

func TestWorkflow_PatchSavesOnlyWhenChanged(t *testing.T) {
	store := newFakeStore()
	w, ui := newTestWorkflow(store)

	path := m.Path("GeoSafeMonitor_NDVI.ipynb")
	store.notebooks[path] = ndviNotebook()

	args := PatchArgs{
		Patterns: []m.Path{path},
		Set:      blueprints.NDVIEnrichment(),
	}

	require.NoError(t, w.Patch(context.Background(), args))
	assert.Equal(t, 1, store.saveCount(path))

	// Second pass finds every marker present and must not save again.
	require.NoError(t, w.Patch(context.Background(), args))
	assert.Equal(t, 1, store.saveCount(path))

	require.Len(t, ui.reports, 2)
	assert.Equal(t, 5, ui.reports[0].Applied())
	assert.Equal(t, 5, ui.reports[1].Skipped())
	assert.Equal(t, path, ui.reports[0].Notebook)
}

func TestWorkflow_PatchNoMatches(t *testing.T) {
	store := newFakeStore()
	ui := &recordingUI{}
	w := NewWorkflow(store, emptyFS{}, ui, NewAssembler(), NewPatcher())

	err := w.Patch(context.Background(), PatchArgs{
		Patterns: []m.Path{"missing/*.ipynb"},
		Set:      blueprints.NDVIEnrichment(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no notebooks match")
}

func TestWorkflow_PatchStructuralMismatch(t *testing.T) {
	store := newFakeStore()
	w, _ := newTestWorkflow(store)

	path := m.Path("short.ipynb")
	store.notebooks[path] = &m.Notebook{Cells: make([]m.Cell, 2)}

	err := w.Patch(context.Background(), PatchArgs{
		Patterns: []m.Path{path},
		Set:      blueprints.NDVIEnrichment(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
	assert.Zero(t, store.saveCount(path))
}

func TestWorkflow_PatchWatchStopsOnCancel(t *testing.T) {
	store := newFakeStore()
	w, ui := newTestWorkflow(store)

	path := m.Path("GeoSafeMonitor_NDVI.ipynb")
	store.notebooks[path] = ndviNotebook()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Patch(ctx, PatchArgs{
			Patterns: []m.Path{path},
			Set:      blueprints.NDVIEnrichment(),
			Watch:    true,
		})
	}()

	require.Eventually(t, func() bool {
		return ui.watchCount() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()

	// Cancellation is a clean shutdown, not an error.
	require.NoError(t, <-done)
}

func TestWorkflow_List(t *testing.T) {
	store := newFakeStore()
	w, ui := newTestWorkflow(store)

	require.NoError(t, w.List(context.Background()))

	require.Len(t, ui.catalog, 3)
	assert.Equal(t, m.KindBlueprint, ui.catalog[0].Kind)
	assert.Equal(t, m.KindBlueprint, ui.catalog[1].Kind)
	assert.Equal(t, m.KindPatchSet, ui.catalog[2].Kind)
	assert.Equal(t, "ndvi-enrichment", ui.catalog[2].Name)
	assert.Equal(t, "cells 5, 7", ui.catalog[2].Target)
}

func TestWorkflow_View(t *testing.T) {
	store := newFakeStore()
	w, ui := newTestWorkflow(store)

	path := m.Path("GeoSafeMonitor.ipynb")
	store.notebooks[path] = ndviNotebook()

	require.NoError(t, w.View(context.Background(), ViewArgs{Notebook: path}))
	assert.Equal(t, []m.Path{path}, ui.viewed)

	err := w.View(context.Background(), ViewArgs{Notebook: "missing.ipynb"})
	require.Error(t, err)
}
