package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"nbforge.dev/pkg/nbforge/internal/adapter"
	"nbforge.dev/pkg/nbforge/internal/controller"
	"nbforge.dev/pkg/nbforge/internal/domain/blueprints"
	m "nbforge.dev/pkg/nbforge/internal/model"
)

// BuildArgs contains the arguments for assembling notebooks.
type BuildArgs struct {
	Names     []string // blueprint names, empty means all
	OutputDir m.Path
}

// PatchArgs contains the arguments for a patch pass.
type PatchArgs struct {
	Patterns []m.Path
	Set      m.PatchSet
	Watch    bool
}

// ViewArgs contains the arguments for inspecting a notebook.
type ViewArgs struct {
	Notebook m.Path
}

// Workflow is the use-case layer behind the CLI commands.
type Workflow interface {
	Build(ctx context.Context, args BuildArgs) error
	Patch(ctx context.Context, args PatchArgs) error
	List(ctx context.Context) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.NotebookStore
	adapter.NotebookFS
	Assembler
	Patcher

	ui controller.UI
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	store adapter.NotebookStore,
	fs adapter.NotebookFS,
	ui controller.UI,
	assembler Assembler,
	patcher Patcher,
) Workflow {
	return &workflow{
		NotebookStore: store,
		NotebookFS:    fs,
		Assembler:     assembler,
		Patcher:       patcher,
		ui:            ui,
	}
}

type buildResult struct {
	name   string
	target m.Path
	cells  int
}

// Build assembles the requested blueprints concurrently and writes each to
// its blueprint filename under the output directory.
func (w *workflow) Build(ctx context.Context, args BuildArgs) error {
	selected, err := selectBlueprints(args.Names)
	if err != nil {
		return err
	}

	results := make([]buildResult, len(selected))

	g, gctx := errgroup.WithContext(ctx)

	for i, bp := range selected {
		g.Go(func() error {
			nb, err := w.Assemble(gctx, bp)
			if err != nil {
				return fmt.Errorf("assemble %s: %w", bp.Name, err)
			}

			target := m.Path(filepath.Join(string(args.OutputDir), bp.Filename))
			if err := w.Save(gctx, target, nb); err != nil {
				return fmt.Errorf("save %s: %w", bp.Name, err)
			}

			slog.Info("built notebook", "blueprint", bp.Name, "target", string(target), "cells", len(nb.Cells))
			results[i] = buildResult{name: bp.Name, target: target, cells: len(nb.Cells)}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, result := range results {
		w.ui.DisplayBuildResult(ctx, result.name, result.target, result.cells)
	}

	return nil
}

func selectBlueprints(names []string) ([]blueprints.Blueprint, error) {
	if len(names) == 0 {
		return blueprints.All(), nil
	}

	selected := make([]blueprints.Blueprint, 0, len(names))

	for _, name := range names {
		bp, err := blueprints.Find(name)
		if err != nil {
			return nil, err
		}

		selected = append(selected, bp)
	}

	return selected, nil
}

// Patch applies the patch set to every notebook matching the patterns.
// With Watch set it then keeps re-applying the set whenever a matched
// notebook changes on disk; idempotence makes the re-runs safe.
func (w *workflow) Patch(ctx context.Context, args PatchArgs) error {
	paths, err := w.Expand(args.Patterns)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		return fmt.Errorf("no notebooks match %v", args.Patterns)
	}

	for _, path := range paths {
		if err := w.patchOne(ctx, path, args.Set); err != nil {
			return err
		}
	}

	if !args.Watch {
		return nil
	}

	w.ui.DisplayWatchStart(ctx, len(paths))

	err = w.Watch(ctx, paths, func(path m.Path) {
		if err := w.patchOne(ctx, path, args.Set); err != nil {
			slog.Error("re-patch failed", "notebook", string(path), "error", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func (w *workflow) patchOne(ctx context.Context, path m.Path, set m.PatchSet) error {
	nb, err := w.Load(ctx, path)
	if err != nil {
		return err
	}

	report, err := w.Apply(ctx, nb, set)
	report.Notebook = path

	if err != nil {
		return fmt.Errorf("patch %s: %w", path, err)
	}

	saved := report.Changed()
	if saved {
		if err := w.Save(ctx, path, nb); err != nil {
			return err
		}
	}

	slog.Info("patched notebook",
		"notebook", string(path), "set", set.Name,
		"applied", report.Applied(), "skipped", report.Skipped(), "missing", report.Missing())
	w.ui.DisplayPatchReport(ctx, report, saved)

	return nil
}

// List shows the built-in blueprints and patch sets.
func (w *workflow) List(ctx context.Context) error {
	entries := make([]m.CatalogEntry, 0)

	for _, bp := range blueprints.All() {
		entries = append(entries, m.CatalogEntry{
			Kind:        m.KindBlueprint,
			Name:        bp.Name,
			Target:      bp.Filename,
			Description: bp.Description,
		})
	}

	for _, set := range blueprints.Sets() {
		entries = append(entries, m.CatalogEntry{
			Kind:        m.KindPatchSet,
			Name:        set.Name,
			Target:      patchedCells(set),
			Description: set.Description,
		})
	}

	return w.ui.DisplayCatalog(ctx, entries)
}

func patchedCells(set m.PatchSet) string {
	indices := make([]int, 0, len(set.Cells))
	for _, cellPatch := range set.Cells {
		indices = append(indices, cellPatch.Cell)
	}

	sort.Ints(indices)

	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprintf("%d", idx)
	}

	return "cells " + strings.Join(parts, ", ")
}

// View loads a notebook and hands it to the UI.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	nb, err := w.Load(ctx, args.Notebook)
	if err != nil {
		return err
	}

	return w.ui.DisplayNotebook(ctx, args.Notebook, nb)
}
