// Package controller provides output adapters for displaying nbforge results.
package controller

import (
	"context"

	m "nbforge.dev/pkg/nbforge/internal/model"
)

// UI defines how build, patch and inspect results reach the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayCatalog lists the built-in blueprints and patch sets.
	DisplayCatalog(ctx context.Context, entries []m.CatalogEntry) error

	// DisplayBuildResult reports one assembled notebook.
	DisplayBuildResult(ctx context.Context, name string, target m.Path, cells int)

	// DisplayPatchReport reports one patch pass over one notebook.
	DisplayPatchReport(ctx context.Context, report m.PatchReport, saved bool)

	// DisplayNotebook shows the cells of a notebook document.
	DisplayNotebook(ctx context.Context, path m.Path, nb *m.Notebook) error

	// DisplayWatchStart announces that watch mode is running.
	DisplayWatchStart(ctx context.Context, count int)
}
