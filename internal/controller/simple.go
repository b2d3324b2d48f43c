package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "nbforge.dev/pkg/nbforge/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayCatalog renders the built-ins as a table.
func (s *SimpleUI) DisplayCatalog(ctx context.Context, entries []m.CatalogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Kind", "Name", "Target", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for _, entry := range entries {
		table.Append([]string{string(entry.Kind), entry.Name, entry.Target, entry.Description})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayBuildResult reports one assembled notebook.
func (s *SimpleUI) DisplayBuildResult(ctx context.Context, name string, target m.Path, cells int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Built %s -> %s (%d cells)\n", name, target, cells)
}

// DisplayPatchReport prints per-op outcomes and a one-line summary.
func (s *SimpleUI) DisplayPatchReport(ctx context.Context, report m.PatchReport, saved bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, result := range report.Results {
		mark := "-"
		if result.Status == m.Applied {
			mark = "+"
		}

		s.printf("  %s cell %d %q: %s\n", mark, result.Cell, result.Marker, result.Status)
	}

	state := "unchanged"
	if saved {
		state = "saved"
	}

	s.printf("%s: %d applied, %d already applied, %d anchors missing (%s)\n",
		report.Notebook, report.Applied(), report.Skipped(), report.Missing(), state)
}

// DisplayNotebook renders a per-cell summary table.
func (s *SimpleUI) DisplayNotebook(ctx context.Context, path m.Path, nb *m.Notebook) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Type", "Lines", "First line"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	for i := range nb.Cells {
		cell := &nb.Cells[i]
		lines := cell.Source.Lines()

		table.Append([]string{
			fmt.Sprintf("%d", i),
			string(cell.Type),
			fmt.Sprintf("%d", len(lines)),
			firstLinePreview(lines),
		})
	}

	table.Render()
	s.printf("%s: %d cells\n\n%s", path, len(nb.Cells), tableBuffer.String())

	return nil
}

// DisplayWatchStart announces watch mode.
func (s *SimpleUI) DisplayWatchStart(ctx context.Context, count int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Watching %d notebook(s) for changes, Ctrl-C to stop\n", count)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

const previewWidth = 60

func firstLinePreview(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	preview := strings.TrimRight(lines[0], "\n")

	// Truncate on runes, not bytes, so multi-byte text stays valid.
	runes := []rune(preview)
	if len(runes) > previewWidth {
		preview = string(runes[:previewWidth-1]) + "…"
	}

	return preview
}
