package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "nbforge.dev/pkg/nbforge/internal/model"
)

func newTestUI() (*SimpleUI, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	return NewSimpleUI(cmd), buf
}

func TestSimpleUI_DisplayCatalog(t *testing.T) {
	ui, buf := newTestUI()

	err := ui.DisplayCatalog(context.Background(), []m.CatalogEntry{
		{Kind: m.KindBlueprint, Name: "vegetation-monitor", Target: "GeoSafeMonitor.ipynb", Description: "Landslide risk POC"},
		{Kind: m.KindPatchSet, Name: "ndvi-enrichment", Target: "cells 5, 7", Description: "SMAP and slope layers"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "vegetation-monitor")
	assert.Contains(t, out, "GeoSafeMonitor.ipynb")
	assert.Contains(t, out, "ndvi-enrichment")
	assert.Contains(t, out, "cells 5, 7")
}

func TestSimpleUI_DisplayBuildResult(t *testing.T) {
	ui, buf := newTestUI()

	ui.DisplayBuildResult(context.Background(), "vegetation-monitor", "out/GeoSafeMonitor.ipynb", 8)

	assert.Equal(t, "Built vegetation-monitor -> out/GeoSafeMonitor.ipynb (8 cells)\n", buf.String())
}

func TestSimpleUI_DisplayPatchReport(t *testing.T) {
	ui, buf := newTestUI()

	report := m.PatchReport{
		Notebook: "GeoSafeMonitor_NDVI.ipynb",
		Results: []m.OpResult{
			{Cell: 5, Marker: "soil_moisture_layer", Status: m.Applied},
			{Cell: 7, Marker: "slope_viz", Status: m.AlreadyApplied},
			{Cell: 7, Marker: "Slope (degrees)", Status: m.AnchorMissing},
		},
	}

	ui.DisplayPatchReport(context.Background(), report, true)

	out := buf.String()
	assert.Contains(t, out, `+ cell 5 "soil_moisture_layer": applied`)
	assert.Contains(t, out, `- cell 7 "slope_viz": already applied`)
	assert.Contains(t, out, `- cell 7 "Slope (degrees)": anchor missing`)
	assert.Contains(t, out, "GeoSafeMonitor_NDVI.ipynb: 1 applied, 1 already applied, 1 anchors missing (saved)")
}

func TestSimpleUI_DisplayPatchReportUnchanged(t *testing.T) {
	ui, buf := newTestUI()

	report := m.PatchReport{
		Notebook: "nb.ipynb",
		Results:  []m.OpResult{{Cell: 5, Marker: "x", Status: m.AlreadyApplied}},
	}

	ui.DisplayPatchReport(context.Background(), report, false)
	assert.Contains(t, buf.String(), "(unchanged)")
}

func TestSimpleUI_DisplayNotebook(t *testing.T) {
	ui, buf := newTestUI()

	nb := &m.Notebook{Cells: []m.Cell{
		{Type: m.CellMarkdown, Source: m.NewSourceLines([]string{"# Geo-Safe Monitor\n"})},
		{Type: m.CellCode, Source: m.NewSourceLines([]string{"import ee\n", "import geemap\n"})},
	}}

	err := ui.DisplayNotebook(context.Background(), "nb.ipynb", nb)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "nb.ipynb: 2 cells")
	assert.Contains(t, out, "markdown")
	assert.Contains(t, out, "# Geo-Safe Monitor")
	assert.Contains(t, out, "import ee")
}

func TestFirstLinePreview(t *testing.T) {
	assert.Equal(t, "", firstLinePreview(nil))
	assert.Equal(t, "import ee", firstLinePreview([]string{"import ee\n", "m\n"}))

	long := strings.Repeat("x", 100)
	preview := firstLinePreview([]string{long + "\n"})
	assert.Len(t, []rune(preview), previewWidth)
	assert.True(t, strings.HasSuffix(preview, "…"))
}

func TestFirstLinePreviewMultiByte(t *testing.T) {
	// Truncating a line of multi-byte runes must not split a rune.
	wide := strings.Repeat("ñ", 100)
	preview := firstLinePreview([]string{wide + "\n"})

	assert.True(t, utf8.ValidString(preview))
	assert.Len(t, []rune(preview), previewWidth)
	assert.True(t, strings.HasSuffix(preview, "…"))

	short := "# Baungón NDVI"
	assert.Equal(t, short, firstLinePreview([]string{short + "\n"}))
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}

	ui := NewUI(cmd, false)
	_, ok := ui.(*SimpleUI)
	assert.True(t, ok)

	ui = NewUI(cmd, true)
	_, ok = ui.(*TUI)
	assert.True(t, ok)
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
