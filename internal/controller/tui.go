package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "nbforge.dev/pkg/nbforge/internal/model"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	cellHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	markdownStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle       = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display. Everything
// except the notebook browser delegates to the plain text UI.
type TUI struct {
	*SimpleUI

	cmd *cobra.Command
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd), cmd: cmd}
}

// DisplayNotebook shows the full cell content in a scrollable viewer.
// Documents short enough to fit on screen are printed directly.
func (t *TUI) DisplayNotebook(ctx context.Context, path m.Path, nb *m.Notebook) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := renderNotebook(nb)
	title := titleStyle.Render(fmt.Sprintf("%s — %d cells", path, len(nb.Cells)))

	width, height := 0, 0
	if f, ok := t.cmd.OutOrStdout().(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = w, h
		}
	}

	if height == 0 || strings.Count(content, "\n") < height-2 {
		_, err := fmt.Fprintf(t.cmd.OutOrStdout(), "%s\n%s", title, content)
		return err
	}

	model := newNotebookModel(title, content, width, height)

	program := tea.NewProgram(model, tea.WithOutput(t.cmd.OutOrStdout()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// renderNotebook lays out every cell with a styled header line.
func renderNotebook(nb *m.Notebook) string {
	var b strings.Builder

	for i := range nb.Cells {
		cell := &nb.Cells[i]
		lines := cell.Source.Lines()

		header := fmt.Sprintf("── cell %d · %s · %d lines ", i, cell.Type, len(lines))
		b.WriteString(cellHeaderStyle.Render(header))
		b.WriteString("\n")

		text := cell.Source.Text()
		if cell.Type == m.CellMarkdown {
			text = markdownStyle.Render(text)
		}

		b.WriteString(text)

		if !strings.HasSuffix(text, "\n") {
			b.WriteString("\n")
		}

		b.WriteString("\n")
	}

	return b.String()
}

// notebookModel is the Bubble Tea model wrapping a viewport over the
// rendered document.
type notebookModel struct {
	title    string
	viewport viewport.Model
	quitting bool
}

func newNotebookModel(title, content string, width, height int) notebookModel {
	vp := viewport.New(width, height-3)
	vp.SetContent(content)

	return notebookModel{title: title, viewport: vp}
}

func (nm notebookModel) Init() tea.Cmd {
	return nil
}

func (nm notebookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		nm.viewport.Width = msg.Width
		nm.viewport.Height = msg.Height - 3

		return nm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			nm.quitting = true
			return nm, tea.Quit
		}
	}

	var cmd tea.Cmd
	nm.viewport, cmd = nm.viewport.Update(msg)

	return nm, cmd
}

func (nm notebookModel) View() string {
	if nm.quitting {
		return ""
	}

	help := helpStyle.Render("↑/k: up | ↓/j: down | pgup/pgdn: page | q: quit")

	return nm.title + "\n" + nm.viewport.View() + "\n" + help
}
