package cmd

import (
	"github.com/spf13/cobra"

	"nbforge.dev/pkg/nbforge/internal/domain"
	m "nbforge.dev/pkg/nbforge/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <notebook>",
		Short: "View the cells of a notebook",
		Long:  "View the cells of a notebook document; interactive on a terminal, a plain summary otherwise.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{Notebook: m.Path(args[0])})
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
