package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nbforge.dev/pkg/nbforge/internal/domain"
	m "nbforge.dev/pkg/nbforge/internal/model"
)

const buildLongDescription = `Assemble notebooks from built-in blueprints and write them to the output
directory (default: all blueprints). Existing files are overwritten.

Use "nbforge list" to see the available blueprint names.`

// buildCmd represents the build command.
var buildCmd = newBuildCmd()

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [blueprints...]",
		Short: "Assemble notebooks from built-in blueprints",
		Long:  buildLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Build(cmd.Context(), domain.BuildArgs{
				Names:     args,
				OutputDir: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
