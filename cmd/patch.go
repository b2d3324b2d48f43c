package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nbforge.dev/pkg/nbforge/internal/domain"
	"nbforge.dev/pkg/nbforge/internal/domain/blueprints"
	m "nbforge.dev/pkg/nbforge/internal/model"
)

// defaultPatchTarget is the notebook the built-in patch set was written for.
const defaultPatchTarget = "GeoSafeMonitor_NDVI.ipynb"

const patchLongDescription = `Apply an idempotent patch set to the notebooks matching the given path
patterns (default: ` + defaultPatchTarget + `).

Supports doublestar patterns:
  - notebooks/*.ipynb       all notebooks in one directory
  - **/*.ipynb              all notebooks below the working directory

The patch set is either a built-in (--set, see "nbforge list") or a YAML
file (--file). Re-running a patch on an already-patched notebook is a
no-op.`

var patchSetFlag string
var patchFileFlag string
var patchWatchFlag bool

// patchCmd represents the patch command.
var patchCmd = newPatchCmd()

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch [patterns...]",
		Short: "Apply an idempotent patch set to notebooks",
		Long:  patchLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := resolvePatchSet(cmd)
			if err != nil {
				return err
			}

			patterns := parsePaths(args)
			if len(patterns) == 0 {
				patterns = []m.Path{defaultPatchTarget}
			}

			return workflow.Patch(cmd.Context(), domain.PatchArgs{
				Patterns: patterns,
				Set:      set,
				Watch:    patchWatchFlag,
			})
		},
	}

	configurePatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(patchCmd)
}

func configurePatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&patchSetFlag, patchSetFlagName, "s", viper.GetString(patchSetConfigKey), "built-in patch set name")
	bindFlagToConfig(cmd.Flags().Lookup(patchSetFlagName), patchSetConfigKey)

	cmd.Flags().StringVarP(&patchFileFlag, patchFileFlagName, "f", viper.GetString(patchFileConfigKey), "YAML patch set file (overrides --set)")
	bindFlagToConfig(cmd.Flags().Lookup(patchFileFlagName), patchFileConfigKey)

	cmd.Flags().BoolVarP(&patchWatchFlag, watchFlagName, "w", false, "keep re-applying the patch set when notebooks change")
}

func resolvePatchSet(cmd *cobra.Command) (m.PatchSet, error) {
	if file := viper.GetString(patchFileConfigKey); file != "" {
		return patchSetStore.Load(cmd.Context(), m.Path(file))
	}

	name := viper.GetString(patchSetConfigKey)

	set, err := blueprints.FindSet(name)
	if err != nil {
		return m.PatchSet{}, fmt.Errorf("%w (use --file for a custom patch set)", err)
	}

	return set, nil
}
