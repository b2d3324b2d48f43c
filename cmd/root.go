// Package cmd provides the root command and CLI setup for nbforge.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"nbforge.dev/pkg/nbforge/internal/adapter"
	"nbforge.dev/pkg/nbforge/internal/controller"
	"nbforge.dev/pkg/nbforge/internal/domain"
	m "nbforge.dev/pkg/nbforge/internal/model"
)

var notebookStore adapter.NotebookStore
var notebookFS adapter.NotebookFS
var patchSetStore adapter.PatchSetStore
var assembler domain.Assembler
var patcher domain.Patcher
var ui controller.UI
var workflow domain.Workflow

// outputDirFlag is a root-level flag shared by commands that write notebooks.
var outputDirFlag string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

// logFileFlag overrides the log file location.
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	notebookStore = adapter.NewLocalNotebookStore()
	notebookFS = adapter.NewLocalNotebookFS()
	patchSetStore = adapter.NewLocalPatchSetStore()
	assembler = domain.NewAssembler()
	patcher = domain.NewPatcher()
	workflow = domain.NewWorkflow(
		notebookStore,
		notebookFS,
		ui,
		assembler,
		patcher,
	)
}

const rootLongDescription = `Nbforge assembles the Geo-Safe Monitor notebooks from built-in blueprints
and applies idempotent line patches to existing notebooks. Patch ops are
guarded by marker substrings, so running the same patch twice never
duplicates content.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nbforge",
		Short: "Jupyter notebook assembly and patching tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for assembled notebooks",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file location")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// rootContext returns the context commands run under: cancelled on SIGINT
// or SIGTERM, so watch mode shuts down cleanly instead of dying mid-write.
func rootContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := rootContext()
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
