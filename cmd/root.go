package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootVerbose bool

// NewRootCmd builds the cbench command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cbench",
		Short: "CBWM planner ablation benchmark runner",
		Long: `cbench runs the fixed CBWM ablation suite against an external planner
program and inspects the belief metrics the planner emits.

The suite executes five configurations strictly in order, aborting on the
first failure. The evaluation dataset defaults to a bundled validation set
and can be overridden with the DATASET_PATH environment variable.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if rootVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewAdviseCmd())
	rootCmd.AddCommand(NewDivergenceCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
