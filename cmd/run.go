package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/avendra/cbwm-bench/pkg/config"
	"github.com/avendra/cbwm-bench/pkg/exec"
	"github.com/avendra/cbwm-bench/pkg/state"
	"github.com/avendra/cbwm-bench/pkg/suite"
)

var (
	runPlannerCommand []string
	runDatasetPath    string
	runNoState        bool
)

// NewRunCmd builds the run command.
func NewRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the CBWM ablation suite",
		Long: `Run all five CBWM ablation configurations sequentially against the
evaluation dataset, stopping at the first failure.

The dataset path resolves in order: the DATASET_PATH environment variable,
the dataset_path setting in .cbwm-bench.yml, then the built-in default.`,
		Args: cobra.NoArgs,
		RunE: runSuite,
	}
	runCmd.Flags().StringSliceVar(&runPlannerCommand, "planner", nil, "Planner command and leading arguments (overrides config file)")
	runCmd.Flags().StringVar(&runDatasetPath, "dataset", "", "Dataset path (overrides DATASET_PATH and config file)")
	runCmd.Flags().BoolVar(&runNoState, "no-state", false, "Skip writing the run manifest")
	return runCmd
}

func runSuite(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current directory: %w", err)
	}
	cfg, err := config.LoadFromDir(cwd)
	if err != nil {
		return err
	}

	datasetPath := runDatasetPath
	if datasetPath == "" {
		datasetPath = suite.ResolveDatasetPath(os.Getenv, cfg.DatasetPath)
	}

	plannerCommand := runPlannerCommand
	if len(plannerCommand) == 0 {
		plannerCommand = cfg.PlannerCommand
	}

	stateFile := ""
	if !runNoState {
		stateFile = cfg.StateFile
		if stateFile == "" {
			stateFile, err = state.DefaultPath()
			if err != nil {
				return err
			}
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Dataset: %s\n", color.CyanString(datasetPath))

	runner := suite.NewRunner(&exec.RealCommandExecutor{}, suite.Options{
		PlannerCommand: plannerCommand,
		DatasetPath:    datasetPath,
		StateFile:      stateFile,
		Output:         out,
	})

	return runner.Run(ctx)
}
