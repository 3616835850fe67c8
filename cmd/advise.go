package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/avendra/cbwm-bench/pkg/belief"
	"github.com/avendra/cbwm-bench/pkg/config"
	"github.com/avendra/cbwm-bench/pkg/metrics"
)

var adviseLog string

// NewAdviseCmd builds the advise command.
func NewAdviseCmd() *cobra.Command {
	adviseCmd := &cobra.Command{
		Use:   "advise",
		Short: "Recommend a belief action from planner metrics",
		Long: `Read the latest metrics record from a planner log and run the belief
decision hooks on it. Thresholds come from the decision section of
.cbwm-bench.yml, with built-in defaults.`,
		Args: cobra.NoArgs,
		RunE: runAdvise,
	}
	adviseCmd.Flags().StringVarP(&adviseLog, "log", "l", "", "Path to a JSON/JSONL metrics log file or directory")
	_ = adviseCmd.MarkFlagRequired("log")
	return adviseCmd
}

func runAdvise(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current directory: %w", err)
	}
	cfg, err := config.LoadFromDir(cwd)
	if err != nil {
		return err
	}

	decision := cfg.Decision
	if decision == nil {
		decision = &belief.DecisionConfig{}
	}

	files, err := metrics.CollectFiles(adviseLog)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no JSON/JSONL logs found under %s", adviseLog)
	}
	records, err := metrics.ReadRecords(files)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no readable JSON records found in %d files", len(files))
	}

	m := metrics.LatestMetrics(records)
	action, reason := belief.ChooseAction(decision, m)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Confidence: %.2f  Divergence: %.2f\n",
		m.AvgConceptConfidence, m.BeliefDivergence)
	if action == "" {
		fmt.Fprintf(out, "%s No action needed", color.GreenString("✓"))
		if reason != "" {
			fmt.Fprintf(out, " (%s)", reason)
		}
		fmt.Fprintln(out)
		return nil
	}
	fmt.Fprintf(out, "%s Recommended action: %s\n", color.YellowString("⚡"), color.CyanString(action))
	fmt.Fprintf(out, "Reason: %s\n", reason)
	return nil
}
