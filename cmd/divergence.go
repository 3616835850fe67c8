package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/avendra/cbwm-bench/pkg/metrics"
)

var (
	divergenceKey    string
	divergenceOutput string
	divergenceJSON   bool
)

// NewDivergenceCmd builds the divergence command.
func NewDivergenceCmd() *cobra.Command {
	divergenceCmd := &cobra.Command{
		Use:   "divergence <log-path>",
		Short: "Summarize belief divergence and concept confidence over time",
		Long: `Read JSON/JSONL planner logs and summarize the concept-confidence and
belief-divergence series they contain. Use --output to also write the full
series as CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: runDivergence,
	}
	divergenceCmd.Flags().StringVar(&divergenceKey, "divergence-key", "belief_divergence",
		"Metric key to extract (e.g. belief_divergence, concept_js_divergence)")
	divergenceCmd.Flags().StringVarP(&divergenceOutput, "output", "o", "", "Write the full series to this CSV file")
	divergenceCmd.Flags().BoolVar(&divergenceJSON, "json", false, "Output the summary as JSON")
	return divergenceCmd
}

func runDivergence(cmd *cobra.Command, args []string) error {
	files, err := metrics.CollectFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no JSON/JSONL logs found under %s", args[0])
	}

	records, err := metrics.ReadRecords(files)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no readable JSON records found in %d files", len(files))
	}

	series := metrics.PrepareSeries(records, divergenceKey)
	summary := metrics.Summarize(series, divergenceKey)

	out := cmd.OutOrStdout()
	if divergenceJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprintf(out, "Records: %d (from %d files)\n", summary.Points, len(files))
		fmt.Fprintf(out, "Confidence: mean %.3f, min %.3f, final %.3f\n",
			summary.MeanConfidence, summary.MinConfidence, summary.FinalConfidence)
		fmt.Fprintf(out, "Divergence (%s): mean %.3f, max %.3f, final %.3f\n",
			summary.DivergenceKey, summary.MeanDivergence, summary.MaxDivergence, summary.FinalDivergence)
	}

	if divergenceOutput != "" {
		if err := os.MkdirAll(filepath.Dir(divergenceOutput), 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		f, err := os.Create(divergenceOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		if err := metrics.WriteCSV(f, series, divergenceKey); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved series to %s\n", divergenceOutput)
	}
	return nil
}
