package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/avendra/cbwm-bench/pkg/config"
	"github.com/avendra/cbwm-bench/pkg/state"
)

var statusJSON bool

// NewStatusCmd builds the status command.
func NewStatusCmd() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the outcome of the last suite run",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output the run manifest as JSON")
	return statusCmd
}

var (
	statusHeaderStyle    = lipgloss.NewStyle().Bold(true)
	statusCompletedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusFailedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusPendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func runStatus(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current directory: %w", err)
	}
	cfg, err := config.LoadFromDir(cwd)
	if err != nil {
		return err
	}

	stateFile := cfg.StateFile
	if stateFile == "" {
		stateFile, err = state.DefaultPath()
		if err != nil {
			return err
		}
	}

	manifest, err := state.Load(stateFile)
	if err != nil {
		return err
	}
	if manifest == nil {
		return fmt.Errorf("no suite run recorded yet (looked at %s)", stateFile)
	}

	out := cmd.OutOrStdout()

	if statusJSON {
		data, err := json.MarshalIndent(manifest, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal manifest: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	styled := isatty.IsTerminal(os.Stdout.Fd())

	fmt.Fprintf(out, "Run %s\n", manifest.RunID)
	fmt.Fprintf(out, "Dataset: %s\n", manifest.DatasetPath)
	fmt.Fprintf(out, "Started: %s\n\n", manifest.StartedAt.Format(time.RFC3339))

	header := fmt.Sprintf("%-42s %-10s %5s %10s", "CONFIG", "STATUS", "EXIT", "DURATION")
	if styled {
		header = statusHeaderStyle.Render(header)
	}
	fmt.Fprintln(out, header)

	for _, rec := range manifest.Runs {
		duration := "-"
		if !rec.StartedAt.IsZero() && !rec.FinishedAt.IsZero() {
			duration = rec.FinishedAt.Sub(rec.StartedAt).Round(time.Millisecond).String()
		}
		statusText := string(rec.Status)
		if styled {
			statusText = statusStyle(rec.Status).Render(fmt.Sprintf("%-10s", statusText))
		} else {
			statusText = fmt.Sprintf("%-10s", statusText)
		}
		fmt.Fprintf(out, "%-42s %s %5d %10s\n", rec.Config, statusText, rec.ExitCode, duration)
	}
	return nil
}

func statusStyle(s state.RunStatus) lipgloss.Style {
	switch s {
	case state.StatusCompleted:
		return statusCompletedStyle
	case state.StatusFailed:
		return statusFailedStyle
	default:
		return statusPendingStyle
	}
}
