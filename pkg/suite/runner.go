package suite

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avendra/cbwm-bench/pkg/exec"
	"github.com/avendra/cbwm-bench/pkg/state"
)

// Options configures a suite Runner. Zero values fall back to defaults.
type Options struct {
	// PlannerCommand is the program plus leading arguments; the per-run
	// arguments from RunRequest.Args are appended to it.
	PlannerCommand []string

	// DatasetPath is the resolved dataset location used for every run.
	DatasetPath string

	// StateFile is where the run manifest is persisted. Empty disables
	// persistence.
	StateFile string

	// Output receives progress banners. Nil means os.Stdout.
	Output io.Writer

	// Stdout and Stderr receive the planner's streams. Nil means the
	// parent process's own streams.
	Stdout io.Writer
	Stderr io.Writer

	// Logger receives structured run events. Nil means the logrus
	// standard logger.
	Logger *logrus.Logger
}

// Runner executes the ablation suite strictly sequentially, aborting on the
// first failed configuration.
type Runner struct {
	executor exec.CommandExecutor
	opts     Options
	log      *logrus.Entry
}

// NewRunner creates a runner over the given executor.
func NewRunner(executor exec.CommandExecutor, opts Options) *Runner {
	if len(opts.PlannerCommand) == 0 {
		opts.PlannerCommand = DefaultPlannerCommand
	}
	if opts.DatasetPath == "" {
		opts.DatasetPath = DefaultDatasetPath
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Runner{
		executor: executor,
		opts:     opts,
		log:      logger.WithField("component", "suite"),
	}
}

// Run executes every configuration in order. It returns nil only when all
// of them exit zero; the first non-zero exit aborts the batch with a
// ConfigRunError carrying that exit code.
func (r *Runner) Run(ctx context.Context) error {
	program := r.opts.PlannerCommand[0]
	if _, err := r.executor.LookPath(program); err != nil {
		return fmt.Errorf("planner program %q not found: %w", program, err)
	}

	manifest := &state.Manifest{
		RunID:       uuid.NewString(),
		DatasetPath: r.opts.DatasetPath,
		StartedAt:   time.Now(),
		Runs:        make([]state.RunRecord, 0, len(ConfigNames)),
	}
	for _, name := range ConfigNames {
		manifest.Runs = append(manifest.Runs, state.RunRecord{
			Config: name,
			Status: state.StatusPending,
		})
	}
	r.persist(manifest)

	r.log.WithFields(logrus.Fields{
		"run_id":       manifest.RunID,
		"dataset_path": r.opts.DatasetPath,
		"configs":      len(ConfigNames),
	}).Info("Starting ablation suite")

	for i, name := range ConfigNames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("suite aborted: %w", err)
		}

		fmt.Fprintf(r.opts.Output, "%s Running configuration %d/%d: %s\n",
			color.YellowString("⚡"), i+1, len(ConfigNames), name)

		rec := manifest.Record(name)
		rec.Status = state.StatusRunning
		rec.StartedAt = time.Now()
		r.persist(manifest)

		req := RunRequest{ConfigName: name, DatasetPath: r.opts.DatasetPath}
		exitCode, execErr := r.executor.Execute(ctx, exec.Command{
			Name:   program,
			Args:   append(append([]string{}, r.opts.PlannerCommand[1:]...), req.Args()...),
			Stdout: r.opts.Stdout,
			Stderr: r.opts.Stderr,
		})

		rec.FinishedAt = time.Now()
		rec.ExitCode = exitCode
		if execErr != nil {
			rec.Status = state.StatusFailed
		} else {
			rec.Status = state.StatusCompleted
		}
		r.persist(manifest)

		r.log.WithFields(logrus.Fields{
			"run_id":      manifest.RunID,
			"config":      name,
			"exit_code":   exitCode,
			"duration_ms": time.Since(rec.StartedAt).Milliseconds(),
			"success":     execErr == nil,
		}).Info("Configuration run finished")

		if execErr != nil {
			fmt.Fprintf(r.opts.Output, "%s Configuration failed: %s\n",
				color.RedString("✗"), name)
			manifest.FinishedAt = time.Now()
			r.persist(manifest)
			return &ConfigRunError{ConfigName: name, ExitCode: exitCode, Err: execErr}
		}

		fmt.Fprintf(r.opts.Output, "%s Configuration completed: %s\n",
			color.GreenString("✓"), name)
	}

	manifest.FinishedAt = time.Now()
	if err := r.save(manifest); err != nil {
		return err
	}

	fmt.Fprintf(r.opts.Output, "%s All %d configurations completed\n",
		color.GreenString("✓"), len(ConfigNames))
	return nil
}

// persist saves the manifest, downgrading failures to warnings so a
// bookkeeping problem never masks the planner's own result mid-run.
func (r *Runner) persist(m *state.Manifest) {
	if err := r.save(m); err != nil {
		r.log.WithError(err).Warn("Failed to persist run manifest")
	}
}

func (r *Runner) save(m *state.Manifest) error {
	if r.opts.StateFile == "" {
		return nil
	}
	if err := state.Save(r.opts.StateFile, m); err != nil {
		return fmt.Errorf("persist run manifest: %w", err)
	}
	return nil
}
