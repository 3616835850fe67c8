// Package suite runs the fixed CBWM ablation benchmark suite against an
// external planner program.
package suite

import (
	"fmt"
)

const (
	// DatasetPathEnv overrides the evaluation dataset location.
	DatasetPathEnv = "DATASET_PATH"

	// DefaultDatasetPath is the dataset used when no override is present.
	DefaultDatasetPath = "data/datasets/val/val_dataset.json.gz"

	// datasetOverrideKey is the dotted parameter the planner expects for
	// the dataset location.
	datasetOverrideKey = "evaluation.dataset.path"
)

// DefaultPlannerCommand invokes the planner demo entry point.
var DefaultPlannerCommand = []string{"python", "-m", "habitat_llm.examples.planner_demo"}

// ConfigNames is the ablation suite, in execution order. The order is part
// of the contract: runs are sequential, never reordered or skipped.
var ConfigNames = []string{
	"examples/cbwm_dual_belief_demo",
	"examples/cbwm_ablation_no_cbwm",
	"examples/cbwm_ablation_no_dual_belief",
	"examples/cbwm_ablation_no_l2d",
	"examples/cbwm_ablation_all_off",
}

// RunRequest pairs one configuration with the dataset it runs against.
type RunRequest struct {
	ConfigName  string
	DatasetPath string
}

// Args returns the planner arguments for this request: the configuration
// selector plus the dotted dataset override.
func (r RunRequest) Args() []string {
	return []string{
		"--config-name", r.ConfigName,
		fmt.Sprintf("%s=%s", datasetOverrideKey, r.DatasetPath),
	}
}

// ResolveDatasetPath picks the dataset path: the DATASET_PATH environment
// variable wins, then the configured value, then the built-in default. An
// empty environment value counts as unset.
func ResolveDatasetPath(getenv func(string) string, configured string) string {
	if v := getenv(DatasetPathEnv); v != "" {
		return v
	}
	if configured != "" {
		return configured
	}
	return DefaultDatasetPath
}

// ConfigRunError reports a planner invocation that exited non-zero. The
// batch aborts on the first one; its exit code becomes the batch exit code.
type ConfigRunError struct {
	ConfigName string
	ExitCode   int
	Err        error
}

func (e *ConfigRunError) Error() string {
	return fmt.Sprintf("configuration %s failed (exit code: %d): %v", e.ConfigName, e.ExitCode, e.Err)
}

func (e *ConfigRunError) Unwrap() error {
	return e.Err
}
