// Package state persists the outcome of benchmark suite runs.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// RunStatus tracks the lifecycle of a single configuration run.
type RunStatus string

const (
	StatusPending   RunStatus = "pending"
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// RunRecord is the persisted outcome of one configuration run.
type RunRecord struct {
	Config     string    `yaml:"config" json:"config"`
	Status     RunStatus `yaml:"status" json:"status"`
	ExitCode   int       `yaml:"exit_code" json:"exit_code"`
	StartedAt  time.Time `yaml:"started_at,omitempty" json:"started_at,omitempty"`
	FinishedAt time.Time `yaml:"finished_at,omitempty" json:"finished_at,omitempty"`
}

// Manifest records a whole suite run.
type Manifest struct {
	RunID       string      `yaml:"run_id" json:"run_id"`
	DatasetPath string      `yaml:"dataset_path" json:"dataset_path"`
	StartedAt   time.Time   `yaml:"started_at" json:"started_at"`
	FinishedAt  time.Time   `yaml:"finished_at,omitempty" json:"finished_at,omitempty"`
	Runs        []RunRecord `yaml:"runs" json:"runs"`
}

// Record returns the run record for the named configuration, or nil.
func (m *Manifest) Record(config string) *RunRecord {
	for i := range m.Runs {
		if m.Runs[i].Config == config {
			return &m.Runs[i]
		}
	}
	return nil
}

// DefaultPath returns the manifest location for the current project: the
// nearest ancestor directory containing .git, falling back to the working
// directory itself.
func DefaultPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current directory: %w", err)
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return filepath.Join(dir, ".cbwm-bench", "state.yml"), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Join(cwd, ".cbwm-bench", "state.yml"), nil
		}
		dir = parent
	}
}

// Load reads a manifest from path. A missing file yields a nil manifest and
// no error.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	return &m, nil
}

// Save writes the manifest to path, creating parent directories as needed.
func Save(path string, m *Manifest) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
