// Package config loads the optional .cbwm-bench.yml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/avendra/cbwm-bench/pkg/belief"
)

// FileName is the project configuration file looked up from the working
// directory toward the filesystem root.
const FileName = ".cbwm-bench.yml"

// Config holds project-level settings. All fields are optional; zero values
// mean "use the built-in default".
type Config struct {
	// PlannerCommand is the program plus leading arguments used to execute
	// one configuration, e.g. ["python", "-m", "habitat_llm.examples.planner_demo"].
	PlannerCommand []string `yaml:"planner_command,omitempty"`

	// DatasetPath overrides the built-in default dataset location. The
	// DATASET_PATH environment variable still takes precedence.
	DatasetPath string `yaml:"dataset_path,omitempty"`

	// StateFile overrides where the suite run manifest is written.
	StateFile string `yaml:"state_file,omitempty"`

	// Decision configures the belief-action routing used by `advise`.
	Decision *belief.DecisionConfig `yaml:"decision,omitempty"`
}

// FindConfigFile walks up from startDir looking for FileName. It returns an
// empty path when no config file exists.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromDir finds and loads the nearest config file above dir. A missing
// file yields an empty Config.
func LoadFromDir(dir string) (*Config, error) {
	path, err := FindConfigFile(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &Config{}, nil
	}
	return Load(path)
}
