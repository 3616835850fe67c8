package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfgPath := filepath.Join(root, FileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("dataset_path: /tmp/ds.json.gz\n"), 0644))

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, found)
}

func TestFindConfigFileMissing(t *testing.T) {
	found, err := FindConfigFile(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	content := `planner_command: [python, -m, habitat_llm.examples.planner_demo]
dataset_path: /data/val.json.gz
state_file: /tmp/state.yml
decision:
  divergence_threshold: 0.25
  l2d_action_enabled: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "-m", "habitat_llm.examples.planner_demo"}, cfg.PlannerCommand)
	assert.Equal(t, "/data/val.json.gz", cfg.DatasetPath)
	assert.Equal(t, "/tmp/state.yml", cfg.StateFile)
	require.NotNil(t, cfg.Decision)
	require.NotNil(t, cfg.Decision.DivergenceThreshold)
	assert.Equal(t, 0.25, *cfg.Decision.DivergenceThreshold)
	assert.True(t, cfg.Decision.L2DEnabled)
}

func TestLoadFromDirMissingConfig(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("planner_command: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
