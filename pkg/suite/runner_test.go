package suite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/avendra/cbwm-bench/pkg/exec"
	"github.com/avendra/cbwm-bench/pkg/state"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRunner(executor exec.CommandExecutor, out io.Writer, stateFile string) *Runner {
	return NewRunner(executor, Options{
		DatasetPath: "data/test/val.json.gz",
		StateFile:   stateFile,
		Output:      out,
		Stdout:      io.Discard,
		Stderr:      io.Discard,
		Logger:      quietLogger(),
	})
}

func TestRunnerAllSuccess(t *testing.T) {
	mock := &exec.MockCommandExecutor{}
	var out bytes.Buffer

	runner := newTestRunner(mock, &out, "")
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(mock.Invocations) != len(ConfigNames) {
		t.Fatalf("Expected %d invocations, got %d", len(ConfigNames), len(mock.Invocations))
	}

	// Ordering invariant: configurations run in the fixed order.
	for i, inv := range mock.Invocations {
		joined := strings.Join(inv.Args, " ")
		if !strings.Contains(joined, ConfigNames[i]) {
			t.Errorf("Invocation %d should reference %s, got args %q", i, ConfigNames[i], joined)
		}
	}

	// One banner per configuration, each naming its configuration, in order.
	banners := 0
	lastIdx := -1
	for _, line := range strings.Split(out.String(), "\n") {
		if !strings.Contains(line, "Running configuration") {
			continue
		}
		banners++
		for i, name := range ConfigNames {
			if strings.Contains(line, name) {
				if i <= lastIdx {
					t.Errorf("Banner for %s out of order", name)
				}
				lastIdx = i
			}
		}
	}
	if banners != len(ConfigNames) {
		t.Errorf("Expected %d banners, got %d", len(ConfigNames), banners)
	}
}

func TestRunnerFailFast(t *testing.T) {
	failAt := 3 // 1-indexed
	calls := 0
	mock := &exec.MockCommandExecutor{
		ExecuteFunc: func(ctx context.Context, cmd exec.Command) (int, error) {
			calls++
			if calls == failAt {
				return 7, fmt.Errorf("planner exited with status 7")
			}
			return 0, nil
		},
	}

	runner := newTestRunner(mock, io.Discard, "")
	err := runner.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error from failed configuration")
	}

	var runErr *ConfigRunError
	if !errors.As(err, &runErr) {
		t.Fatalf("Expected ConfigRunError, got %T: %v", err, err)
	}
	if runErr.ExitCode != 7 {
		t.Errorf("Expected exit code 7, got %d", runErr.ExitCode)
	}
	if runErr.ConfigName != ConfigNames[failAt-1] {
		t.Errorf("Expected failing config %s, got %s", ConfigNames[failAt-1], runErr.ConfigName)
	}
	if calls != failAt {
		t.Errorf("Expected %d invocations before abort, got %d", failAt, calls)
	}
}

func TestRunnerDatasetOverrideInArgs(t *testing.T) {
	mock := &exec.MockCommandExecutor{}
	runner := NewRunner(mock, Options{
		DatasetPath: "/data/override.json.gz",
		Output:      io.Discard,
		Stdout:      io.Discard,
		Stderr:      io.Discard,
		Logger:      quietLogger(),
	})

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := "evaluation.dataset.path=/data/override.json.gz"
	for i, inv := range mock.Invocations {
		joined := strings.Join(inv.Args, " ")
		if !strings.Contains(joined, want) {
			t.Errorf("Invocation %d missing dataset override, got args %q", i, joined)
		}
	}
}

func TestRunnerPlannerNotFound(t *testing.T) {
	mock := &exec.MockCommandExecutor{
		LookPathFunc: func(file string) (string, error) {
			return "", fmt.Errorf("executable file not found in $PATH")
		},
	}

	runner := newTestRunner(mock, io.Discard, "")
	if err := runner.Run(context.Background()); err == nil {
		t.Fatal("Expected error for missing planner program")
	}
	if len(mock.Invocations) != 0 {
		t.Errorf("Expected no invocations, got %d", len(mock.Invocations))
	}
}

func TestRunnerContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &exec.MockCommandExecutor{}
	runner := newTestRunner(mock, io.Discard, "")
	if err := runner.Run(ctx); err == nil {
		t.Fatal("Expected error from cancelled context")
	}
	if len(mock.Invocations) != 0 {
		t.Errorf("Expected no invocations after cancellation, got %d", len(mock.Invocations))
	}
}

func TestRunnerPersistsManifest(t *testing.T) {
	stateFile := filepath.Join(t.TempDir(), "state.yml")
	failAt := 2
	calls := 0
	mock := &exec.MockCommandExecutor{
		ExecuteFunc: func(ctx context.Context, cmd exec.Command) (int, error) {
			calls++
			if calls == failAt {
				return 1, fmt.Errorf("planner exited with status 1")
			}
			return 0, nil
		},
	}

	runner := newTestRunner(mock, io.Discard, stateFile)
	if err := runner.Run(context.Background()); err == nil {
		t.Fatal("Expected error from failed configuration")
	}

	manifest, err := state.Load(stateFile)
	if err != nil {
		t.Fatalf("Load manifest: %v", err)
	}
	if manifest == nil {
		t.Fatal("Manifest not written")
	}
	if manifest.DatasetPath != "data/test/val.json.gz" {
		t.Errorf("Manifest dataset path = %s", manifest.DatasetPath)
	}

	if got := manifest.Record(ConfigNames[0]).Status; got != state.StatusCompleted {
		t.Errorf("First config status = %s, want completed", got)
	}
	failed := manifest.Record(ConfigNames[failAt-1])
	if failed.Status != state.StatusFailed {
		t.Errorf("Failing config status = %s, want failed", failed.Status)
	}
	if failed.ExitCode != 1 {
		t.Errorf("Failing config exit code = %d, want 1", failed.ExitCode)
	}
	for _, name := range ConfigNames[failAt:] {
		if got := manifest.Record(name).Status; got != state.StatusPending {
			t.Errorf("Config %s status = %s, want pending", name, got)
		}
	}
}
