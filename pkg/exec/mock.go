package exec

import (
	"context"
	"strings"
)

// MockCommandExecutor is a mock implementation of CommandExecutor for testing.
// It records all commands that would be executed without actually running them.
type MockCommandExecutor struct {
	// Commands records the flattened command lines, in invocation order.
	Commands []string

	// Invocations records the full Command values, in invocation order.
	Invocations []Command

	// LookPathFunc allows custom behavior for LookPath in tests.
	LookPathFunc func(file string) (string, error)

	// ExecuteFunc allows custom behavior for Execute in tests.
	ExecuteFunc func(ctx context.Context, cmd Command) (int, error)
}

// LookPath implements the CommandExecutor interface for testing.
func (m *MockCommandExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	// By default, assume commands exist
	return "/path/to/" + file, nil
}

// Execute implements the CommandExecutor interface for testing.
// It records the command that would be executed.
func (m *MockCommandExecutor) Execute(ctx context.Context, cmd Command) (int, error) {
	cmdStr := cmd.Name
	if len(cmd.Args) > 0 {
		cmdStr = cmd.Name + " " + strings.Join(cmd.Args, " ")
	}
	m.Commands = append(m.Commands, cmdStr)
	m.Invocations = append(m.Invocations, cmd)

	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return 0, nil
}
