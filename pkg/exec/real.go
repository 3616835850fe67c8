package exec

import (
	"context"
	"os"
	osexec "os/exec"
)

// RealCommandExecutor implements CommandExecutor using the actual os/exec
// package. This is the production implementation that executes real system
// commands, streaming output to the writers supplied on the Command.
type RealCommandExecutor struct{}

// LookPath searches for an executable named file in the directories
// named by the PATH environment variable.
func (e *RealCommandExecutor) LookPath(file string) (string, error) {
	return osexec.LookPath(file)
}

// Execute runs the command and blocks until it exits.
func (e *RealCommandExecutor) Execute(ctx context.Context, cmd Command) (int, error) {
	c := osexec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	err := c.Run()
	if err != nil {
		if c.ProcessState != nil {
			return c.ProcessState.ExitCode(), err
		}
		return -1, err
	}
	return 0, nil
}
