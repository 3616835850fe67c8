package exec

import (
	"context"
	"io"
)

// Command describes a single external invocation.
type Command struct {
	// Name is the program to run, resolved against PATH.
	Name string

	// Args are the command-line arguments, not including the program name.
	Args []string

	// Env holds extra KEY=VALUE pairs appended to the parent environment.
	Env []string

	// Dir is the working directory. Empty means the caller's directory.
	Dir string

	// Stdout and Stderr receive the streamed process output. Nil writers
	// discard the corresponding stream.
	Stdout io.Writer
	Stderr io.Writer
}

// CommandExecutor defines an interface for running external commands.
// This abstraction allows for easier testing by providing a mockable interface.
type CommandExecutor interface {
	// LookPath searches for an executable named file in the directories
	// named by the PATH environment variable.
	LookPath(file string) (string, error)

	// Execute runs the command and blocks until it exits, returning the
	// process exit code. A non-nil error implies the process exited
	// non-zero or failed to start; an exit code of -1 means no exit code
	// was produced (the process was killed or never started).
	Execute(ctx context.Context, cmd Command) (int, error)
}
