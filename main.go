package main

import (
	"errors"
	"os"

	"github.com/avendra/cbwm-bench/cmd"
	"github.com/avendra/cbwm-bench/pkg/suite"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// A failed configuration run propagates the planner's own exit code.
		var runErr *suite.ConfigRunError
		if errors.As(err, &runErr) && runErr.ExitCode > 0 {
			os.Exit(runErr.ExitCode)
		}
		os.Exit(1)
	}
}
