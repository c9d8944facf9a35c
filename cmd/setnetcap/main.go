package main

import (
	"fmt"
	"os"
)

const (
	Success          = 0
	BadConfig        = 8
	NotFound         = 16
	OperationError   = 32
	Usage            = 64
	PermissionDenied = 128
)

const USAGE = "usage: setnetcap RELATIVE-PATH\n"

func main() {
	if os.Getenv(traceEnv) != "" {
		if set := setTrace(); !set {
			fmt.Fprintf(os.Stderr, "error: the file %s must exist to enable tracing\n", traceGate)
			os.Exit(PermissionDenied)
		}
	}

	os.Exit(newGrantTool().run(os.Args))
}
