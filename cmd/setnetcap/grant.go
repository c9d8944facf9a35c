package main

import (
	"fmt"
	"io"
	"os"
)

type grantTool struct {
	id     identity
	getwd  func() (string, error)
	exists func(string) (bool, error)
	caps   fileCapSetter
	stderr io.Writer
}

func newGrantTool() *grantTool {
	return &grantTool{
		id:     processIdentity{},
		getwd:  workdir,
		exists: targetExists,
		caps:   vfsCapSetter{},
		stderr: os.Stderr,
	}
}

func (t *grantTool) usage() {
	fmt.Fprint(t.stderr, USAGE)
}

// run grants netBindService to the file named by args[1], relative to the
// current directory, and returns the exit code.
func (t *grantTool) run(args []string) int {
	trace("arguments passed: %q", args)

	if !isAdmin(t.id) {
		fmt.Fprintf(t.stderr, "error: must be root or setuid\n")
		return PermissionDenied
	}

	if len(args) != 2 {
		t.usage()
		return Usage
	}

	cwd, err := t.getwd()
	if err == nil {
		err = checkWorkdir(cwd)
	}
	if err != nil {
		fmt.Fprintf(t.stderr, "error: cannot determine current directory: %v\n", err)
		return BadConfig
	}

	target := resolveTarget(cwd, args[1])
	trace("resolved target %s", target)

	// Checked before assumeRoot, while the real UID is still the caller's.
	exists, err := t.exists(target)
	if err != nil {
		fmt.Fprintf(t.stderr, "error: %v\n", err)
		return NotFound
	}
	if !exists {
		fmt.Fprintf(t.stderr, "error: file %s does not exist\n", target)
		return NotFound
	}

	if err := assumeRoot(t.id); err != nil {
		fmt.Fprintf(t.stderr, "error: cannot assume root identity: %v\n", err)
		return BadConfig
	}

	if err := t.caps.SetFileCaps(target, netBindService); err != nil {
		fmt.Fprintf(t.stderr, "error setting %s on %s: %v\n", netBindService, target, err)
		if IsPermission(err) {
			return PermissionDenied
		}
		return OperationError
	}

	trace("granted %s to %s", netBindService, target)
	return Success
}
