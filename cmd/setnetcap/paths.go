package main

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// workdir returns the current directory as the kernel reports it.  The
// environment ($PWD) is never consulted, since it belongs to the caller.
func workdir() (string, error) {
	cwd, err := unix.Getwd()
	if err != nil {
		return "", NewError("getcwd", ".", err)
	}
	return cwd, nil
}

// checkWorkdir enforces the PATH_MAX bound on a directory returned by getwd.
func checkWorkdir(cwd string) error {
	if len(cwd) >= unix.PathMax {
		return NewError("getcwd", cwd, syscall.ENAMETOOLONG)
	}
	if cwd == "" || cwd[0] != os.PathSeparator {
		return NewError("getcwd", cwd, syscall.ENOENT)
	}
	return nil
}

// resolveTarget concatenates the working directory and the relative
// argument.  The result is neither cleaned nor resolved.
func resolveTarget(cwd string, rel string) string {
	return cwd + string(os.PathSeparator) + rel
}

// targetExists reports whether path names an existing entry, following
// symlinks.  Like access(2) with F_OK, the lookup is made with the real UID,
// so entries the caller cannot reach count as inaccessible even though the
// effective UID is root.  A nil error with false means the entry is absent.
func targetExists(path string) (bool, error) {
	switch err := unix.Access(path, unix.F_OK); err {
	case nil:
		return true, nil
	case unix.ENOENT, unix.ENOTDIR:
		return false, nil
	default:
		return false, NewError("access", path, err)
	}
}
