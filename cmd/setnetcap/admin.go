package main

import (
	"os"

	"github.com/syndtr/gocapability/capability"
	"golang.org/x/sys/unix"
)

type identity interface {
	Geteuid() int
	Getuid() int
	Setreuid(ruid, euid int) error
}

type processIdentity struct{}

func (processIdentity) Geteuid() int { return unix.Geteuid() }

func (processIdentity) Getuid() int { return unix.Getuid() }

// Setreuid applies to every thread of the process.
func (processIdentity) Setreuid(ruid, euid int) error {
	return unix.Setreuid(ruid, euid)
}

func isAdmin(id identity) bool {
	if id.Geteuid() == 0 {
		return true
	}
	return false
}

// assumeRoot sets both the real and the effective UID to root.  For a
// setuid binary run by an ordinary user, this drops the caller's real UID.
func assumeRoot(id identity) error {
	trace("assuming root identity, was uid %d euid %d", id.Getuid(), id.Geteuid())
	if err := id.Setreuid(0, 0); err != nil {
		return NewError("setreuid", "0, 0", err)
	}
	return nil
}

// Replaced in tests to count capget calls.
var holdsSetfcap = canSetFileCaps

// canSetFileCaps reports whether this process holds CAP_SETFCAP in its
// effective set, which writing security.capability requires.
func canSetFileCaps() bool {
	cap := false
	if caps, err := capability.NewPid2(os.Getpid()); err == nil {
		if caps.Load() == nil {
			cap = caps.Get(capability.EFFECTIVE, capability.CAP_SETFCAP)
		}
	}
	return cap
}
