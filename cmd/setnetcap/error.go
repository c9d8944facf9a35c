package main

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/xattr"
)

// Error records a failed system call and the argument it was made on, and
// prints the way strace would show it, as in
// access(/opt/app/bin): permission denied.
type Error struct {
	Op  string
	Arg string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s(%s): %v", e.Op, e.Arg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(op string, arg string, err error) error {
	return &Error{op, arg, err}
}

func IsPermission(err error) bool {
	var e *xattr.Error
	if errors.As(err, &e) {
		if e.Err == syscall.EPERM || e.Err == syscall.EACCES {
			return true
		}
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.EPERM || errno == syscall.EACCES {
			return true
		}
	}
	if os.IsPermission(err) {
		return true
	}
	return false
}
