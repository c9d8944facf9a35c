package main

import (
	"syscall"

	"github.com/pkg/xattr"
)

// capabilityAttr holds the VFS capability set of a file.
const capabilityAttr = "security.capability"

// getxattr returns the raw attribute, or nil if the file does not carry it.
func getxattr(path string, attrname string) ([]byte, error) {
	data, err := xattr.Get(path, attrname)
	if err != nil {
		if xerr, ok := err.(*xattr.Error); ok {
			if serr, ok := xerr.Err.(syscall.Errno); ok {
				if serr == syscall.ENODATA {
					// Attribute not present.
					return nil, nil
				}
			}
		}
		return nil, err
	}
	return data, nil
}
